package services

import (
  "context"
  "testing"

  "github.com/google/uuid"

  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type reviewFixture struct {
  svc      ReviewService
  reviews  *fakeReviewRepo
  bookings *fakeBookingRepo
  guides   *fakeGuideRepo
  guideID  uuid.UUID
}

func newReviewFixture(t *testing.T) *reviewFixture {
  t.Helper()
  f := &reviewFixture{
    reviews:  &fakeReviewRepo{},
    bookings: &fakeBookingRepo{},
    guides:   newFakeGuideRepo(),
    guideID:  uuid.New(),
  }
  f.guides.guides[f.guideID] = &types.TouristGuide{ID: f.guideID}
  f.svc = NewReviewService(testDB(t), testLogger(t), f.reviews, f.bookings, f.guides)
  return f
}

func (f *reviewFixture) seedBooking(status string) *types.Booking {
  booking := &types.Booking{
    ID:        uuid.New(),
    TouristID: uuid.New(),
    EventID:   uuid.New(),
    GuideID:   &f.guideID,
    Status:    status,
  }
  f.bookings.bookings = append(f.bookings.bookings, booking)
  return booking
}

func TestCreateReview_UpdatesGuideRatingInTheSameCommit(t *testing.T) {
  f := newReviewFixture(t)
  booking := f.seedBooking(types.BookingStatusCompleted)
  f.reviews.avg = 4.5
  f.reviews.count = 2

  review, err := f.svc.CreateReview(context.Background(), CreateReviewInput{
    BookingID: booking.ID,
    Rating:    5,
    Comment:   "  Great walk.  ",
  })
  if err != nil {
    t.Fatalf("create review: %v", err)
  }
  if review.GuideID != f.guideID || review.TouristID != booking.TouristID {
    t.Fatalf("review must inherit guide and tourist from the booking")
  }
  if review.Comment != "Great walk." {
    t.Fatalf("expected trimmed comment, got %q", review.Comment)
  }
  fields := f.guides.updates[f.guideID]
  if fields["rating"] != 4.5 || fields["number_of_reviews"] != int64(2) {
    t.Fatalf("expected guide rating recomputed, got %v", fields)
  }
}

func TestCreateReview_OnlyCompletedBookings(t *testing.T) {
  f := newReviewFixture(t)
  for _, status := range []string{types.BookingStatusPending, types.BookingStatusConfirmed, types.BookingStatusCanceled} {
    booking := f.seedBooking(status)
    _, err := f.svc.CreateReview(context.Background(), CreateReviewInput{BookingID: booking.ID, Rating: 4})
    if !apierr.IsCode(err, apierr.CodeConflict) {
      t.Fatalf("%s: expected conflict, got %v", status, err)
    }
  }
}

func TestCreateReview_SecondReviewConflicts(t *testing.T) {
  f := newReviewFixture(t)
  booking := f.seedBooking(types.BookingStatusCompleted)

  if _, err := f.svc.CreateReview(context.Background(), CreateReviewInput{BookingID: booking.ID, Rating: 4}); err != nil {
    t.Fatalf("first review: %v", err)
  }
  _, err := f.svc.CreateReview(context.Background(), CreateReviewInput{BookingID: booking.ID, Rating: 2})
  if !apierr.IsCode(err, apierr.CodeConflict) {
    t.Fatalf("expected conflict, got %v", err)
  }
}

func TestCreateReview_RatingBounds(t *testing.T) {
  f := newReviewFixture(t)
  booking := f.seedBooking(types.BookingStatusCompleted)

  for _, rating := range []int{0, 6, -1} {
    _, err := f.svc.CreateReview(context.Background(), CreateReviewInput{BookingID: booking.ID, Rating: rating})
    if !apierr.IsCode(err, apierr.CodeValidation) {
      t.Fatalf("rating %d: expected validation error, got %v", rating, err)
    }
  }
}
