package services

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type bookingFixture struct {
  svc      BookingService
  bookings *fakeBookingRepo
  events   *fakeEventRepo
  users    *fakeUserRepo
  payments *fakePaymentRepo
  tourist  *types.User
  event    *types.Event
  guideID  uuid.UUID
}

func newBookingFixture(t *testing.T) *bookingFixture {
  t.Helper()
  j := &journal{}
  f := &bookingFixture{
    bookings: &fakeBookingRepo{},
    events:   newFakeEventRepo(j),
    users:    newFakeUserRepo(j),
    payments: newFakePaymentRepo(),
    guideID:  uuid.New(),
  }
  f.tourist = &types.User{ID: uuid.New(), Email: "tina@example.com", Role: types.RoleTourist}
  f.users.users[f.tourist.ID] = f.tourist
  f.event = &types.Event{
    ID:           uuid.New(),
    Title:        "Canopy walk",
    Price:        30,
    MaxGroupSize: 4,
    GuideID:      &f.guideID,
  }
  f.events.events[f.event.ID] = f.event
  f.svc = NewBookingService(testDB(t), testLogger(t), f.bookings, f.events, f.users, f.payments)
  return f
}

func (f *bookingFixture) createBooking(t *testing.T, people int) *types.Booking {
  t.Helper()
  booking, err := f.svc.CreateBooking(context.Background(), CreateBookingInput{
    TouristID:      f.tourist.ID,
    EventID:        f.event.ID,
    BookingDate:    time.Now().Add(48 * time.Hour),
    NumberOfPeople: people,
  })
  if err != nil {
    t.Fatalf("create booking: %v", err)
  }
  return booking
}

func TestCreateBooking_StartsPendingWithDerivedFields(t *testing.T) {
  f := newBookingFixture(t)

  booking := f.createBooking(t, 3)
  if booking.Status != types.BookingStatusPending {
    t.Fatalf("expected PENDING, got %q", booking.Status)
  }
  if booking.TotalPrice != 90 {
    t.Fatalf("expected total price 90, got %v", booking.TotalPrice)
  }
  if booking.GuideID == nil || *booking.GuideID != f.guideID {
    t.Fatalf("expected guide inherited from the event")
  }
}

func TestCreateBooking_GroupSizeCapEnforced(t *testing.T) {
  f := newBookingFixture(t)

  _, err := f.svc.CreateBooking(context.Background(), CreateBookingInput{
    TouristID:      f.tourist.ID,
    EventID:        f.event.ID,
    BookingDate:    time.Now(),
    NumberOfPeople: 5,
  })
  if !apierr.IsCode(err, apierr.CodeValidation) {
    t.Fatalf("expected validation error, got %v", err)
  }
}

func TestCreateBooking_UnknownTouristIsNotFound(t *testing.T) {
  f := newBookingFixture(t)

  _, err := f.svc.CreateBooking(context.Background(), CreateBookingInput{
    TouristID:      uuid.New(),
    EventID:        f.event.ID,
    BookingDate:    time.Now(),
    NumberOfPeople: 1,
  })
  if !apierr.IsCode(err, apierr.CodeNotFound) {
    t.Fatalf("expected not_found, got %v", err)
  }
}

func TestTransitionBooking_LegalPath(t *testing.T) {
  f := newBookingFixture(t)
  booking := f.createBooking(t, 1)

  for _, status := range []string{types.BookingStatusConfirmed, types.BookingStatusCompleted} {
    updated, err := f.svc.TransitionBooking(context.Background(), booking.ID, status)
    if err != nil {
      t.Fatalf("transition to %s: %v", status, err)
    }
    if updated.Status != status {
      t.Fatalf("expected %s, got %s", status, updated.Status)
    }
  }
}

func TestTransitionBooking_IllegalTransitionsConflict(t *testing.T) {
  f := newBookingFixture(t)

  cases := []struct {
    from string
    to   string
  }{
    {types.BookingStatusPending, types.BookingStatusCompleted},
    {types.BookingStatusCompleted, types.BookingStatusCanceled},
    {types.BookingStatusCanceled, types.BookingStatusConfirmed},
    {types.BookingStatusCompleted, types.BookingStatusPending},
  }
  for _, tc := range cases {
    booking := f.createBooking(t, 1)
    booking.Status = tc.from
    _, err := f.svc.TransitionBooking(context.Background(), booking.ID, tc.to)
    if !apierr.IsCode(err, apierr.CodeConflict) {
      t.Fatalf("%s -> %s: expected conflict, got %v", tc.from, tc.to, err)
    }
  }
}

func TestTransitionBooking_CancelFromConfirmed(t *testing.T) {
  f := newBookingFixture(t)
  booking := f.createBooking(t, 1)
  booking.Status = types.BookingStatusConfirmed

  updated, err := f.svc.TransitionBooking(context.Background(), booking.ID, types.BookingStatusCanceled)
  if err != nil {
    t.Fatalf("cancel: %v", err)
  }
  if updated.Status != types.BookingStatusCanceled {
    t.Fatalf("expected CANCELED, got %s", updated.Status)
  }
}

func TestCreatePayment_OnlyForConfirmedBookings(t *testing.T) {
  f := newBookingFixture(t)
  booking := f.createBooking(t, 2)

  _, err := f.svc.CreatePayment(context.Background(), CreatePaymentInput{BookingID: booking.ID, Method: "card"})
  if !apierr.IsCode(err, apierr.CodeConflict) {
    t.Fatalf("expected conflict for pending booking, got %v", err)
  }

  booking.Status = types.BookingStatusConfirmed
  payment, err := f.svc.CreatePayment(context.Background(), CreatePaymentInput{BookingID: booking.ID, Method: "card"})
  if err != nil {
    t.Fatalf("payment: %v", err)
  }
  if payment.Amount != booking.TotalPrice {
    t.Fatalf("payment amount must equal the booking total, got %v", payment.Amount)
  }
  if payment.Status != types.PaymentStatusPaid {
    t.Fatalf("expected PAID, got %q", payment.Status)
  }
}

func TestCreatePayment_SecondPaymentConflicts(t *testing.T) {
  f := newBookingFixture(t)
  booking := f.createBooking(t, 1)
  booking.Status = types.BookingStatusConfirmed

  if _, err := f.svc.CreatePayment(context.Background(), CreatePaymentInput{BookingID: booking.ID, Method: "card"}); err != nil {
    t.Fatalf("first payment: %v", err)
  }
  _, err := f.svc.CreatePayment(context.Background(), CreatePaymentInput{BookingID: booking.ID, Method: "cash"})
  if !apierr.IsCode(err, apierr.CodeConflict) {
    t.Fatalf("expected conflict, got %v", err)
  }
}
