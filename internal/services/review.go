package services

import (
  "context"
  "fmt"
  "strings"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/repos"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type CreateReviewInput struct {
  BookingID uuid.UUID
  Rating    int
  Comment   string
}

type ReviewService interface {
  CreateReview(ctx context.Context, in CreateReviewInput) (*types.Review, error)
  ListByGuide(ctx context.Context, guideID uuid.UUID) ([]*types.Review, error)
}

type reviewService struct {
  db          *gorm.DB
  log         *logger.Logger
  reviewRepo  repos.ReviewRepo
  bookingRepo repos.BookingRepo
  guideRepo   repos.GuideRepo
}

func NewReviewService(db *gorm.DB, baseLog *logger.Logger, reviewRepo repos.ReviewRepo, bookingRepo repos.BookingRepo, guideRepo repos.GuideRepo) ReviewService {
  serviceLog := baseLog.With("service", "ReviewService")
  return &reviewService{db: db, log: serviceLog, reviewRepo: reviewRepo, bookingRepo: bookingRepo, guideRepo: guideRepo}
}

func (s *reviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*types.Review, error) {
  var details []string
  if in.BookingID == uuid.Nil {
    details = append(details, "bookingId is required")
  }
  if in.Rating < 1 || in.Rating > 5 {
    details = append(details, "rating must be between 1 and 5")
  }
  if len(details) > 0 {
    return nil, apierr.Validation(details...)
  }

  booking, err := s.bookingRepo.GetByID(ctx, nil, in.BookingID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load booking: %w", err)
  }
  if booking == nil {
    return nil, apierr.NotFound("booking")
  }
  if booking.Status != types.BookingStatusCompleted {
    return nil, apierr.Conflict("only completed bookings can be reviewed")
  }
  if booking.GuideID == nil {
    return nil, apierr.Conflict("booking has no guide to review")
  }
  existing, err := s.reviewRepo.GetByBookingID(ctx, nil, booking.ID)
  if err != nil {
    return nil, fmt.Errorf("Failed to check existing review: %w", err)
  }
  if existing != nil {
    return nil, apierr.Conflict("booking already has a review")
  }

  review := &types.Review{
    ID:        uuid.New(),
    BookingID: booking.ID,
    TouristID: booking.TouristID,
    GuideID:   *booking.GuideID,
    Rating:    in.Rating,
    Comment:   strings.TrimSpace(in.Comment),
  }
  // Review insert and rating recompute commit together, so a guide's rating
  // never drifts from their review rows.
  txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := s.reviewRepo.Create(ctx, tx, review); err != nil {
      return fmt.Errorf("Failed to create review: %w", err)
    }
    avg, count, err := s.reviewRepo.AverageByGuide(ctx, tx, review.GuideID)
    if err != nil {
      return fmt.Errorf("Failed to recompute guide rating: %w", err)
    }
    if err := s.guideRepo.Update(ctx, tx, review.GuideID, map[string]interface{}{
      "rating":            avg,
      "number_of_reviews": count,
    }); err != nil {
      return fmt.Errorf("Failed to update guide rating: %w", err)
    }
    return nil
  })
  if txErr != nil {
    return nil, txErr
  }
  return review, nil
}

func (s *reviewService) ListByGuide(ctx context.Context, guideID uuid.UUID) ([]*types.Review, error) {
  reviews, err := s.reviewRepo.ListByGuide(ctx, nil, guideID)
  if err != nil {
    return nil, fmt.Errorf("Failed to list guide reviews: %w", err)
  }
  return reviews, nil
}
