package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type ReviewRepo interface {
  Create(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error)
  GetByBookingID(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (*types.Review, error)
  ListByGuide(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) ([]*types.Review, error)
  AverageByGuide(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) (float64, int64, error)
}

type reviewRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
  repoLog := baseLog.With("repo", "ReviewRepo")
  return &reviewRepo{db: db, log: repoLog}
}

func (rr *reviewRepo) Create(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if err := transaction.WithContext(ctx).Create(review).Error; err != nil {
    return nil, err
  }
  return review, nil
}

func (rr *reviewRepo) GetByBookingID(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (*types.Review, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var result types.Review
  err := transaction.WithContext(ctx).Where("booking_id = ?", bookingID).First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (rr *reviewRepo) ListByGuide(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) ([]*types.Review, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var results []*types.Review
  if err := transaction.WithContext(ctx).
    Where("guide_id = ?", guideID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *reviewRepo) AverageByGuide(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) (float64, int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var row struct {
    Avg   float64
    Count int64
  }
  if err := transaction.WithContext(ctx).
    Model(&types.Review{}).
    Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
    Where("guide_id = ?", guideID).
    Scan(&row).Error; err != nil {
    return 0, 0, err
  }
  return row.Avg, row.Count, nil
}
