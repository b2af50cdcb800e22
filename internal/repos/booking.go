package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type BookingRepo interface {
  Create(ctx context.Context, tx *gorm.DB, bookings []*types.Booking) ([]*types.Booking, error)
  GetByID(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (*types.Booking, error)
  CountActiveByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error)
  CountActiveByEvents(ctx context.Context, tx *gorm.DB, eventIDs []uuid.UUID) (int64, error)
  ListByTourist(ctx context.Context, tx *gorm.DB, touristID uuid.UUID) ([]*types.Booking, error)
  ListByGuide(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) ([]*types.Booking, error)
  UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID, status string) error
}

type bookingRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewBookingRepo(db *gorm.DB, baseLog *logger.Logger) BookingRepo {
  repoLog := baseLog.With("repo", "BookingRepo")
  return &bookingRepo{db: db, log: repoLog}
}

func (br *bookingRepo) Create(ctx context.Context, tx *gorm.DB, bookings []*types.Booking) ([]*types.Booking, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  if len(bookings) == 0 {
    return []*types.Booking{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&bookings).Error; err != nil {
    return nil, err
  }
  return bookings, nil
}

func (br *bookingRepo) GetByID(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (*types.Booking, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  var result types.Booking
  err := transaction.WithContext(ctx).Where("id = ?", bookingID).First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (br *bookingRepo) CountActiveByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error) {
  return br.CountActiveByEvents(ctx, tx, []uuid.UUID{eventID})
}

func (br *bookingRepo) CountActiveByEvents(ctx context.Context, tx *gorm.DB, eventIDs []uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  var count int64
  if len(eventIDs) == 0 {
    return 0, nil
  }
  if err := transaction.WithContext(ctx).
    Model(&types.Booking{}).
    Where("event_id IN ? AND status IN ?", eventIDs, types.ActiveBookingStatuses).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (br *bookingRepo) ListByTourist(ctx context.Context, tx *gorm.DB, touristID uuid.UUID) ([]*types.Booking, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  var results []*types.Booking
  if err := transaction.WithContext(ctx).
    Where("tourist_id = ?", touristID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (br *bookingRepo) ListByGuide(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) ([]*types.Booking, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  var results []*types.Booking
  if err := transaction.WithContext(ctx).
    Where("guide_id = ?", guideID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (br *bookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID, status string) error {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Booking{}).
    Where("id = ?", bookingID).
    Update("status", status).Error
}
