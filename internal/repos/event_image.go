package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type EventImageRepo interface {
  Create(ctx context.Context, tx *gorm.DB, images []*types.EventImage) ([]*types.EventImage, error)
  ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EventImage, error)
  ListByIDsForEvent(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID, eventID uuid.UUID) ([]*types.EventImage, error)
  DeleteByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) (int64, error)
}

type eventImageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewEventImageRepo(db *gorm.DB, baseLog *logger.Logger) EventImageRepo {
  repoLog := baseLog.With("repo", "EventImageRepo")
  return &eventImageRepo{db: db, log: repoLog}
}

func (ir *eventImageRepo) Create(ctx context.Context, tx *gorm.DB, images []*types.EventImage) ([]*types.EventImage, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  if len(images) == 0 {
    return []*types.EventImage{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&images).Error; err != nil {
    return nil, err
  }
  return images, nil
}

func (ir *eventImageRepo) ListByEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EventImage, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  var results []*types.EventImage
  if err := transaction.WithContext(ctx).
    Where("event_id = ?", eventID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// ListByIDsForEvent resolves only images that are both in the id set and owned
// by the given event, so callers can never touch another event's images.
func (ir *eventImageRepo) ListByIDsForEvent(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID, eventID uuid.UUID) ([]*types.EventImage, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  var results []*types.EventImage
  if len(imageIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ? AND event_id = ?", imageIDs, eventID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ir *eventImageRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  if len(imageIDs) == 0 {
    return 0, nil
  }
  res := transaction.WithContext(ctx).Where("id IN ?", imageIDs).Delete(&types.EventImage{})
  return res.RowsAffected, res.Error
}
