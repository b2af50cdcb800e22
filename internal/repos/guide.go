package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type GuideRepo interface {
  Create(ctx context.Context, tx *gorm.DB, guides []*types.TouristGuide) ([]*types.TouristGuide, error)
  GetByID(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) (*types.TouristGuide, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.TouristGuide, error)
  Exists(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) (bool, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.TouristGuide, error)
  Update(ctx context.Context, tx *gorm.DB, guideID uuid.UUID, fields map[string]interface{}) error
}

type guideRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewGuideRepo(db *gorm.DB, baseLog *logger.Logger) GuideRepo {
  repoLog := baseLog.With("repo", "GuideRepo")
  return &guideRepo{db: db, log: repoLog}
}

func (gr *guideRepo) Create(ctx context.Context, tx *gorm.DB, guides []*types.TouristGuide) ([]*types.TouristGuide, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }
  if len(guides) == 0 {
    return []*types.TouristGuide{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&guides).Error; err != nil {
    return nil, err
  }
  return guides, nil
}

func (gr *guideRepo) GetByID(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) (*types.TouristGuide, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }
  var result types.TouristGuide
  err := transaction.WithContext(ctx).
    Preload("User").
    Where("id = ?", guideID).
    First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (gr *guideRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.TouristGuide, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }
  var result types.TouristGuide
  err := transaction.WithContext(ctx).Where("user_id = ?", userID).First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (gr *guideRepo) Exists(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.TouristGuide{}).
    Where("id = ?", guideID).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}

func (gr *guideRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.TouristGuide, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }
  var results []*types.TouristGuide
  if err := transaction.WithContext(ctx).
    Preload("User").
    Order("rating DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (gr *guideRepo) Update(ctx context.Context, tx *gorm.DB, guideID uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }
  if len(fields) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Model(&types.TouristGuide{}).
    Where("id = ?", guideID).
    Updates(fields).Error
}
