package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type SiteAdminRepo interface {
  Create(ctx context.Context, tx *gorm.DB, admins []*types.TouristicSiteAdmin) ([]*types.TouristicSiteAdmin, error)
  GetByID(ctx context.Context, tx *gorm.DB, adminID uuid.UUID) (*types.TouristicSiteAdmin, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.TouristicSiteAdmin, error)
  Exists(ctx context.Context, tx *gorm.DB, adminID uuid.UUID) (bool, error)
  Delete(ctx context.Context, tx *gorm.DB, adminID uuid.UUID) (int64, error)
}

type siteAdminRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSiteAdminRepo(db *gorm.DB, baseLog *logger.Logger) SiteAdminRepo {
  repoLog := baseLog.With("repo", "SiteAdminRepo")
  return &siteAdminRepo{db: db, log: repoLog}
}

func (ar *siteAdminRepo) Create(ctx context.Context, tx *gorm.DB, admins []*types.TouristicSiteAdmin) ([]*types.TouristicSiteAdmin, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  if len(admins) == 0 {
    return []*types.TouristicSiteAdmin{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&admins).Error; err != nil {
    return nil, err
  }
  return admins, nil
}

func (ar *siteAdminRepo) GetByID(ctx context.Context, tx *gorm.DB, adminID uuid.UUID) (*types.TouristicSiteAdmin, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var result types.TouristicSiteAdmin
  err := transaction.WithContext(ctx).
    Preload("User").
    Preload("Site").
    Preload("Site.Images").
    Where("id = ?", adminID).
    First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (ar *siteAdminRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.TouristicSiteAdmin, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var result types.TouristicSiteAdmin
  err := transaction.WithContext(ctx).Where("user_id = ?", userID).First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (ar *siteAdminRepo) Exists(ctx context.Context, tx *gorm.DB, adminID uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.TouristicSiteAdmin{}).
    Where("id = ?", adminID).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}

func (ar *siteAdminRepo) Delete(ctx context.Context, tx *gorm.DB, adminID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  res := transaction.WithContext(ctx).Where("id = ?", adminID).Delete(&types.TouristicSiteAdmin{})
  return res.RowsAffected, res.Error
}
