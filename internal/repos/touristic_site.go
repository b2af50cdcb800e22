package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type SiteRepo interface {
  Create(ctx context.Context, tx *gorm.DB, sites []*types.TouristicSite) ([]*types.TouristicSite, error)
  GetByID(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (*types.TouristicSite, error)
  Exists(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (bool, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.TouristicSite, error)
  ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.TouristicSite, int64, error)
  Update(ctx context.Context, tx *gorm.DB, siteID uuid.UUID, fields map[string]interface{}) error
  Delete(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (int64, error)
}

type siteRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSiteRepo(db *gorm.DB, baseLog *logger.Logger) SiteRepo {
  repoLog := baseLog.With("repo", "SiteRepo")
  return &siteRepo{db: db, log: repoLog}
}

func (sr *siteRepo) Create(ctx context.Context, tx *gorm.DB, sites []*types.TouristicSite) ([]*types.TouristicSite, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  if len(sites) == 0 {
    return []*types.TouristicSite{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&sites).Error; err != nil {
    return nil, err
  }
  return sites, nil
}

func (sr *siteRepo) GetByID(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (*types.TouristicSite, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var result types.TouristicSite
  err := transaction.WithContext(ctx).
    Preload("Images").
    Where("id = ?", siteID).
    First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (sr *siteRepo) Exists(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.TouristicSite{}).
    Where("id = ?", siteID).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}

func (sr *siteRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.TouristicSite, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var results []*types.TouristicSite
  if err := transaction.WithContext(ctx).
    Preload("Images").
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (sr *siteRepo) ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.TouristicSite, int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var total int64
  if err := transaction.WithContext(ctx).
    Model(&types.TouristicSite{}).
    Count(&total).Error; err != nil {
    return nil, 0, err
  }
  var results []*types.TouristicSite
  if err := transaction.WithContext(ctx).
    Preload("Images").
    Order("created_at DESC").
    Offset(offset).
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, 0, err
  }
  return results, total, nil
}

func (sr *siteRepo) Update(ctx context.Context, tx *gorm.DB, siteID uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  if len(fields) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Model(&types.TouristicSite{}).
    Where("id = ?", siteID).
    Updates(fields).Error
}

func (sr *siteRepo) Delete(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  res := transaction.WithContext(ctx).Where("id = ?", siteID).Delete(&types.TouristicSite{})
  return res.RowsAffected, res.Error
}
