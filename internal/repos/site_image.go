package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type SiteImageRepo interface {
  Create(ctx context.Context, tx *gorm.DB, images []*types.TouristicSiteImage) ([]*types.TouristicSiteImage, error)
  ListBySite(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) ([]*types.TouristicSiteImage, error)
  DeleteBySite(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (int64, error)
}

type siteImageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSiteImageRepo(db *gorm.DB, baseLog *logger.Logger) SiteImageRepo {
  repoLog := baseLog.With("repo", "SiteImageRepo")
  return &siteImageRepo{db: db, log: repoLog}
}

func (ir *siteImageRepo) Create(ctx context.Context, tx *gorm.DB, images []*types.TouristicSiteImage) ([]*types.TouristicSiteImage, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  if len(images) == 0 {
    return []*types.TouristicSiteImage{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&images).Error; err != nil {
    return nil, err
  }
  return images, nil
}

func (ir *siteImageRepo) ListBySite(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) ([]*types.TouristicSiteImage, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  var results []*types.TouristicSiteImage
  if err := transaction.WithContext(ctx).
    Where("touristic_site_id = ?", siteID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ir *siteImageRepo) DeleteBySite(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  res := transaction.WithContext(ctx).Where("touristic_site_id = ?", siteID).Delete(&types.TouristicSiteImage{})
  return res.RowsAffected, res.Error
}
