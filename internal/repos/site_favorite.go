package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type SiteFavoriteRepo interface {
  Create(ctx context.Context, tx *gorm.DB, favorite *types.TouristicSiteFavorite) (*types.TouristicSiteFavorite, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.TouristicSiteFavorite, error)
  DeleteBySite(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (int64, error)
  DeleteByUserAndSite(ctx context.Context, tx *gorm.DB, userID, siteID uuid.UUID) (int64, error)
}

type siteFavoriteRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSiteFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) SiteFavoriteRepo {
  repoLog := baseLog.With("repo", "SiteFavoriteRepo")
  return &siteFavoriteRepo{db: db, log: repoLog}
}

func (fr *siteFavoriteRepo) Create(ctx context.Context, tx *gorm.DB, favorite *types.TouristicSiteFavorite) (*types.TouristicSiteFavorite, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  if err := transaction.WithContext(ctx).Create(favorite).Error; err != nil {
    return nil, err
  }
  return favorite, nil
}

func (fr *siteFavoriteRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.TouristicSiteFavorite, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  var results []*types.TouristicSiteFavorite
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (fr *siteFavoriteRepo) DeleteBySite(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  res := transaction.WithContext(ctx).Where("touristic_site_id = ?", siteID).Delete(&types.TouristicSiteFavorite{})
  return res.RowsAffected, res.Error
}

func (fr *siteFavoriteRepo) DeleteByUserAndSite(ctx context.Context, tx *gorm.DB, userID, siteID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  res := transaction.WithContext(ctx).
    Where("user_id = ? AND touristic_site_id = ?", userID, siteID).
    Delete(&types.TouristicSiteFavorite{})
  return res.RowsAffected, res.Error
}
