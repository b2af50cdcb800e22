package services

import (
  "context"
  "fmt"
  "strings"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/storage"
  "github.com/ebaiagbor/tourcam-backend/internal/repos"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type UpdateSiteInput struct {
  Name         *string
  Description  *string
  Location     *string
  Latitude     *float64
  Longitude    *float64
  Category     *string
  OpeningHours *string
  EntryFee     *float64
  NewImages    []*storage.Upload
}

type SiteService interface {
  GetSite(ctx context.Context, siteID uuid.UUID) (*types.TouristicSite, error)
  ListSites(ctx context.Context) ([]*types.TouristicSite, error)
  ListSitesPaged(ctx context.Context, page, pageSize int) ([]*types.TouristicSite, int64, error)
  UpdateSite(ctx context.Context, siteID uuid.UUID, in UpdateSiteInput) (*types.TouristicSite, error)
  GetSiteByAdmin(ctx context.Context, adminID uuid.UUID) (*types.TouristicSite, error)
}

type siteService struct {
  db            *gorm.DB
  log           *logger.Logger
  store         storage.Store
  siteRepo      repos.SiteRepo
  siteAdminRepo repos.SiteAdminRepo
  siteImageRepo repos.SiteImageRepo
}

func NewSiteService(db *gorm.DB, baseLog *logger.Logger, store storage.Store, siteRepo repos.SiteRepo, siteAdminRepo repos.SiteAdminRepo, siteImageRepo repos.SiteImageRepo) SiteService {
  serviceLog := baseLog.With("service", "SiteService")
  return &siteService{db: db, log: serviceLog, store: store, siteRepo: siteRepo, siteAdminRepo: siteAdminRepo, siteImageRepo: siteImageRepo}
}

func (s *siteService) GetSite(ctx context.Context, siteID uuid.UUID) (*types.TouristicSite, error) {
  site, err := s.siteRepo.GetByID(ctx, nil, siteID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load touristic site: %w", err)
  }
  if site == nil {
    return nil, apierr.NotFound("touristic site")
  }
  return site, nil
}

func (s *siteService) ListSites(ctx context.Context) ([]*types.TouristicSite, error) {
  sites, err := s.siteRepo.List(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to list touristic sites: %w", err)
  }
  return sites, nil
}

func (s *siteService) ListSitesPaged(ctx context.Context, page, pageSize int) ([]*types.TouristicSite, int64, error) {
  if page < 1 {
    page = 1
  }
  if pageSize < 1 || pageSize > 100 {
    pageSize = 20
  }
  sites, total, err := s.siteRepo.ListPaged(ctx, nil, (page-1)*pageSize, pageSize)
  if err != nil {
    return nil, 0, fmt.Errorf("Failed to list touristic sites: %w", err)
  }
  return sites, total, nil
}

func (s *siteService) UpdateSite(ctx context.Context, siteID uuid.UUID, in UpdateSiteInput) (*types.TouristicSite, error) {
  site, err := s.siteRepo.GetByID(ctx, nil, siteID)
  if err != nil {
    s.store.Discard(in.NewImages)
    return nil, fmt.Errorf("Failed to load touristic site: %w", err)
  }
  if site == nil {
    s.store.Discard(in.NewImages)
    return nil, apierr.NotFound("touristic site")
  }

  fields := map[string]interface{}{}
  var details []string
  if in.Name != nil {
    if strings.TrimSpace(*in.Name) == "" {
      details = append(details, "name must not be empty")
    } else {
      fields["name"] = strings.TrimSpace(*in.Name)
    }
  }
  if in.Location != nil {
    if strings.TrimSpace(*in.Location) == "" {
      details = append(details, "location must not be empty")
    } else {
      fields["location"] = strings.TrimSpace(*in.Location)
    }
  }
  if in.Description != nil {
    fields["description"] = *in.Description
  }
  if in.Latitude != nil {
    fields["latitude"] = *in.Latitude
  }
  if in.Longitude != nil {
    fields["longitude"] = *in.Longitude
  }
  if in.Category != nil {
    fields["category"] = *in.Category
  }
  if in.OpeningHours != nil {
    fields["opening_hours"] = *in.OpeningHours
  }
  if in.EntryFee != nil {
    fields["entry_fee"] = *in.EntryFee
  }
  if len(details) > 0 {
    s.store.Discard(in.NewImages)
    return nil, apierr.Validation(details...)
  }

  txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := s.siteRepo.Update(ctx, tx, site.ID, fields); err != nil {
      return fmt.Errorf("Failed to update touristic site: %w", err)
    }
    images := make([]*types.TouristicSiteImage, 0, len(in.NewImages))
    for _, up := range in.NewImages {
      images = append(images, &types.TouristicSiteImage{
        ID:              up.ID,
        URL:             s.store.URL(up.Category, up.FileName),
        TouristicSiteID: site.ID,
      })
    }
    if _, err := s.siteImageRepo.Create(ctx, tx, images); err != nil {
      return fmt.Errorf("Failed to add site images: %w", err)
    }
    return nil
  })
  if txErr != nil {
    s.store.Discard(in.NewImages)
    return nil, txErr
  }
  s.store.Promote(in.NewImages)

  return s.GetSite(ctx, site.ID)
}

func (s *siteService) GetSiteByAdmin(ctx context.Context, adminID uuid.UUID) (*types.TouristicSite, error) {
  admin, err := s.siteAdminRepo.GetByID(ctx, nil, adminID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load site admin: %w", err)
  }
  if admin == nil {
    return nil, apierr.NotFound("site admin")
  }
  return s.GetSite(ctx, admin.TouristicSiteID)
}
