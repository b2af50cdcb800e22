package services

import (
  "context"
  "fmt"
  "strings"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/storage"
  "github.com/ebaiagbor/tourcam-backend/internal/repos"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type CreateSiteAdminInput struct {
  Name            string
  Email           string
  Password        string
  PhoneNumber     string
  SiteName        string
  SiteDescription string
  SiteLocation    string
  Latitude        *float64
  Longitude       *float64
  Category        string
  OpeningHours    string
  EntryFee        *float64
  Images          []*storage.Upload
}

// SiteAdminService owns the user+site+admin aggregate: the three rows are
// created in one transaction and torn down in one transaction, in strict
// child-before-parent order.
type SiteAdminService interface {
  CreateSiteAdmin(ctx context.Context, in CreateSiteAdminInput) (*types.User, *types.TouristicSite, error)
  DeleteSiteAdmin(ctx context.Context, adminID uuid.UUID) error
  GetSiteAdmin(ctx context.Context, adminID uuid.UUID) (*types.TouristicSiteAdmin, error)
}

type siteAdminService struct {
  db            *gorm.DB
  log           *logger.Logger
  store         storage.Store
  userRepo      repos.UserRepo
  siteRepo      repos.SiteRepo
  siteAdminRepo repos.SiteAdminRepo
  siteImageRepo repos.SiteImageRepo
  favoriteRepo  repos.SiteFavoriteRepo
  eventRepo     repos.EventRepo
  bookingRepo   repos.BookingRepo
}

func NewSiteAdminService(
  db *gorm.DB,
  baseLog *logger.Logger,
  store storage.Store,
  userRepo repos.UserRepo,
  siteRepo repos.SiteRepo,
  siteAdminRepo repos.SiteAdminRepo,
  siteImageRepo repos.SiteImageRepo,
  favoriteRepo repos.SiteFavoriteRepo,
  eventRepo repos.EventRepo,
  bookingRepo repos.BookingRepo,
) SiteAdminService {
  serviceLog := baseLog.With("service", "SiteAdminService")
  return &siteAdminService{
    db:            db,
    log:           serviceLog,
    store:         store,
    userRepo:      userRepo,
    siteRepo:      siteRepo,
    siteAdminRepo: siteAdminRepo,
    siteImageRepo: siteImageRepo,
    favoriteRepo:  favoriteRepo,
    eventRepo:     eventRepo,
    bookingRepo:   bookingRepo,
  }
}

func (s *siteAdminService) CreateSiteAdmin(ctx context.Context, in CreateSiteAdminInput) (*types.User, *types.TouristicSite, error) {
  var missing []string
  if strings.TrimSpace(in.Name) == "" {
    missing = append(missing, "name is required")
  }
  if strings.TrimSpace(in.Email) == "" {
    missing = append(missing, "email is required")
  }
  if strings.TrimSpace(in.Password) == "" {
    missing = append(missing, "password is required")
  }
  if strings.TrimSpace(in.SiteName) == "" {
    missing = append(missing, "site name is required")
  }
  if strings.TrimSpace(in.SiteLocation) == "" {
    missing = append(missing, "site location is required")
  }
  if len(missing) > 0 {
    s.store.Discard(in.Images)
    return nil, nil, apierr.Validation(missing...)
  }

  email := strings.ToLower(strings.TrimSpace(in.Email))

  // Checked before the transaction opens so a duplicate email never costs a
  // round of row writes.
  exists, err := s.userRepo.EmailExists(ctx, nil, email)
  if err != nil {
    s.store.Discard(in.Images)
    return nil, nil, fmt.Errorf("Failed to check email uniqueness: %w", err)
  }
  if exists {
    s.store.Discard(in.Images)
    return nil, nil, apierr.Conflict("email already in use")
  }

  hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
  if err != nil {
    s.store.Discard(in.Images)
    return nil, nil, fmt.Errorf("Failed to hash password: %w", err)
  }

  user := &types.User{
    ID:          uuid.New(),
    Email:       email,
    Name:        strings.TrimSpace(in.Name),
    Password:    string(hashed),
    PhoneNumber: strings.TrimSpace(in.PhoneNumber),
    Role:        types.RoleSiteAdmin,
  }
  site := &types.TouristicSite{
    ID:           uuid.New(),
    Name:         strings.TrimSpace(in.SiteName),
    Description:  in.SiteDescription,
    Location:     strings.TrimSpace(in.SiteLocation),
    Latitude:     in.Latitude,
    Longitude:    in.Longitude,
    Category:     in.Category,
    OpeningHours: in.OpeningHours,
    EntryFee:     in.EntryFee,
  }
  admin := &types.TouristicSiteAdmin{
    ID:              uuid.New(),
    UserID:          user.ID,
    TouristicSiteID: site.ID,
  }

  txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := s.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
      return fmt.Errorf("Failed to create user: %w", err)
    }
    if _, err := s.siteRepo.Create(ctx, tx, []*types.TouristicSite{site}); err != nil {
      return fmt.Errorf("Failed to create touristic site: %w", err)
    }
    if _, err := s.siteAdminRepo.Create(ctx, tx, []*types.TouristicSiteAdmin{admin}); err != nil {
      return fmt.Errorf("Failed to create site admin: %w", err)
    }
    images := make([]*types.TouristicSiteImage, 0, len(in.Images))
    for _, up := range in.Images {
      images = append(images, &types.TouristicSiteImage{
        ID:              up.ID,
        URL:             s.store.URL(up.Category, up.FileName),
        TouristicSiteID: site.ID,
      })
    }
    if _, err := s.siteImageRepo.Create(ctx, tx, images); err != nil {
      return fmt.Errorf("Failed to create site images: %w", err)
    }
    site.Images = make([]types.TouristicSiteImage, 0, len(images))
    for _, img := range images {
      site.Images = append(site.Images, *img)
    }
    return nil
  })
  if txErr != nil {
    s.store.Discard(in.Images)
    return nil, nil, txErr
  }

  // Rows are committed; only now do the staged files become publicly visible.
  s.store.Promote(in.Images)

  user.Password = ""
  s.log.Info("Created site admin aggregate", "admin_id", admin.ID, "site_id", site.ID, "user_id", user.ID)
  return user, site, nil
}

func (s *siteAdminService) DeleteSiteAdmin(ctx context.Context, adminID uuid.UUID) error {
  admin, err := s.siteAdminRepo.GetByID(ctx, nil, adminID)
  if err != nil {
    return fmt.Errorf("Failed to load site admin: %w", err)
  }
  if admin == nil {
    return apierr.NotFound("site admin")
  }

  // Every event attached to the site counts, including guide-run events the
  // admin never created; they die with the site so they must hold it too.
  events, err := s.eventRepo.ListBySiteWithBookings(ctx, nil, admin.TouristicSiteID)
  if err != nil {
    return fmt.Errorf("Failed to load site events: %w", err)
  }
  eventIDs := make([]uuid.UUID, 0, len(events))
  for _, ev := range events {
    eventIDs = append(eventIDs, ev.ID)
  }

  // The guard runs strictly before any mutation.
  active, err := s.bookingRepo.CountActiveByEvents(ctx, nil, eventIDs)
  if err != nil {
    return fmt.Errorf("Failed to count active bookings: %w", err)
  }
  if active > 0 {
    return apierr.Conflict(fmt.Sprintf("cannot delete site admin: %d active bookings exist for its events", active))
  }

  var fileURLs []string
  for _, ev := range events {
    for _, img := range ev.Images {
      fileURLs = append(fileURLs, img.URL)
    }
  }
  if admin.Site != nil {
    for _, img := range admin.Site.Images {
      fileURLs = append(fileURLs, img.URL)
    }
  }

  txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    // Strict child-before-parent order: events, site images, site favorites,
    // the admin row, the site row, the user row.
    if _, err := s.eventRepo.DeleteBySite(ctx, tx, admin.TouristicSiteID); err != nil {
      return fmt.Errorf("Failed to delete site events: %w", err)
    }
    if _, err := s.siteImageRepo.DeleteBySite(ctx, tx, admin.TouristicSiteID); err != nil {
      return fmt.Errorf("Failed to delete site images: %w", err)
    }
    if _, err := s.favoriteRepo.DeleteBySite(ctx, tx, admin.TouristicSiteID); err != nil {
      return fmt.Errorf("Failed to delete site favorites: %w", err)
    }
    rows, err := s.siteAdminRepo.Delete(ctx, tx, admin.ID)
    if err != nil {
      return fmt.Errorf("Failed to delete site admin: %w", err)
    }
    if rows == 0 {
      // A concurrent delete committed first.
      return apierr.NotFound("site admin")
    }
    if _, err := s.siteRepo.Delete(ctx, tx, admin.TouristicSiteID); err != nil {
      return fmt.Errorf("Failed to delete touristic site: %w", err)
    }
    if _, err := s.userRepo.Delete(ctx, tx, admin.UserID); err != nil {
      return fmt.Errorf("Failed to delete user: %w", err)
    }
    return nil
  })
  if txErr != nil {
    return txErr
  }

  // Compensating cleanup after the commit; never fails the operation.
  for _, url := range fileURLs {
    s.store.RemoveByURL(url)
  }
  s.log.Info("Deleted site admin aggregate", "admin_id", admin.ID, "site_id", admin.TouristicSiteID, "user_id", admin.UserID)
  return nil
}

func (s *siteAdminService) GetSiteAdmin(ctx context.Context, adminID uuid.UUID) (*types.TouristicSiteAdmin, error) {
  admin, err := s.siteAdminRepo.GetByID(ctx, nil, adminID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load site admin: %w", err)
  }
  if admin == nil {
    return nil, apierr.NotFound("site admin")
  }
  if admin.User != nil {
    admin.User.Password = ""
  }
  return admin, nil
}
