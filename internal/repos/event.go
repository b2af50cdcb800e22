package repos

import (
  "context"
  "strings"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

// EventFilter narrows a listing. Zero values mean "no constraint".
type EventFilter struct {
  Search      string
  SiteID      *uuid.UUID
  SiteAdminID *uuid.UUID
  GuideID     *uuid.UUID
  Sort        string // "price_asc", "price_desc", "newest" (default)
}

type EventRepo interface {
  Create(ctx context.Context, tx *gorm.DB, events []*types.Event) ([]*types.Event, error)
  GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.Event, error)
  List(ctx context.Context, tx *gorm.DB, filter EventFilter) ([]*types.Event, error)
  ListByAdmin(ctx context.Context, tx *gorm.DB, adminID uuid.UUID) ([]*types.Event, error)
  ListBySiteWithBookings(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) ([]*types.Event, error)
  Update(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, fields map[string]interface{}) error
  Delete(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error)
  DeleteBySite(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (int64, error)
}

type eventRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
  repoLog := baseLog.With("repo", "EventRepo")
  return &eventRepo{db: db, log: repoLog}
}

func (er *eventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.Event) ([]*types.Event, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }
  if len(events) == 0 {
    return []*types.Event{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
    return nil, err
  }
  return events, nil
}

func (er *eventRepo) GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.Event, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }
  var result types.Event
  err := transaction.WithContext(ctx).
    Preload("Images").
    Preload("Site").
    Preload("SiteAdmin").
    Preload("SiteAdmin.User").
    Preload("Guide").
    Preload("Guide.User").
    Where("id = ?", eventID).
    First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (er *eventRepo) List(ctx context.Context, tx *gorm.DB, filter EventFilter) ([]*types.Event, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }
  q := transaction.WithContext(ctx).
    Model(&types.Event{}).
    Preload("Images").
    Preload("Site")
  if s := strings.TrimSpace(filter.Search); s != "" {
    like := "%" + s + "%"
    q = q.Where("title ILIKE ? OR description ILIKE ?", like, like)
  }
  if filter.SiteID != nil {
    q = q.Where("touristic_site_id = ?", *filter.SiteID)
  }
  if filter.SiteAdminID != nil {
    q = q.Where("site_admin_id = ?", *filter.SiteAdminID)
  }
  if filter.GuideID != nil {
    q = q.Where("guide_id = ?", *filter.GuideID)
  }
  switch filter.Sort {
  case "price_asc":
    q = q.Order("price ASC")
  case "price_desc":
    q = q.Order("price DESC")
  default:
    q = q.Order("created_at DESC")
  }
  var results []*types.Event
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (er *eventRepo) ListByAdmin(ctx context.Context, tx *gorm.DB, adminID uuid.UUID) ([]*types.Event, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }
  var results []*types.Event
  if err := transaction.WithContext(ctx).
    Preload("Images").
    Where("site_admin_id = ?", adminID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// ListBySiteWithBookings returns every event attached to the site, including
// guide-run events that carry no site_admin_id.
func (er *eventRepo) ListBySiteWithBookings(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) ([]*types.Event, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }
  var results []*types.Event
  if err := transaction.WithContext(ctx).
    Preload("Images").
    Preload("Bookings").
    Where("touristic_site_id = ?", siteID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (er *eventRepo) Update(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }
  if len(fields) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Model(&types.Event{}).
    Where("id = ?", eventID).
    Updates(fields).Error
}

func (er *eventRepo) Delete(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }
  res := transaction.WithContext(ctx).Where("id = ?", eventID).Delete(&types.Event{})
  return res.RowsAffected, res.Error
}

func (er *eventRepo) DeleteBySite(ctx context.Context, tx *gorm.DB, siteID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }
  res := transaction.WithContext(ctx).Where("touristic_site_id = ?", siteID).Delete(&types.Event{})
  return res.RowsAffected, res.Error
}
