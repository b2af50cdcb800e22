package services

import (
  "context"
  "fmt"
  "strings"
  "github.com/go-playground/validator/v10"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/storage"
  "github.com/ebaiagbor/tourcam-backend/internal/repos"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type CreateEventInput struct {
  Title           string  `validate:"required"`
  Description     string  `validate:"required"`
  Price           float64 `validate:"gt=0"`
  Duration        int     `validate:"gt=0"`
  MaxGroupSize    int     `validate:"gt=0"`
  TouristicSiteID string  `validate:"required"`
  SiteAdminID     string
  GuideID         string
  Images          []*storage.Upload
}

// UpdateEventInput carries a partial field set. Nil pointers mean "leave
// untouched"; for SiteAdminID/GuideID an explicit empty string disconnects the
// relation.
type UpdateEventInput struct {
  Title           *string
  Description     *string
  Price           *float64
  Duration        *int
  MaxGroupSize    *int
  TouristicSiteID *string
  SiteAdminID     *string
  GuideID         *string
  RemoveImageIDs  []uuid.UUID
  NewImages       []*storage.Upload
}

type EventService interface {
  CreateEvent(ctx context.Context, in CreateEventInput) (*types.Event, error)
  UpdateEvent(ctx context.Context, eventID uuid.UUID, in UpdateEventInput) (*types.Event, error)
  DeleteEvent(ctx context.Context, eventID uuid.UUID) error
  GetEvent(ctx context.Context, eventID uuid.UUID) (*types.Event, error)
  ListEvents(ctx context.Context, filter repos.EventFilter) ([]*types.Event, error)
  ListEventsByAdmin(ctx context.Context, adminID uuid.UUID) ([]*types.Event, error)
}

type eventService struct {
  db             *gorm.DB
  log            *logger.Logger
  store          storage.Store
  validate       *validator.Validate
  eventRepo      repos.EventRepo
  eventImageRepo repos.EventImageRepo
  siteRepo       repos.SiteRepo
  siteAdminRepo  repos.SiteAdminRepo
  guideRepo      repos.GuideRepo
  bookingRepo    repos.BookingRepo
}

func NewEventService(
  db *gorm.DB,
  baseLog *logger.Logger,
  store storage.Store,
  eventRepo repos.EventRepo,
  eventImageRepo repos.EventImageRepo,
  siteRepo repos.SiteRepo,
  siteAdminRepo repos.SiteAdminRepo,
  guideRepo repos.GuideRepo,
  bookingRepo repos.BookingRepo,
) EventService {
  serviceLog := baseLog.With("service", "EventService")
  return &eventService{
    db:             db,
    log:            serviceLog,
    store:          store,
    validate:       validator.New(),
    eventRepo:      eventRepo,
    eventImageRepo: eventImageRepo,
    siteRepo:       siteRepo,
    siteAdminRepo:  siteAdminRepo,
    guideRepo:      guideRepo,
    bookingRepo:    bookingRepo,
  }
}

func (s *eventService) CreateEvent(ctx context.Context, in CreateEventInput) (*types.Event, error) {
  in.Title = strings.TrimSpace(in.Title)
  in.Description = strings.TrimSpace(in.Description)
  in.TouristicSiteID = strings.TrimSpace(in.TouristicSiteID)
  in.SiteAdminID = strings.TrimSpace(in.SiteAdminID)
  in.GuideID = strings.TrimSpace(in.GuideID)

  // Every broken rule is collected; the caller gets the full list at once.
  var details []string
  if err := s.validate.Struct(in); err != nil {
    if verrs, ok := err.(validator.ValidationErrors); ok {
      for _, fe := range verrs {
        details = append(details, createEventRule(fe))
      }
    } else {
      s.store.Discard(in.Images)
      return nil, fmt.Errorf("Failed to validate event input: %w", err)
    }
  }
  if in.SiteAdminID == "" && in.GuideID == "" {
    details = append(details, "at least one of siteAdminId or guideId is required")
  }
  var siteID uuid.UUID
  if in.TouristicSiteID != "" {
    parsed, err := uuid.Parse(in.TouristicSiteID)
    if err != nil {
      details = append(details, "touristicSiteId must be a valid id")
    } else {
      siteID = parsed
    }
  }
  adminID, ok := parseOptionalID(in.SiteAdminID, "siteAdminId", &details)
  if !ok {
    adminID = nil
  }
  guideID, ok := parseOptionalID(in.GuideID, "guideId", &details)
  if !ok {
    guideID = nil
  }
  if len(details) > 0 {
    s.store.Discard(in.Images)
    return nil, apierr.Validation(details...)
  }

  siteExists, err := s.siteRepo.Exists(ctx, nil, siteID)
  if err != nil {
    s.store.Discard(in.Images)
    return nil, fmt.Errorf("Failed to check touristic site: %w", err)
  }
  if !siteExists {
    s.store.Discard(in.Images)
    return nil, apierr.NotFound("touristic site")
  }
  if adminID != nil {
    adminExists, err := s.siteAdminRepo.Exists(ctx, nil, *adminID)
    if err != nil {
      s.store.Discard(in.Images)
      return nil, fmt.Errorf("Failed to check site admin: %w", err)
    }
    if !adminExists {
      s.store.Discard(in.Images)
      return nil, apierr.NotFound("site admin")
    }
  }
  if guideID != nil {
    guideExists, err := s.guideRepo.Exists(ctx, nil, *guideID)
    if err != nil {
      s.store.Discard(in.Images)
      return nil, fmt.Errorf("Failed to check tourist guide: %w", err)
    }
    if !guideExists {
      s.store.Discard(in.Images)
      return nil, apierr.NotFound("tourist guide")
    }
  }

  event := &types.Event{
    ID:              uuid.New(),
    Title:           in.Title,
    Description:     in.Description,
    Price:           in.Price,
    Duration:        in.Duration,
    MaxGroupSize:    in.MaxGroupSize,
    TouristicSiteID: siteID,
    SiteAdminID:     adminID,
    GuideID:         guideID,
  }

  txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := s.eventRepo.Create(ctx, tx, []*types.Event{event}); err != nil {
      return fmt.Errorf("Failed to create event: %w", err)
    }
    images := make([]*types.EventImage, 0, len(in.Images))
    for _, up := range in.Images {
      images = append(images, &types.EventImage{
        ID:      up.ID,
        URL:     s.store.URL(up.Category, up.FileName),
        EventID: event.ID,
      })
    }
    if _, err := s.eventImageRepo.Create(ctx, tx, images); err != nil {
      return fmt.Errorf("Failed to create event images: %w", err)
    }
    return nil
  })
  if txErr != nil {
    s.store.Discard(in.Images)
    return nil, txErr
  }
  s.store.Promote(in.Images)

  created, err := s.eventRepo.GetByID(ctx, nil, event.ID)
  if err != nil {
    return nil, fmt.Errorf("Failed to reload created event: %w", err)
  }
  if created == nil {
    return event, nil
  }
  s.log.Info("Created event", "event_id", event.ID, "site_id", siteID)
  return created, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID uuid.UUID, in UpdateEventInput) (*types.Event, error) {
  event, err := s.eventRepo.GetByID(ctx, nil, eventID)
  if err != nil {
    s.store.Discard(in.NewImages)
    return nil, fmt.Errorf("Failed to load event: %w", err)
  }
  if event == nil {
    s.store.Discard(in.NewImages)
    return nil, apierr.NotFound("event")
  }

  fields := map[string]interface{}{}
  var details []string
  if in.Title != nil {
    if strings.TrimSpace(*in.Title) == "" {
      details = append(details, "title must not be empty")
    } else {
      fields["title"] = strings.TrimSpace(*in.Title)
    }
  }
  if in.Description != nil {
    if strings.TrimSpace(*in.Description) == "" {
      details = append(details, "description must not be empty")
    } else {
      fields["description"] = strings.TrimSpace(*in.Description)
    }
  }
  if in.Price != nil {
    if *in.Price <= 0 {
      details = append(details, "price must be greater than zero")
    } else {
      fields["price"] = *in.Price
    }
  }
  if in.Duration != nil {
    if *in.Duration <= 0 {
      details = append(details, "duration must be a positive integer")
    } else {
      fields["duration"] = *in.Duration
    }
  }
  if in.MaxGroupSize != nil {
    if *in.MaxGroupSize <= 0 {
      details = append(details, "maxGroupSize must be a positive integer")
    } else {
      fields["max_group_size"] = *in.MaxGroupSize
    }
  }
  var newSiteID *uuid.UUID
  if in.TouristicSiteID != nil {
    trimmed := strings.TrimSpace(*in.TouristicSiteID)
    if trimmed == "" {
      details = append(details, "touristicSiteId must not be empty")
    } else if parsed, err := uuid.Parse(trimmed); err != nil {
      details = append(details, "touristicSiteId must be a valid id")
    } else {
      newSiteID = &parsed
    }
  }
  if len(details) > 0 {
    s.store.Discard(in.NewImages)
    return nil, apierr.Validation(details...)
  }

  if newSiteID != nil {
    siteExists, err := s.siteRepo.Exists(ctx, nil, *newSiteID)
    if err != nil {
      s.store.Discard(in.NewImages)
      return nil, fmt.Errorf("Failed to check touristic site: %w", err)
    }
    if !siteExists {
      s.store.Discard(in.NewImages)
      return nil, apierr.NotFound("touristic site")
    }
    fields["touristic_site_id"] = *newSiteID
  }
  // Reconnection trusts the caller-supplied id; an empty value disconnects.
  // TODO: verify the new admin/guide exists here the way CreateEvent does.
  if in.SiteAdminID != nil {
    trimmed := strings.TrimSpace(*in.SiteAdminID)
    if trimmed == "" {
      fields["site_admin_id"] = nil
    } else if parsed, err := uuid.Parse(trimmed); err == nil {
      fields["site_admin_id"] = parsed
    } else {
      s.store.Discard(in.NewImages)
      return nil, apierr.Validation("siteAdminId must be a valid id")
    }
  }
  if in.GuideID != nil {
    trimmed := strings.TrimSpace(*in.GuideID)
    if trimmed == "" {
      fields["guide_id"] = nil
    } else if parsed, err := uuid.Parse(trimmed); err == nil {
      fields["guide_id"] = parsed
    } else {
      s.store.Discard(in.NewImages)
      return nil, apierr.Validation("guideId must be a valid id")
    }
  }

  // Only images that belong to this event are removable, whatever ids the
  // caller sends.
  removable, err := s.eventImageRepo.ListByIDsForEvent(ctx, nil, in.RemoveImageIDs, event.ID)
  if err != nil {
    s.store.Discard(in.NewImages)
    return nil, fmt.Errorf("Failed to resolve removable images: %w", err)
  }

  txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := s.eventRepo.Update(ctx, tx, event.ID, fields); err != nil {
      return fmt.Errorf("Failed to update event: %w", err)
    }
    removeIDs := make([]uuid.UUID, 0, len(removable))
    for _, img := range removable {
      removeIDs = append(removeIDs, img.ID)
    }
    if _, err := s.eventImageRepo.DeleteByIDs(ctx, tx, removeIDs); err != nil {
      return fmt.Errorf("Failed to delete event images: %w", err)
    }
    added := make([]*types.EventImage, 0, len(in.NewImages))
    for _, up := range in.NewImages {
      added = append(added, &types.EventImage{
        ID:      up.ID,
        URL:     s.store.URL(up.Category, up.FileName),
        EventID: event.ID,
      })
    }
    if _, err := s.eventImageRepo.Create(ctx, tx, added); err != nil {
      return fmt.Errorf("Failed to add event images: %w", err)
    }
    return nil
  })
  if txErr != nil {
    s.store.Discard(in.NewImages)
    return nil, txErr
  }

  s.store.Promote(in.NewImages)
  for _, img := range removable {
    s.store.RemoveByURL(img.URL)
  }

  updated, err := s.eventRepo.GetByID(ctx, nil, event.ID)
  if err != nil {
    return nil, fmt.Errorf("Failed to reload updated event: %w", err)
  }
  if updated == nil {
    return nil, apierr.NotFound("event")
  }
  return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID uuid.UUID) error {
  event, err := s.eventRepo.GetByID(ctx, nil, eventID)
  if err != nil {
    return fmt.Errorf("Failed to load event: %w", err)
  }
  if event == nil {
    return apierr.NotFound("event")
  }

  active, err := s.bookingRepo.CountActiveByEvent(ctx, nil, event.ID)
  if err != nil {
    return fmt.Errorf("Failed to count active bookings: %w", err)
  }
  if active > 0 {
    return apierr.Conflict(fmt.Sprintf("cannot delete event: %d active booking(s) exist", active))
  }

  // The row delete is authoritative; the schema cascades image and booking
  // rows, and file cleanup afterwards is best effort.
  rows, err := s.eventRepo.Delete(ctx, nil, event.ID)
  if err != nil {
    return fmt.Errorf("Failed to delete event: %w", err)
  }
  if rows == 0 {
    return apierr.NotFound("event")
  }
  for _, img := range event.Images {
    s.store.RemoveByURL(img.URL)
  }
  s.log.Info("Deleted event", "event_id", event.ID)
  return nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID uuid.UUID) (*types.Event, error) {
  event, err := s.eventRepo.GetByID(ctx, nil, eventID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load event: %w", err)
  }
  if event == nil {
    return nil, apierr.NotFound("event")
  }
  if event.SiteAdmin != nil && event.SiteAdmin.User != nil {
    event.SiteAdmin.User.Password = ""
  }
  if event.Guide != nil && event.Guide.User != nil {
    event.Guide.User.Password = ""
  }
  return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter repos.EventFilter) ([]*types.Event, error) {
  events, err := s.eventRepo.List(ctx, nil, filter)
  if err != nil {
    return nil, fmt.Errorf("Failed to list events: %w", err)
  }
  return events, nil
}

func (s *eventService) ListEventsByAdmin(ctx context.Context, adminID uuid.UUID) ([]*types.Event, error) {
  events, err := s.eventRepo.ListByAdmin(ctx, nil, adminID)
  if err != nil {
    return nil, fmt.Errorf("Failed to list admin events: %w", err)
  }
  return events, nil
}

func createEventRule(fe validator.FieldError) string {
  switch fe.Field() {
  case "Title":
    return "title is required"
  case "Description":
    return "description is required"
  case "Price":
    return "price must be greater than zero"
  case "Duration":
    return "duration must be a positive integer"
  case "MaxGroupSize":
    return "maxGroupSize must be a positive integer"
  case "TouristicSiteID":
    return "touristicSiteId is required"
  default:
    return fmt.Sprintf("%s is invalid", fe.Field())
  }
}

func parseOptionalID(raw, label string, details *[]string) (*uuid.UUID, bool) {
  if raw == "" {
    return nil, true
  }
  parsed, err := uuid.Parse(raw)
  if err != nil {
    *details = append(*details, fmt.Sprintf("%s must be a valid id", label))
    return nil, false
  }
  return &parsed, true
}
