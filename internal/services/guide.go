package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/repos"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type CreateGuideInput struct {
  UserID       uuid.UUID
  Bio          string
  Languages    []string
  PricePerHour float64
  Availability map[string]interface{}
}

type UpdateGuideInput struct {
  Bio          *string
  Languages    []string
  PricePerHour *float64
  Availability map[string]interface{}
}

type GuideService interface {
  CreateGuide(ctx context.Context, in CreateGuideInput) (*types.TouristGuide, error)
  GetGuide(ctx context.Context, guideID uuid.UUID) (*types.TouristGuide, error)
  ListGuides(ctx context.Context) ([]*types.TouristGuide, error)
  UpdateGuide(ctx context.Context, guideID uuid.UUID, in UpdateGuideInput) (*types.TouristGuide, error)
}

type guideService struct {
  db        *gorm.DB
  log       *logger.Logger
  guideRepo repos.GuideRepo
  userRepo  repos.UserRepo
}

func NewGuideService(db *gorm.DB, baseLog *logger.Logger, guideRepo repos.GuideRepo, userRepo repos.UserRepo) GuideService {
  serviceLog := baseLog.With("service", "GuideService")
  return &guideService{db: db, log: serviceLog, guideRepo: guideRepo, userRepo: userRepo}
}

func (s *guideService) CreateGuide(ctx context.Context, in CreateGuideInput) (*types.TouristGuide, error) {
  var details []string
  if in.UserID == uuid.Nil {
    details = append(details, "userId is required")
  }
  if in.PricePerHour < 0 {
    details = append(details, "pricePerHour must not be negative")
  }
  if len(details) > 0 {
    return nil, apierr.Validation(details...)
  }

  user, err := s.userRepo.GetByID(ctx, nil, in.UserID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load user: %w", err)
  }
  if user == nil {
    return nil, apierr.NotFound("user")
  }
  existing, err := s.guideRepo.GetByUserID(ctx, nil, in.UserID)
  if err != nil {
    return nil, fmt.Errorf("Failed to check existing guide profile: %w", err)
  }
  if existing != nil {
    return nil, apierr.Conflict("user already has a guide profile")
  }

  languages, err := toJSON(in.Languages)
  if err != nil {
    return nil, fmt.Errorf("Failed to encode languages: %w", err)
  }
  availability, err := toJSON(in.Availability)
  if err != nil {
    return nil, fmt.Errorf("Failed to encode availability: %w", err)
  }

  guide := &types.TouristGuide{
    ID:           uuid.New(),
    UserID:       in.UserID,
    Bio:          strings.TrimSpace(in.Bio),
    Languages:    languages,
    PricePerHour: in.PricePerHour,
    Availability: availability,
  }
  txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := s.guideRepo.Create(ctx, tx, []*types.TouristGuide{guide}); err != nil {
      return fmt.Errorf("Failed to create guide profile: %w", err)
    }
    if user.Role == types.RoleTourist {
      if err := s.userRepo.Update(ctx, tx, user.ID, map[string]interface{}{"role": types.RoleGuide}); err != nil {
        return fmt.Errorf("Failed to promote user to guide: %w", err)
      }
    }
    return nil
  })
  if txErr != nil {
    return nil, txErr
  }
  return guide, nil
}

func (s *guideService) GetGuide(ctx context.Context, guideID uuid.UUID) (*types.TouristGuide, error) {
  guide, err := s.guideRepo.GetByID(ctx, nil, guideID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load guide: %w", err)
  }
  if guide == nil {
    return nil, apierr.NotFound("tourist guide")
  }
  if guide.User != nil {
    guide.User.Password = ""
  }
  return guide, nil
}

func (s *guideService) ListGuides(ctx context.Context) ([]*types.TouristGuide, error) {
  guides, err := s.guideRepo.List(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to list guides: %w", err)
  }
  for _, g := range guides {
    if g.User != nil {
      g.User.Password = ""
    }
  }
  return guides, nil
}

func (s *guideService) UpdateGuide(ctx context.Context, guideID uuid.UUID, in UpdateGuideInput) (*types.TouristGuide, error) {
  guide, err := s.guideRepo.GetByID(ctx, nil, guideID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load guide: %w", err)
  }
  if guide == nil {
    return nil, apierr.NotFound("tourist guide")
  }

  fields := map[string]interface{}{}
  if in.Bio != nil {
    fields["bio"] = strings.TrimSpace(*in.Bio)
  }
  if in.PricePerHour != nil {
    if *in.PricePerHour < 0 {
      return nil, apierr.Validation("pricePerHour must not be negative")
    }
    fields["price_per_hour"] = *in.PricePerHour
  }
  if in.Languages != nil {
    languages, err := toJSON(in.Languages)
    if err != nil {
      return nil, fmt.Errorf("Failed to encode languages: %w", err)
    }
    fields["languages"] = languages
  }
  if in.Availability != nil {
    availability, err := toJSON(in.Availability)
    if err != nil {
      return nil, fmt.Errorf("Failed to encode availability: %w", err)
    }
    fields["availability"] = availability
  }
  if err := s.guideRepo.Update(ctx, nil, guide.ID, fields); err != nil {
    return nil, fmt.Errorf("Failed to update guide: %w", err)
  }
  return s.GetGuide(ctx, guide.ID)
}

func toJSON(v interface{}) (datatypes.JSON, error) {
  if v == nil {
    return nil, nil
  }
  raw, err := json.Marshal(v)
  if err != nil {
    return nil, err
  }
  return datatypes.JSON(raw), nil
}
