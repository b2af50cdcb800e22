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

type CreateUserInput struct {
  Name           string
  Email          string
  Password       string
  PhoneNumber    string
  Role           string
  ProfilePicture *storage.Upload
}

type UpdateUserInput struct {
  Name           *string
  Email          *string
  Password       *string
  PhoneNumber    *string
  ProfilePicture *storage.Upload
}

type UserService interface {
  CreateUser(ctx context.Context, in CreateUserInput) (*types.User, error)
  GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error)
  ListUsers(ctx context.Context) ([]*types.User, error)
  UpdateUser(ctx context.Context, userID uuid.UUID, in UpdateUserInput) (*types.User, error)
  DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
  db            *gorm.DB
  log           *logger.Logger
  store         storage.Store
  avatar        AvatarService
  userRepo      repos.UserRepo
  siteAdminRepo repos.SiteAdminRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, store storage.Store, avatar AvatarService, userRepo repos.UserRepo, siteAdminRepo repos.SiteAdminRepo) UserService {
  serviceLog := baseLog.With("service", "UserService")
  return &userService{db: db, log: serviceLog, store: store, avatar: avatar, userRepo: userRepo, siteAdminRepo: siteAdminRepo}
}

func (s *userService) CreateUser(ctx context.Context, in CreateUserInput) (*types.User, error) {
  var details []string
  if strings.TrimSpace(in.Name) == "" {
    details = append(details, "name is required")
  }
  if strings.TrimSpace(in.Email) == "" {
    details = append(details, "email is required")
  }
  if strings.TrimSpace(in.Password) == "" {
    details = append(details, "password is required")
  }
  role := strings.TrimSpace(in.Role)
  if role == "" {
    role = types.RoleTourist
  }
  switch role {
  case types.RoleTourist, types.RoleGuide, types.RoleSiteAdmin, types.RoleSuperAdmin:
  default:
    details = append(details, "role must be one of TOURIST, GUIDE, SITE_ADMIN, SUPER_ADMIN")
  }
  if len(details) > 0 {
    s.discardPicture(in.ProfilePicture)
    return nil, apierr.Validation(details...)
  }

  email := strings.ToLower(strings.TrimSpace(in.Email))
  exists, err := s.userRepo.EmailExists(ctx, nil, email)
  if err != nil {
    s.discardPicture(in.ProfilePicture)
    return nil, fmt.Errorf("Failed to check email uniqueness: %w", err)
  }
  if exists {
    s.discardPicture(in.ProfilePicture)
    return nil, apierr.Conflict("email already in use")
  }

  hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
  if err != nil {
    s.discardPicture(in.ProfilePicture)
    return nil, fmt.Errorf("Failed to hash password: %w", err)
  }

  user := &types.User{
    ID:          uuid.New(),
    Email:       email,
    Name:        strings.TrimSpace(in.Name),
    Password:    string(hashed),
    PhoneNumber: strings.TrimSpace(in.PhoneNumber),
    Role:        role,
  }
  if in.ProfilePicture == nil {
    // Generated initials avatar stands in until the user uploads one.
    // A render failure is logged and the account is created without it.
    generated, err := s.avatar.StageInitialsAvatar(ctx, user.Name)
    if err != nil {
      s.log.Warn("Failed to generate default avatar", "error", err)
    } else {
      in.ProfilePicture = generated
    }
  }
  if in.ProfilePicture != nil {
    user.ProfilePicture = s.store.URL(in.ProfilePicture.Category, in.ProfilePicture.FileName)
  }
  if _, err := s.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
    s.discardPicture(in.ProfilePicture)
    return nil, fmt.Errorf("Failed to create user: %w", err)
  }
  if in.ProfilePicture != nil {
    s.store.Promote([]*storage.Upload{in.ProfilePicture})
  }
  user.Password = ""
  return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
  user, err := s.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load user: %w", err)
  }
  if user == nil {
    return nil, apierr.NotFound("user")
  }
  user.Password = ""
  return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*types.User, error) {
  users, err := s.userRepo.List(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to list users: %w", err)
  }
  for _, u := range users {
    u.Password = ""
  }
  return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID uuid.UUID, in UpdateUserInput) (*types.User, error) {
  user, err := s.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    s.discardPicture(in.ProfilePicture)
    return nil, fmt.Errorf("Failed to load user: %w", err)
  }
  if user == nil {
    s.discardPicture(in.ProfilePicture)
    return nil, apierr.NotFound("user")
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
  if in.Email != nil {
    email := strings.ToLower(strings.TrimSpace(*in.Email))
    if email == "" {
      details = append(details, "email must not be empty")
    } else if email != user.Email {
      exists, err := s.userRepo.EmailExists(ctx, nil, email)
      if err != nil {
        s.discardPicture(in.ProfilePicture)
        return nil, fmt.Errorf("Failed to check email uniqueness: %w", err)
      }
      if exists {
        s.discardPicture(in.ProfilePicture)
        return nil, apierr.Conflict("email already in use")
      }
      fields["email"] = email
    }
  }
  if in.Password != nil {
    if strings.TrimSpace(*in.Password) == "" {
      details = append(details, "password must not be empty")
    } else {
      hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
      if err != nil {
        s.discardPicture(in.ProfilePicture)
        return nil, fmt.Errorf("Failed to hash password: %w", err)
      }
      fields["password"] = string(hashed)
    }
  }
  if in.PhoneNumber != nil {
    fields["phone_number"] = strings.TrimSpace(*in.PhoneNumber)
  }
  if len(details) > 0 {
    s.discardPicture(in.ProfilePicture)
    return nil, apierr.Validation(details...)
  }

  oldPicture := user.ProfilePicture
  if in.ProfilePicture != nil {
    fields["profile_picture"] = s.store.URL(in.ProfilePicture.Category, in.ProfilePicture.FileName)
  }
  if err := s.userRepo.Update(ctx, nil, user.ID, fields); err != nil {
    s.discardPicture(in.ProfilePicture)
    return nil, fmt.Errorf("Failed to update user: %w", err)
  }
  if in.ProfilePicture != nil {
    s.store.Promote([]*storage.Upload{in.ProfilePicture})
    if oldPicture != "" {
      s.store.RemoveByURL(oldPicture)
    }
  }
  return s.GetUser(ctx, user.ID)
}

func (s *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
  admin, err := s.siteAdminRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return fmt.Errorf("Failed to check site admin link: %w", err)
  }
  if admin != nil {
    return apierr.Conflict("user administers a touristic site; delete the site admin instead")
  }
  user, err := s.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    return fmt.Errorf("Failed to load user: %w", err)
  }
  if user == nil {
    return apierr.NotFound("user")
  }
  rows, err := s.userRepo.Delete(ctx, nil, userID)
  if err != nil {
    return fmt.Errorf("Failed to delete user: %w", err)
  }
  if rows == 0 {
    return apierr.NotFound("user")
  }
  if user.ProfilePicture != "" {
    s.store.RemoveByURL(user.ProfilePicture)
  }
  return nil
}

func (s *userService) discardPicture(up *storage.Upload) {
  if up != nil {
    s.store.Discard([]*storage.Upload{up})
  }
}
