package services

import (
  "context"
  "fmt"
  "strings"
  "time"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/apierr"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/repos"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
)

type AuthService interface {
  Login(ctx context.Context, email, password string) (*types.User, string, error)
  VerifyToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
  log          *logger.Logger
  userRepo     repos.UserRepo
  jwtSecretKey string
  accessTTL    time.Duration
}

func NewAuthService(baseLog *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
  serviceLog := baseLog.With("service", "AuthService")
  return &authService{log: serviceLog, userRepo: userRepo, jwtSecretKey: jwtSecretKey, accessTTL: accessTTL}
}

func (as *authService) Login(ctx context.Context, email, password string) (*types.User, string, error) {
  email = strings.ToLower(strings.TrimSpace(email))
  var details []string
  if email == "" {
    details = append(details, "email is required")
  }
  if password == "" {
    details = append(details, "password is required")
  }
  if len(details) > 0 {
    return nil, "", apierr.Validation(details...)
  }

  user, err := as.userRepo.GetByEmail(ctx, nil, email)
  if err != nil {
    return nil, "", fmt.Errorf("Failed to load user by email: %w", err)
  }
  if user == nil {
    return nil, "", apierr.New(401, "invalid_credentials", fmt.Errorf("invalid email or password"))
  }
  if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
    return nil, "", apierr.New(401, "invalid_credentials", fmt.Errorf("invalid email or password"))
  }

  claims := jwt.RegisteredClaims{
    Subject:   user.ID.String(),
    ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
    IssuedAt:  jwt.NewNumericDate(time.Now()),
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  signed, err := token.SignedString([]byte(as.jwtSecretKey))
  if err != nil {
    return nil, "", fmt.Errorf("Failed to sign access token: %w", err)
  }
  user.Password = ""
  return user, signed, nil
}

func (as *authService) VerifyToken(tokenString string) (uuid.UUID, error) {
  token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil || !token.Valid {
    return uuid.Nil, fmt.Errorf("invalid token")
  }
  claims, ok := token.Claims.(*jwt.RegisteredClaims)
  if !ok || claims.Subject == "" {
    return uuid.Nil, fmt.Errorf("invalid token claims")
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return uuid.Nil, fmt.Errorf("invalid token subject")
  }
  return userID, nil
}
