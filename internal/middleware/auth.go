package middleware

import (
  "net/http"
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/services"
)

const ContextUserIDKey = "authUserID"

type AuthMiddleware struct {
  log         *logger.Logger
  authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
  middlewareLogger := log.With("Middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractToken(c)
    if tokenString == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "missing or invalid token"})
      return
    }
    userID, err := am.authService.VerifyToken(tokenString)
    if err != nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "missing or invalid token"})
      return
    }
    c.Set(ContextUserIDKey, userID)
    c.Next()
  }
}

// AuthUserID returns the authenticated user's id placed by RequireAuth.
func AuthUserID(c *gin.Context) (uuid.UUID, bool) {
  v, ok := c.Get(ContextUserIDKey)
  if !ok {
    return uuid.Nil, false
  }
  id, ok := v.(uuid.UUID)
  return id, ok
}

func extractToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  if qToken := c.Query("token"); qToken != "" {
    return qToken
  }
  return ""
}
