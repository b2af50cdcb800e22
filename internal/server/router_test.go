package server

import (
  "net/http"
  "net/http/httptest"
  "testing"

  "github.com/gin-gonic/gin"

  "github.com/ebaiagbor/tourcam-backend/internal/handlers"
  "github.com/ebaiagbor/tourcam-backend/internal/middleware"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
)

// newTestRouter wires the routing table with no live services behind it.
// Unauthenticated requests never reach a handler, so protected routes can be
// checked for registration without a database.
func newTestRouter(t *testing.T) *gin.Engine {
  t.Helper()
  gin.SetMode(gin.TestMode)
  log, err := logger.New("dev")
  if err != nil {
    t.Fatalf("logger: %v", err)
  }
  return NewRouter(RouterConfig{
    UserHandler:     handlers.NewUserHandler(log, nil, nil, nil),
    TourSiteHandler: handlers.NewTourSiteHandler(log, nil, nil, nil),
    EventHandler:    handlers.NewEventHandler(log, nil, nil),
    BookingHandler:  handlers.NewBookingHandler(log, nil),
    GuideHandler:    handlers.NewGuideHandler(log, nil, nil),
    ReviewHandler:   handlers.NewReviewHandler(log, nil),
    MessageHandler:  handlers.NewMessageHandler(log, nil),
    AuthMiddleware:  middleware.NewAuthMiddleware(log, nil),
    UploadRoot:      t.TempDir(),
  })
}

func TestRouter_ProtectedRoutesAreRegistered(t *testing.T) {
  router := newTestRouter(t)
  paths := []struct {
    method string
    path   string
  }{
    {http.MethodGet, "/users/alluser"},
    {http.MethodPut, "/bookings/status/00000000-0000-0000-0000-000000000001"},
    {http.MethodPost, "/payments/create"},
  }
  for _, p := range paths {
    w := httptest.NewRecorder()
    req := httptest.NewRequest(p.method, p.path, nil)
    router.ServeHTTP(w, req)
    // 401 proves the route exists and sits behind auth; an unknown route
    // would have hit the 400 catch-all instead.
    if w.Code != http.StatusUnauthorized {
      t.Fatalf("%s %s: expected 401, got %d", p.method, p.path, w.Code)
    }
  }
}

func TestRouter_UnknownRouteIsBadRequest(t *testing.T) {
  router := newTestRouter(t)
  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/users/nosuchroute/extra", nil)
  router.ServeHTTP(w, req)
  if w.Code != http.StatusBadRequest {
    t.Fatalf("expected 400 for unknown route, got %d", w.Code)
  }
}
