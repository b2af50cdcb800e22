package server

import (
  "net/http"
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "github.com/ebaiagbor/tourcam-backend/internal/handlers"
  "github.com/ebaiagbor/tourcam-backend/internal/middleware"
)

type RouterConfig struct {
  UserHandler     *handlers.UserHandler
  TourSiteHandler *handlers.TourSiteHandler
  EventHandler    *handlers.EventHandler
  BookingHandler  *handlers.BookingHandler
  GuideHandler    *handlers.GuideHandler
  ReviewHandler   *handlers.ReviewHandler
  MessageHandler  *handlers.MessageHandler
  AuthMiddleware  *middleware.AuthMiddleware
  UploadRoot      string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5173",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.NoRoute(func(c *gin.Context) {
    c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "route not found"})
  })

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)

  // Uploaded images are embedded cross-origin by the frontends.
  uploads := router.Group("/uploads")
  uploads.Use(func(c *gin.Context) {
    c.Header("Cross-Origin-Resource-Policy", "cross-origin")
    c.Next()
  })
  uploads.Static("/", cfg.UploadRoot)

  tourSite := router.Group("/tour-site")
  {
    tourSite.POST("/create", cfg.TourSiteHandler.Create)
    tourSite.GET("/allsites", cfg.TourSiteHandler.AllSites)
    tourSite.GET("/all", cfg.TourSiteHandler.AllPaged)
    tourSite.GET("/sites/:adminId", cfg.TourSiteHandler.SiteByAdmin)
    tourSite.GET("/:id", cfg.TourSiteHandler.Get)
  }

  events := router.Group("/events")
  {
    events.GET("/all", cfg.EventHandler.All)
    events.GET("/siteadmin/events/:adminId", cfg.EventHandler.ByAdmin)
    events.GET("/:id", cfg.EventHandler.Get)
  }

  users := router.Group("/users")
  {
    users.POST("/create", cfg.UserHandler.Create)
    users.POST("/login", cfg.UserHandler.Login)
  }

  guides := router.Group("/guides")
  {
    guides.GET("/all", cfg.GuideHandler.All)
    guides.GET("/reviews/:id", cfg.GuideHandler.Reviews)
    guides.GET("/:id", cfg.GuideHandler.Get)
  }

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Tour sites
  protected.PUT("/tour-site/update/:id", cfg.TourSiteHandler.Update)
  protected.DELETE("/tour-site/delete/:id", cfg.TourSiteHandler.Delete)
  // Events
  protected.POST("/events/create", cfg.EventHandler.Create)
  protected.PUT("/events/update/:id", cfg.EventHandler.Update)
  protected.DELETE("/events/delete/:id", cfg.EventHandler.Delete)
  // Users
  protected.GET("/users/alluser", cfg.UserHandler.All)
  protected.GET("/users/:id", cfg.UserHandler.Get)
  protected.PUT("/users/update/:id", cfg.UserHandler.Update)
  protected.DELETE("/users/delete/:id", cfg.UserHandler.Delete)
  // Guides
  protected.POST("/guides/create", cfg.GuideHandler.Create)
  protected.PUT("/guides/update/:id", cfg.GuideHandler.Update)
  // Bookings
  protected.POST("/bookings/create", cfg.BookingHandler.Create)
  protected.GET("/bookings/tourist/:touristId", cfg.BookingHandler.ByTourist)
  protected.GET("/bookings/guide/:guideId", cfg.BookingHandler.ByGuide)
  protected.GET("/bookings/:id", cfg.BookingHandler.Get)
  protected.PUT("/bookings/status/:id", cfg.BookingHandler.Transition)
  // Payments
  protected.POST("/payments/create", cfg.BookingHandler.CreatePayment)
  // Reviews
  protected.POST("/reviews/create", cfg.ReviewHandler.Create)
  // Messages
  protected.POST("/messages/send", cfg.MessageHandler.Send)
  protected.GET("/messages/conversation/:userA/:userB", cfg.MessageHandler.Conversation)
  protected.PUT("/messages/read", cfg.MessageHandler.MarkRead)

  return router
}
