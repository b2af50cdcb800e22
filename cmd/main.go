package main

import (
  "fmt"
  "os"
  "time"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/storage"
  "github.com/ebaiagbor/tourcam-backend/internal/utils"
  "github.com/ebaiagbor/tourcam-backend/internal/db"
  "github.com/ebaiagbor/tourcam-backend/internal/repos"
  "github.com/ebaiagbor/tourcam-backend/internal/services"
  "github.com/ebaiagbor/tourcam-backend/internal/handlers"
  "github.com/ebaiagbor/tourcam-backend/internal/middleware"
  "github.com/ebaiagbor/tourcam-backend/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  uploadRoot := utils.GetEnv("UPLOAD_ROOT", "./uploads", log)
  baseURL := utils.GetEnv("BASE_URL", "http://localhost:8080", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // File storage
  store, err := storage.NewDiskStore(log, uploadRoot, baseURL)
  if err != nil {
    log.Error("Could not init file storage", "error", err)
    os.Exit(1)
  }

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  siteRepo := repos.NewSiteRepo(thePG, log)
  siteAdminRepo := repos.NewSiteAdminRepo(thePG, log)
  siteImageRepo := repos.NewSiteImageRepo(thePG, log)
  siteFavoriteRepo := repos.NewSiteFavoriteRepo(thePG, log)
  guideRepo := repos.NewGuideRepo(thePG, log)
  eventRepo := repos.NewEventRepo(thePG, log)
  eventImageRepo := repos.NewEventImageRepo(thePG, log)
  bookingRepo := repos.NewBookingRepo(thePG, log)
  paymentRepo := repos.NewPaymentRepo(thePG, log)
  reviewRepo := repos.NewReviewRepo(thePG, log)
  messageRepo := repos.NewMessageRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
  avatarService, err := services.NewAvatarService(log, store)
  if err != nil {
    log.Error("Could not init avatar service", "error", err)
    os.Exit(1)
  }
  userService := services.NewUserService(thePG, log, store, avatarService, userRepo, siteAdminRepo)
  siteService := services.NewSiteService(thePG, log, store, siteRepo, siteAdminRepo, siteImageRepo)
  siteAdminService := services.NewSiteAdminService(
    thePG,
    log,
    store,
    userRepo,
    siteRepo,
    siteAdminRepo,
    siteImageRepo,
    siteFavoriteRepo,
    eventRepo,
    bookingRepo,
  )
  eventService := services.NewEventService(
    thePG,
    log,
    store,
    eventRepo,
    eventImageRepo,
    siteRepo,
    siteAdminRepo,
    guideRepo,
    bookingRepo,
  )
  bookingService := services.NewBookingService(thePG, log, bookingRepo, eventRepo, userRepo, paymentRepo)
  guideService := services.NewGuideService(thePG, log, guideRepo, userRepo)
  reviewService := services.NewReviewService(thePG, log, reviewRepo, bookingRepo, guideRepo)
  messageService := services.NewMessageService(thePG, log, messageRepo, userRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  userHandler := handlers.NewUserHandler(log, userService, authService, store)
  tourSiteHandler := handlers.NewTourSiteHandler(log, siteService, siteAdminService, store)
  eventHandler := handlers.NewEventHandler(log, eventService, store)
  bookingHandler := handlers.NewBookingHandler(log, bookingService)
  guideHandler := handlers.NewGuideHandler(log, guideService, reviewService)
  reviewHandler := handlers.NewReviewHandler(log, reviewService)
  messageHandler := handlers.NewMessageHandler(log, messageService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    UserHandler:     userHandler,
    TourSiteHandler: tourSiteHandler,
    EventHandler:    eventHandler,
    BookingHandler:  bookingHandler,
    GuideHandler:    guideHandler,
    ReviewHandler:   reviewHandler,
    MessageHandler:  messageHandler,
    AuthMiddleware:  authMiddleware,
    UploadRoot:      uploadRoot,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
