package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
  "github.com/ebaiagbor/tourcam-backend/internal/types"
  "github.com/ebaiagbor/tourcam-backend/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "tourcam", log)
  log.Debug("Environment variables loaded")

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.TouristicSite{},
    &types.TouristicSiteAdmin{},
    &types.TouristicSiteImage{},
    &types.TouristicSiteFavorite{},
    &types.TouristGuide{},
    &types.Event{},
    &types.EventImage{},
    &types.Booking{},
    &types.Payment{},
    &types.Review{},
    &types.Message{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  // Event children are cascade-deleted at the schema level; dropping the event
  // row is the authoritative delete for its images and bookings.
  constraints := []struct {
    name string
    sql  string
  }{
    {"fk_event_image_event_id", `ALTER TABLE "event_image" ADD CONSTRAINT "fk_event_image_event_id" FOREIGN KEY ("event_id") REFERENCES "event"("id") ON DELETE CASCADE`},
    {"fk_booking_event_id", `ALTER TABLE "booking" ADD CONSTRAINT "fk_booking_event_id" FOREIGN KEY ("event_id") REFERENCES "event"("id") ON DELETE CASCADE`},
    {"fk_site_image_site_id", `ALTER TABLE "touristic_site_image" ADD CONSTRAINT "fk_site_image_site_id" FOREIGN KEY ("touristic_site_id") REFERENCES "touristic_site"("id") ON DELETE CASCADE`},
    {"fk_site_favorite_site_id", `ALTER TABLE "touristic_site_favorite" ADD CONSTRAINT "fk_site_favorite_site_id" FOREIGN KEY ("touristic_site_id") REFERENCES "touristic_site"("id") ON DELETE CASCADE`},
    {"fk_payment_booking_id", `ALTER TABLE "payment" ADD CONSTRAINT "fk_payment_booking_id" FOREIGN KEY ("booking_id") REFERENCES "booking"("id") ON DELETE CASCADE`},
    {"fk_review_booking_id", `ALTER TABLE "review" ADD CONSTRAINT "fk_review_booking_id" FOREIGN KEY ("booking_id") REFERENCES "booking"("id") ON DELETE CASCADE`},
  }
  for _, c := range constraints {
    var count int64
    if err := s.db.Raw(`SELECT COUNT(*) FROM pg_constraint WHERE conname = ?`, c.name).Scan(&count).Error; err != nil {
      return fmt.Errorf("Failed to check constraint %s: %w", c.name, err)
    }
    if count > 0 {
      continue
    }
    if err := s.db.Exec(c.sql).Error; err != nil {
      return fmt.Errorf("Failed to add %s: %w", c.name, err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
