package types

import (
  "time"
  "github.com/google/uuid"
)

type Event struct {
  ID              uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
  Title           string              `gorm:"not null;column:title" json:"title"`
  Description     string              `gorm:"not null;column:description" json:"description"`
  Price           float64             `gorm:"not null;column:price" json:"price"`
  Duration        int                 `gorm:"not null;column:duration" json:"duration"`
  MaxGroupSize    int                 `gorm:"not null;column:max_group_size" json:"max_group_size"`
  TouristicSiteID uuid.UUID           `gorm:"type:uuid;not null;index;column:touristic_site_id" json:"touristic_site_id"`
  SiteAdminID     *uuid.UUID          `gorm:"type:uuid;index;column:site_admin_id" json:"site_admin_id,omitempty"`
  GuideID         *uuid.UUID          `gorm:"type:uuid;index;column:guide_id" json:"guide_id,omitempty"`
  Site            *TouristicSite      `gorm:"foreignKey:TouristicSiteID" json:"site,omitempty"`
  SiteAdmin       *TouristicSiteAdmin `gorm:"foreignKey:SiteAdminID" json:"site_admin,omitempty"`
  Guide           *TouristGuide       `gorm:"foreignKey:GuideID" json:"guide,omitempty"`
  Images          []EventImage        `gorm:"foreignKey:EventID" json:"images,omitempty"`
  Bookings        []Booking           `gorm:"foreignKey:EventID" json:"bookings,omitempty"`
  CreatedAt       time.Time           `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time           `gorm:"not null;default:now()" json:"updated_at"`
}

func (Event) TableName() string {
  return "event"
}

type EventImage struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  URL       string    `gorm:"not null;column:url" json:"url"`
  EventID   uuid.UUID `gorm:"type:uuid;not null;index;column:event_id" json:"event_id"`
  CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (EventImage) TableName() string {
  return "event_image"
}
