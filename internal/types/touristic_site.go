package types

import (
  "time"
  "github.com/google/uuid"
)

type TouristicSite struct {
  ID           uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
  Name         string               `gorm:"not null;column:name" json:"name"`
  Description  string               `gorm:"column:description" json:"description"`
  Location     string               `gorm:"not null;column:location" json:"location"`
  Latitude     *float64             `gorm:"column:latitude" json:"latitude,omitempty"`
  Longitude    *float64             `gorm:"column:longitude" json:"longitude,omitempty"`
  Category     string               `gorm:"column:category" json:"category,omitempty"`
  OpeningHours string               `gorm:"column:opening_hours" json:"opening_hours,omitempty"`
  EntryFee     *float64             `gorm:"column:entry_fee" json:"entry_fee,omitempty"`
  Images       []TouristicSiteImage `gorm:"foreignKey:TouristicSiteID" json:"images,omitempty"`
  CreatedAt    time.Time            `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt    time.Time            `gorm:"not null;default:now()" json:"updated_at"`
}

func (TouristicSite) TableName() string {
  return "touristic_site"
}

type TouristicSiteImage struct {
  ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  URL             string    `gorm:"not null;column:url" json:"url"`
  TouristicSiteID uuid.UUID `gorm:"type:uuid;not null;index;column:touristic_site_id" json:"touristic_site_id"`
  CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (TouristicSiteImage) TableName() string {
  return "touristic_site_image"
}

type TouristicSiteFavorite struct {
  ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  UserID          uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_favorite_user_site;column:user_id" json:"user_id"`
  TouristicSiteID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_favorite_user_site;column:touristic_site_id" json:"touristic_site_id"`
  CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (TouristicSiteFavorite) TableName() string {
  return "touristic_site_favorite"
}
