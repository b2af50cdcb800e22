package types

import (
  "time"
  "github.com/google/uuid"
)

// TouristicSiteAdmin bridges a User and the single TouristicSite they manage.
// The row only ever comes into existence together with both sides.
type TouristicSiteAdmin struct {
  ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  UserID          uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null;column:user_id" json:"user_id"`
  TouristicSiteID uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null;column:touristic_site_id" json:"touristic_site_id"`
  User            *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
  Site            *TouristicSite `gorm:"foreignKey:TouristicSiteID" json:"site,omitempty"`
  CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (TouristicSiteAdmin) TableName() string {
  return "touristic_site_admin"
}
