package types

import (
  "time"
  "github.com/google/uuid"
)

type Review struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  BookingID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:booking_id" json:"booking_id"`
  TouristID uuid.UUID `gorm:"type:uuid;not null;index;column:tourist_id" json:"tourist_id"`
  GuideID   uuid.UUID `gorm:"type:uuid;not null;index;column:guide_id" json:"guide_id"`
  Rating    int       `gorm:"not null;column:rating" json:"rating"`
  Comment   string    `gorm:"column:comment" json:"comment,omitempty"`
  CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Review) TableName() string {
  return "review"
}
