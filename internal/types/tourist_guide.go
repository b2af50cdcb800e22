package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

type TouristGuide struct {
  ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  UserID          uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null;column:user_id" json:"user_id"`
  User            *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
  Bio             string         `gorm:"column:bio" json:"bio"`
  Languages       datatypes.JSON `gorm:"type:jsonb;column:languages" json:"languages"`
  PricePerHour    float64        `gorm:"not null;default:0;column:price_per_hour" json:"price_per_hour"`
  Rating          float64        `gorm:"not null;default:0;column:rating" json:"rating"`
  NumberOfReviews int            `gorm:"not null;default:0;column:number_of_reviews" json:"number_of_reviews"`
  Availability    datatypes.JSON `gorm:"type:jsonb;column:availability" json:"availability"`
  CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (TouristGuide) TableName() string {
  return "tourist_guide"
}
