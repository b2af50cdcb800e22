package types

import (
  "time"
  "github.com/google/uuid"
)

const (
  BookingStatusPending   = "PENDING"
  BookingStatusConfirmed = "CONFIRMED"
  BookingStatusCompleted = "COMPLETED"
  BookingStatusCanceled  = "CANCELED"
)

// ActiveBookingStatuses are the statuses that block destructive operations on
// the event (and, transitively, on the owning site admin).
var ActiveBookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}

type Booking struct {
  ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  TouristID      uuid.UUID  `gorm:"type:uuid;not null;index;column:tourist_id" json:"tourist_id"`
  EventID        uuid.UUID  `gorm:"type:uuid;not null;index;column:event_id" json:"event_id"`
  GuideID        *uuid.UUID `gorm:"type:uuid;index;column:guide_id" json:"guide_id,omitempty"`
  BookingDate    time.Time  `gorm:"not null;column:booking_date" json:"booking_date"`
  NumberOfPeople int        `gorm:"not null;column:number_of_people" json:"number_of_people"`
  Status         string     `gorm:"not null;default:PENDING;column:status" json:"status"`
  TotalPrice     float64    `gorm:"not null;column:total_price" json:"total_price"`
  CreatedAt      time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (Booking) TableName() string {
  return "booking"
}
