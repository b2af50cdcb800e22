package types

import (
  "time"
  "github.com/google/uuid"
)

const (
  PaymentStatusPending  = "PENDING"
  PaymentStatusPaid     = "PAID"
  PaymentStatusFailed   = "FAILED"
  PaymentStatusRefunded = "REFUNDED"
)

type Payment struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  BookingID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:booking_id" json:"booking_id"`
  Amount    float64   `gorm:"not null;column:amount" json:"amount"`
  Method    string    `gorm:"not null;column:method" json:"method"`
  Status    string    `gorm:"not null;default:PENDING;column:status" json:"status"`
  CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Payment) TableName() string {
  return "payment"
}
