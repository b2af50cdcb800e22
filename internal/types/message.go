package types

import (
  "time"
  "github.com/google/uuid"
)

type Message struct {
  ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  SenderID   uuid.UUID `gorm:"type:uuid;not null;index;column:sender_id" json:"sender_id"`
  ReceiverID uuid.UUID `gorm:"type:uuid;not null;index;column:receiver_id" json:"receiver_id"`
  Content    string    `gorm:"not null;column:content" json:"content"`
  Read       bool      `gorm:"not null;default:false;column:read" json:"read"`
  CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Message) TableName() string {
  return "message"
}
