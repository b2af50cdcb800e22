package types

import (
  "time"
  "github.com/google/uuid"
)

const (
  RoleTourist    = "TOURIST"
  RoleGuide      = "GUIDE"
  RoleSiteAdmin  = "SITE_ADMIN"
  RoleSuperAdmin = "SUPER_ADMIN"
)

type User struct {
  ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  Email          string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Name           string    `gorm:"not null;column:name" json:"name"`
  Password       string    `gorm:"not null;column:password" json:"-"`
  PhoneNumber    string    `gorm:"column:phone_number" json:"phone_number,omitempty"`
  ProfilePicture string    `gorm:"column:profile_picture" json:"profile_picture,omitempty"`
  Role           string    `gorm:"not null;default:TOURIST;column:role" json:"role"`
  CreatedAt      time.Time `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt      time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
