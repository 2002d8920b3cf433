package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender values accepted at registration.
const (
	GenderMale   = "m"
	GenderFemale = "f"
	GenderOther  = "o"
)

// SignupTypeEmail tags accounts created through the email registration flow.
const SignupTypeEmail = "e"

// User represents a registered account.
type User struct {
	ID               uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email            string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash     string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FullName         string    `json:"full_name" gorm:"size:255;not null"`
	Gender           string    `json:"gender" gorm:"size:1;not null"`
	MobileNo         string    `json:"mobile_no" gorm:"uniqueIndex;size:20;not null"`
	SignupType       string    `json:"signup_type" gorm:"size:1;not null;default:'e'"`
	IsEmailVerified  bool      `json:"is_email_verified" gorm:"default:false"`
	IsMobileVerified bool      `json:"is_mobile_verified" gorm:"default:false"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
