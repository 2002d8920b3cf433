package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image slots on a company profile.
const (
	ImageFieldLogo   = "logo_url"
	ImageFieldBanner = "banner_url"
)

// CompanyProfile holds the single company profile owned by a user.
type CompanyProfile struct {
	ID          uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID     uuid.UUID         `json:"owner_id" gorm:"type:char(36);uniqueIndex;not null"`
	Owner       *User             `json:"-" gorm:"foreignKey:OwnerID"`
	CompanyName string            `json:"company_name" gorm:"size:255;not null"`
	Address     string            `json:"address" gorm:"size:500;not null"`
	City        string            `json:"city" gorm:"size:50;not null"`
	State       string            `json:"state" gorm:"size:50;not null"`
	Country     string            `json:"country" gorm:"size:50;not null"`
	PostalCode  string            `json:"postal_code" gorm:"size:20;not null"`
	Website     *string           `json:"website,omitempty" gorm:"size:255"`
	Industry    string            `json:"industry" gorm:"size:100;not null"`
	FoundedDate *time.Time        `json:"founded_date,omitempty"`
	Description *string           `json:"description,omitempty" gorm:"type:text"`
	SocialLinks map[string]string `json:"social_links,omitempty" gorm:"serializer:json"`
	LogoURL     *string           `json:"logo_url,omitempty" gorm:"size:500"`
	BannerURL   *string           `json:"banner_url,omitempty" gorm:"size:500"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *CompanyProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
