package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentPreferences struct {
	Currency           string `json:"currency"`
	ExternalAccountRef string `json:"external_account_ref,omitempty"`
}

// Creator is the authenticated user's public profile. One creator per user,
// enforced by the unique index on user_id. JaraPageSlug is a denormalized
// pointer to the creator's primary landing page; LandingPage.Slug stays the
// authority for public routing.
type Creator struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID                   `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name               string                      `gorm:"not null" json:"name"`
	Bio                string                      `json:"bio"`
	SocialLinks        datatypes.JSONSlice[string] `json:"social_links"`
	ProfileImageURL    string                      `json:"profile_image_url,omitempty"`
	BackgroundImageURL string                      `json:"background_image_url,omitempty"`
	PaymentPreferences PaymentPreferences          `gorm:"serializer:json" json:"payment_preferences"`
	JaraPageSlug       string                      `gorm:"index" json:"jara_page_slug"`
	IsPublished        bool                        `gorm:"not null;default:false" json:"is_published"`
	CreatedAt          time.Time                   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time                   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Creator) TableName() string {
	return "creator"
}

// CreatorFields is the partial-update shape for a creator profile. Nil
// members mean "leave unchanged"; a non-nil slice replaces the stored one.
type CreatorFields struct {
	Name               *string             `json:"name,omitempty"`
	Bio                *string             `json:"bio,omitempty"`
	SocialLinks        []string            `json:"social_links,omitempty"`
	ProfileImageURL    *string             `json:"profile_image_url,omitempty"`
	BackgroundImageURL *string             `json:"background_image_url,omitempty"`
	PaymentPreferences *PaymentPreferences `json:"payment_preferences,omitempty"`
}
