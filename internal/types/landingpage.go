package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LandingPage is the aggregate root of the page builder. Collections are
// stored as JSONB columns and travel with the row: the aggregate is always
// saved and loaded whole (last save wins, no conflict token).
type LandingPage struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CreatorID   uuid.UUID `gorm:"type:uuid;index;not null" json:"creator_id"`
	PageType    string    `gorm:"not null;default:'jara'" json:"page_type"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string    `gorm:"not null" json:"title"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Description string    `json:"description"`

	HeroTitle       string `json:"hero_title,omitempty"`
	HeroSubtitle    string `json:"hero_subtitle,omitempty"`
	HeroDescription string `json:"hero_description,omitempty"`
	HeroImageURL    string `json:"hero_image_url,omitempty"`

	ContentSections datatypes.JSONSlice[ContentSection] `json:"content_sections"`
	CTAButtons      datatypes.JSONSlice[CTAButton]      `json:"cta_buttons"`
	Testimonials    datatypes.JSONSlice[Testimonial]    `json:"testimonials"`
	MediaGallery    datatypes.JSONSlice[MediaItem]      `json:"media_gallery"`

	ThemeSettings ThemeSettings `gorm:"serializer:json" json:"theme_settings"`

	IsPublished        bool `gorm:"not null;default:false" json:"is_published"`
	ShowSocialLinks    bool `gorm:"not null;default:true" json:"show_social_links"`
	ShowTestimonials   bool `gorm:"not null;default:true" json:"show_testimonials"`
	ShowMediaGallery   bool `gorm:"not null;default:true" json:"show_media_gallery"`
	ContactFormEnabled bool `gorm:"not null;default:false" json:"contact_form_enabled"`

	MetaTitle       string                      `json:"meta_title,omitempty"`
	MetaDescription string                      `json:"meta_description,omitempty"`
	MetaKeywords    datatypes.JSONSlice[string] `json:"meta_keywords,omitempty"`
	OGImageURL      string                      `json:"og_image_url,omitempty"`

	// Slugs of payment links attached to this page; resolved against the
	// creator's links at render time.
	PaymentLinks datatypes.JSONSlice[string] `json:"payment_links"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (LandingPage) TableName() string {
	return "landing_page"
}

// PageFields is the shallow-merge patch for top-level scalar fields. Nil
// pointers leave the target untouched.
type PageFields struct {
	PageType        *string `json:"page_type,omitempty"`
	Title           *string `json:"title,omitempty"`
	Subtitle        *string `json:"subtitle,omitempty"`
	Description     *string `json:"description,omitempty"`
	HeroTitle       *string `json:"hero_title,omitempty"`
	HeroSubtitle    *string `json:"hero_subtitle,omitempty"`
	HeroDescription *string `json:"hero_description,omitempty"`
	HeroImageURL    *string `json:"hero_image_url,omitempty"`
	MetaTitle       *string `json:"meta_title,omitempty"`
	MetaDescription *string `json:"meta_description,omitempty"`
	OGImageURL      *string `json:"og_image_url,omitempty"`

	ShowSocialLinks    *bool `json:"show_social_links,omitempty"`
	ShowTestimonials   *bool `json:"show_testimonials,omitempty"`
	ShowMediaGallery   *bool `json:"show_media_gallery,omitempty"`
	ContactFormEnabled *bool `json:"contact_form_enabled,omitempty"`

	MetaKeywords []string `json:"meta_keywords,omitempty"`
	PaymentLinks []string `json:"payment_links,omitempty"`

	ThemeSettings *ThemeSettings `json:"theme_settings,omitempty"`
}
