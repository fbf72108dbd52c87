package types

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CreatorID    uuid.UUID `gorm:"type:uuid;index;not null" json:"creator_id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	URL          string    `gorm:"not null" json:"url"`
	BucketKey    string    `gorm:"not null" json:"-"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	SizeBytes    int64     `json:"size_bytes"`
	ContentType  string    `json:"content_type"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Video) TableName() string {
	return "video"
}
