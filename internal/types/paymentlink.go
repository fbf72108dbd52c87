package types

import (
	"time"

	"github.com/google/uuid"
)

type PaymentLinkType string

const (
	PaymentLinkTip        PaymentLinkType = "tip"
	PaymentLinkMembership PaymentLinkType = "membership"
	PaymentLinkPayPerView PaymentLinkType = "pay_per_view"
	PaymentLinkRental     PaymentLinkType = "rental"
	PaymentLinkTicket     PaymentLinkType = "ticket"
	PaymentLinkProduct    PaymentLinkType = "product"
)

type PaymentLink struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CreatorID         uuid.UUID       `gorm:"type:uuid;index;not null" json:"creator_id"`
	Type              PaymentLinkType `gorm:"not null" json:"type"`
	Title             string          `gorm:"not null" json:"title"`
	Description       string          `json:"description"`
	Price             float64         `gorm:"not null" json:"price"`
	Currency          string          `gorm:"not null" json:"currency"`
	ImageURL          string          `json:"image_url,omitempty"`
	SuccessMessage    string          `json:"success_message"`
	Slug              string          `gorm:"uniqueIndex;not null" json:"slug"`
	IsPublished       bool            `gorm:"not null;default:false" json:"is_published"`
	TotalRevenue      float64         `gorm:"not null;default:0" json:"total_revenue"`
	TotalTransactions int64           `gorm:"not null;default:0" json:"total_transactions"`
	CreatedAt         time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (PaymentLink) TableName() string {
	return "payment_link"
}
