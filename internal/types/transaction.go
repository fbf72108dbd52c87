package types

import (
	"time"

	"github.com/google/uuid"
)

type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "pending"
	TransactionSuccessful TransactionStatus = "successful"
	TransactionFailed     TransactionStatus = "failed"
)

// Transaction rows are written by the payment processor callback; this
// service only reads them.
type Transaction struct {
	ID               uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PaymentLinkID    uuid.UUID         `gorm:"type:uuid;index;not null" json:"payment_link_id"`
	CreatorID        uuid.UUID         `gorm:"type:uuid;index;not null" json:"creator_id"`
	Amount           float64           `gorm:"not null" json:"amount"`
	Currency         string            `gorm:"not null" json:"currency"`
	CustomerEmail    string            `json:"customer_email"`
	CustomerName     string            `json:"customer_name"`
	PaymentMethod    string            `json:"payment_method"`
	Status           TransactionStatus `gorm:"index;not null" json:"status"`
	ProviderTxnID    string            `json:"provider_txn_id"`
	PaymentReference string            `json:"payment_reference"`
	CreatedAt        time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transaction"
}
