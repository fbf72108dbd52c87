package types

import (
	"time"

	"github.com/google/uuid"
)

type OTPPurpose string

const (
	OTPPurposeSignup   OTPPurpose = "signup"
	OTPPurposeRecovery OTPPurpose = "recovery"
)

// UserOTP is a single-use email verification code. Only the bcrypt hash of
// the code is stored; a consumed or expired row never verifies again.
type UserOTP struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	Email      string     `gorm:"index;not null" json:"email"`
	CodeHash   string     `gorm:"not null" json:"-"`
	Purpose    OTPPurpose `gorm:"not null" json:"purpose"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (UserOTP) TableName() string {
	return "user_otp"
}
