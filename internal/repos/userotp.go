package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/types"
)

type UserOTPRepo interface {
	Create(ctx context.Context, tx *gorm.DB, otps []*types.UserOTP) ([]*types.UserOTP, error)
	GetActive(ctx context.Context, tx *gorm.DB, email string, purpose types.OTPPurpose) (*types.UserOTP, error)
	Consume(ctx context.Context, tx *gorm.DB, otpID uuid.UUID) error
	DeleteByUserAndPurpose(ctx context.Context, tx *gorm.DB, userID uuid.UUID, purpose types.OTPPurpose) error
	DeleteExpired(ctx context.Context, tx *gorm.DB) error
}

type userOTPRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserOTPRepo(db *gorm.DB, baseLog *logger.Logger) UserOTPRepo {
	repoLog := baseLog.With("repo", "UserOTPRepo")
	return &userOTPRepo{db: db, log: repoLog}
}

func (uor *userOTPRepo) Create(ctx context.Context, tx *gorm.DB, otps []*types.UserOTP) ([]*types.UserOTP, error) {
	transaction := tx
	if transaction == nil {
		transaction = uor.db
	}

	if len(otps) == 0 {
		return []*types.UserOTP{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&otps).Error; err != nil {
		return nil, err
	}

	return otps, nil
}

// GetActive returns the most recent unconsumed, unexpired code for the email
// and purpose. gorm.ErrRecordNotFound when none is outstanding.
func (uor *userOTPRepo) GetActive(ctx context.Context, tx *gorm.DB, email string, purpose types.OTPPurpose) (*types.UserOTP, error) {
	transaction := tx
	if transaction == nil {
		transaction = uor.db
	}

	var result types.UserOTP
	if err := transaction.WithContext(ctx).
		Where("email = ? AND purpose = ? AND consumed_at IS NULL AND expires_at > ?", email, purpose, time.Now()).
		Order("created_at DESC").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (uor *userOTPRepo) Consume(ctx context.Context, tx *gorm.DB, otpID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = uor.db
	}

	return transaction.WithContext(ctx).
		Model(&types.UserOTP{}).
		Where("id = ?", otpID).
		Update("consumed_at", time.Now()).Error
}

func (uor *userOTPRepo) DeleteByUserAndPurpose(ctx context.Context, tx *gorm.DB, userID uuid.UUID, purpose types.OTPPurpose) error {
	transaction := tx
	if transaction == nil {
		transaction = uor.db
	}

	return transaction.WithContext(ctx).
		Where("user_id = ? AND purpose = ?", userID, purpose).
		Delete(&types.UserOTP{}).Error
}

func (uor *userOTPRepo) DeleteExpired(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = uor.db
	}

	return transaction.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&types.UserOTP{}).Error
}
