package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/types"
)

type PaymentLinkRepo interface {
	Create(ctx context.Context, tx *gorm.DB, link *types.PaymentLink) (*types.PaymentLink, error)
	GetByID(ctx context.Context, tx *gorm.DB, linkID uuid.UUID) (*types.PaymentLink, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.PaymentLink, error)
	GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.PaymentLink, error)
	ListByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.PaymentLink, error)
	SlugExists(ctx context.Context, tx *gorm.DB, slug string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, link *types.PaymentLink) (*types.PaymentLink, error)
	RecordSale(ctx context.Context, tx *gorm.DB, linkID uuid.UUID, amount float64) error
	Delete(ctx context.Context, tx *gorm.DB, linkID uuid.UUID) error
}

type paymentLinkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPaymentLinkRepo(db *gorm.DB, baseLog *logger.Logger) PaymentLinkRepo {
	repoLog := baseLog.With("repo", "PaymentLinkRepo")
	return &paymentLinkRepo{db: db, log: repoLog}
}

func (plr *paymentLinkRepo) Create(ctx context.Context, tx *gorm.DB, link *types.PaymentLink) (*types.PaymentLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = plr.db
	}

	if err := transaction.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

func (plr *paymentLinkRepo) GetByID(ctx context.Context, tx *gorm.DB, linkID uuid.UUID) (*types.PaymentLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = plr.db
	}

	var result types.PaymentLink
	if err := transaction.WithContext(ctx).
		Where("id = ?", linkID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (plr *paymentLinkRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.PaymentLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = plr.db
	}

	var result types.PaymentLink
	if err := transaction.WithContext(ctx).
		Where("slug = ?", slug).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (plr *paymentLinkRepo) GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.PaymentLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = plr.db
	}

	var results []*types.PaymentLink
	if len(slugs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("slug IN ?", slugs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (plr *paymentLinkRepo) ListByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.PaymentLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = plr.db
	}

	var results []*types.PaymentLink
	if err := transaction.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (plr *paymentLinkRepo) SlugExists(ctx context.Context, tx *gorm.DB, slug string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = plr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.PaymentLink{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (plr *paymentLinkRepo) Update(ctx context.Context, tx *gorm.DB, link *types.PaymentLink) (*types.PaymentLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = plr.db
	}

	if err := transaction.WithContext(ctx).Save(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// RecordSale bumps the denormalized revenue counters atomically.
func (plr *paymentLinkRepo) RecordSale(ctx context.Context, tx *gorm.DB, linkID uuid.UUID, amount float64) error {
	transaction := tx
	if transaction == nil {
		transaction = plr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.PaymentLink{}).
		Where("id = ?", linkID).
		Updates(map[string]any{
			"total_revenue":      gorm.Expr("total_revenue + ?", amount),
			"total_transactions": gorm.Expr("total_transactions + 1"),
		}).Error
}

func (plr *paymentLinkRepo) Delete(ctx context.Context, tx *gorm.DB, linkID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = plr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", linkID).
		Delete(&types.PaymentLink{}).Error
}
