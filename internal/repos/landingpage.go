package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/types"
)

type LandingPageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, page *types.LandingPage) (*types.LandingPage, error)
	GetByID(ctx context.Context, tx *gorm.DB, pageID uuid.UUID) (*types.LandingPage, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.LandingPage, error)
	ListByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.LandingPage, error)
	SlugExists(ctx context.Context, tx *gorm.DB, slug string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, page *types.LandingPage) (*types.LandingPage, error)
	Delete(ctx context.Context, tx *gorm.DB, pageID uuid.UUID) error
}

type landingPageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLandingPageRepo(db *gorm.DB, baseLog *logger.Logger) LandingPageRepo {
	repoLog := baseLog.With("repo", "LandingPageRepo")
	return &landingPageRepo{db: db, log: repoLog}
}

func (lpr *landingPageRepo) Create(ctx context.Context, tx *gorm.DB, page *types.LandingPage) (*types.LandingPage, error) {
	transaction := tx
	if transaction == nil {
		transaction = lpr.db
	}

	if err := transaction.WithContext(ctx).Create(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (lpr *landingPageRepo) GetByID(ctx context.Context, tx *gorm.DB, pageID uuid.UUID) (*types.LandingPage, error) {
	transaction := tx
	if transaction == nil {
		transaction = lpr.db
	}

	var result types.LandingPage
	if err := transaction.WithContext(ctx).
		Where("id = ?", pageID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (lpr *landingPageRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.LandingPage, error) {
	transaction := tx
	if transaction == nil {
		transaction = lpr.db
	}

	var result types.LandingPage
	if err := transaction.WithContext(ctx).
		Where("slug = ?", slug).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (lpr *landingPageRepo) ListByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.LandingPage, error) {
	transaction := tx
	if transaction == nil {
		transaction = lpr.db
	}

	var results []*types.LandingPage
	if err := transaction.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lpr *landingPageRepo) SlugExists(ctx context.Context, tx *gorm.DB, slug string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = lpr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.LandingPage{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (lpr *landingPageRepo) Update(ctx context.Context, tx *gorm.DB, page *types.LandingPage) (*types.LandingPage, error) {
	transaction := tx
	if transaction == nil {
		transaction = lpr.db
	}

	if err := transaction.WithContext(ctx).Save(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (lpr *landingPageRepo) Delete(ctx context.Context, tx *gorm.DB, pageID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lpr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", pageID).
		Delete(&types.LandingPage{}).Error
}
