package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/types"
)

type CreatorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, creator *types.Creator) (*types.Creator, error)
	GetByID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) (*types.Creator, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Creator, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Creator, error)
	Update(ctx context.Context, tx *gorm.DB, creator *types.Creator) (*types.Creator, error)
	Delete(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) error
}

type creatorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCreatorRepo(db *gorm.DB, baseLog *logger.Logger) CreatorRepo {
	repoLog := baseLog.With("repo", "CreatorRepo")
	return &creatorRepo{db: db, log: repoLog}
}

func (cr *creatorRepo) Create(ctx context.Context, tx *gorm.DB, creator *types.Creator) (*types.Creator, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).Create(creator).Error; err != nil {
		return nil, err
	}
	return creator, nil
}

func (cr *creatorRepo) GetByID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) (*types.Creator, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Creator
	if err := transaction.WithContext(ctx).
		Where("id = ?", creatorID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *creatorRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Creator, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Creator
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *creatorRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Creator, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Creator
	if err := transaction.WithContext(ctx).
		Where("jara_page_slug = ?", slug).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *creatorRepo) Update(ctx context.Context, tx *gorm.DB, creator *types.Creator) (*types.Creator, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).Save(creator).Error; err != nil {
		return nil, err
	}
	return creator, nil
}

func (cr *creatorRepo) Delete(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", creatorID).
		Delete(&types.Creator{}).Error
}
