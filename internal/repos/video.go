package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/types"
)

type VideoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, video *types.Video) (*types.Video, error)
	GetByID(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) (*types.Video, error)
	ListByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.Video, error)
	Delete(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) error
}

type videoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	repoLog := baseLog.With("repo", "VideoRepo")
	return &videoRepo{db: db, log: repoLog}
}

func (vr *videoRepo) Create(ctx context.Context, tx *gorm.DB, video *types.Video) (*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	if err := transaction.WithContext(ctx).Create(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

func (vr *videoRepo) GetByID(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) (*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var result types.Video
	if err := transaction.WithContext(ctx).
		Where("id = ?", videoID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (vr *videoRepo) ListByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var results []*types.Video
	if err := transaction.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *videoRepo) Delete(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", videoID).
		Delete(&types.Video{}).Error
}
