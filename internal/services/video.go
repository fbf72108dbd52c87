package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/repos"
	"github.com/jarahq/jara-backend/internal/types"
)

type VideoService interface {
	UploadVideo(ctx context.Context, userID uuid.UUID, title, description string, req UploadRequest) (*types.Video, error)
	GetByID(ctx context.Context, userID, videoID uuid.UUID) (*types.Video, error)
	ListByCreator(ctx context.Context, userID uuid.UUID) ([]*types.Video, error)
	DeleteVideo(ctx context.Context, userID, videoID uuid.UUID) error
}

type videoService struct {
	db             *gorm.DB
	log            *logger.Logger
	videoRepo      repos.VideoRepo
	uploadService  UploadService
	creatorService CreatorService
}

func NewVideoService(
	db *gorm.DB,
	log *logger.Logger,
	videoRepo repos.VideoRepo,
	uploadService UploadService,
	creatorService CreatorService,
) VideoService {
	serviceLog := log.With("service", "VideoService")
	return &videoService{
		db:             db,
		log:            serviceLog,
		videoRepo:      videoRepo,
		uploadService:  uploadService,
		creatorService: creatorService,
	}
}

func (vs *videoService) UploadVideo(ctx context.Context, userID uuid.UUID, title, description string, req UploadRequest) (*types.Video, error) {
	if title == "" {
		return nil, apierr.ValidationRejected(fmt.Errorf("a video title is required"))
	}
	creator, err := vs.creatorService.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, key, err := vs.uploadService.UploadVideo(ctx, creator.ID, req)
	if err != nil {
		return nil, err
	}

	video := &types.Video{
		ID:          uuid.New(),
		CreatorID:   creator.ID,
		Title:       title,
		Description: description,
		URL:         url,
		BucketKey:   key,
		SizeBytes:   req.Size,
		ContentType: req.ContentType,
	}
	created, err := vs.videoRepo.Create(ctx, nil, video)
	if err != nil {
		// the blob is already up; drop it so storage does not leak
		if dErr := vs.uploadService.DeleteObject(ctx, key); dErr != nil {
			vs.log.Warn("Failed to clean up orphaned video object", "key", key, "error", dErr)
		}
		return nil, fmt.Errorf("failed to create video record: %w", err)
	}
	return created, nil
}

func (vs *videoService) GetByID(ctx context.Context, userID, videoID uuid.UUID) (*types.Video, error) {
	video, _, err := vs.loadOwned(ctx, userID, videoID)
	return video, err
}

func (vs *videoService) ListByCreator(ctx context.Context, userID uuid.UUID) ([]*types.Video, error) {
	creator, err := vs.creatorService.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	videos, err := vs.videoRepo.ListByCreatorID(ctx, nil, creator.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

func (vs *videoService) DeleteVideo(ctx context.Context, userID, videoID uuid.UUID) error {
	video, _, err := vs.loadOwned(ctx, userID, videoID)
	if err != nil {
		return err
	}
	if err := vs.videoRepo.Delete(ctx, nil, video.ID); err != nil {
		return fmt.Errorf("failed to delete video record: %w", err)
	}
	if video.BucketKey != "" {
		if dErr := vs.uploadService.DeleteObject(ctx, video.BucketKey); dErr != nil {
			vs.log.Warn("Failed to delete video object", "key", video.BucketKey, "error", dErr)
		}
	}
	return nil
}

func (vs *videoService) loadOwned(ctx context.Context, userID, videoID uuid.UUID) (*types.Video, *types.Creator, error) {
	creator, err := vs.creatorService.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	video, err := vs.videoRepo.GetByID(ctx, nil, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apierr.NotFound(fmt.Errorf("video not found"))
		}
		return nil, nil, fmt.Errorf("failed to load video: %w", err)
	}
	if video.CreatorID != creator.ID {
		return nil, nil, apierr.NotFound(fmt.Errorf("video not found"))
	}
	return video, creator, nil
}
