package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/logger"
)

const (
	MaxImageBytes = 5 << 20
	MaxVideoBytes = 100 << 20

	// reference-image flow for the draft generator
	MaxReferenceImages = 5
)

type UploadRequest struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadService validates files before any network call and stores accepted
// ones in the bucket under a creator-scoped key.
type UploadService interface {
	UploadImage(ctx context.Context, creatorID uuid.UUID, folder string, req UploadRequest) (string, error)
	UploadVideo(ctx context.Context, creatorID uuid.UUID, req UploadRequest) (string, string, error)
	UploadReferenceImages(ctx context.Context, creatorID uuid.UUID, reqs []UploadRequest) ([]string, error)
	DeleteObject(ctx context.Context, key string) error
}

type uploadService struct {
	log    *logger.Logger
	bucket BucketService
}

func NewUploadService(log *logger.Logger, bucket BucketService) UploadService {
	serviceLog := log.With("service", "UploadService")
	return &uploadService{
		log:    serviceLog,
		bucket: bucket,
	}
}

func validateUpload(req UploadRequest, typePrefix string, maxBytes int64) error {
	if req.Body == nil {
		return apierr.ValidationRejected(fmt.Errorf("no file given"))
	}
	if !strings.HasPrefix(req.ContentType, typePrefix) {
		return apierr.UploadRejected(fmt.Errorf("unsupported content type %q, want %s*", req.ContentType, typePrefix))
	}
	if req.Size <= 0 {
		return apierr.UploadRejected(fmt.Errorf("file size unknown or empty"))
	}
	if req.Size > maxBytes {
		return apierr.UploadRejected(fmt.Errorf("file is %d bytes, limit is %d", req.Size, maxBytes))
	}
	return nil
}

func objectKey(creatorID uuid.UUID, folder, filename string) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("%s/%s/%s%s", creatorID.String(), folder, uuid.NewString(), ext)
}

func (us *uploadService) UploadImage(ctx context.Context, creatorID uuid.UUID, folder string, req UploadRequest) (string, error) {
	if err := validateUpload(req, "image/", MaxImageBytes); err != nil {
		return "", err
	}
	if folder == "" {
		folder = "images"
	}
	key := objectKey(creatorID, folder, req.Filename)
	if err := us.bucket.UploadFile(ctx, nil, key, req.ContentType, io.LimitReader(req.Body, MaxImageBytes)); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return us.bucket.GetPublicURL(key), nil
}

// UploadVideo returns the public URL and the bucket key so the caller can
// persist both.
func (us *uploadService) UploadVideo(ctx context.Context, creatorID uuid.UUID, req UploadRequest) (string, string, error) {
	if err := validateUpload(req, "video/", MaxVideoBytes); err != nil {
		return "", "", err
	}
	key := objectKey(creatorID, "videos", req.Filename)
	if err := us.bucket.UploadFile(ctx, nil, key, req.ContentType, io.LimitReader(req.Body, MaxVideoBytes)); err != nil {
		return "", "", fmt.Errorf("failed to upload video: %w", err)
	}
	return us.bucket.GetPublicURL(key), key, nil
}

// UploadReferenceImages uploads sequentially and fails fast; any file past
// the limit rejects the whole batch before bytes move.
func (us *uploadService) UploadReferenceImages(ctx context.Context, creatorID uuid.UUID, reqs []UploadRequest) ([]string, error) {
	if len(reqs) > MaxReferenceImages {
		return nil, apierr.UploadRejected(fmt.Errorf("at most %d reference images allowed, got %d", MaxReferenceImages, len(reqs)))
	}
	for _, req := range reqs {
		if err := validateUpload(req, "image/", MaxImageBytes); err != nil {
			return nil, err
		}
	}
	urls := make([]string, 0, len(reqs))
	for _, req := range reqs {
		url, err := us.UploadImage(ctx, creatorID, "reference", req)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (us *uploadService) DeleteObject(ctx context.Context, key string) error {
	return us.bucket.DeleteFile(ctx, nil, key)
}
