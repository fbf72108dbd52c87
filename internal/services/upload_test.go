package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/apierr"
)

type fakeBucket struct {
	uploads []string
	fail    bool
}

func (f *fakeBucket) UploadFile(ctx context.Context, tx *gorm.DB, key string, contentType string, file io.Reader) error {
	if f.fail {
		return fmt.Errorf("bucket unavailable")
	}
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeBucket) DeleteFile(ctx context.Context, tx *gorm.DB, key string) error { return nil }

func (f *fakeBucket) ReplaceFile(ctx context.Context, tx *gorm.DB, key string, contentType string, newFile io.Reader) error {
	return nil
}

func (f *fakeBucket) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

func imageReq(name, contentType string, size int64) UploadRequest {
	return UploadRequest{
		Filename:    name,
		ContentType: contentType,
		Size:        size,
		Body:        strings.NewReader("bytes"),
	}
}

func TestUploadImageValidation(t *testing.T) {
	cases := []struct {
		name       string
		req        UploadRequest
		wantStatus int
	}{
		{name: "wrong_type", req: imageReq("a.pdf", "application/pdf", 100), wantStatus: 413},
		{name: "too_large", req: imageReq("a.png", "image/png", MaxImageBytes+1), wantStatus: 413},
		{name: "zero_size", req: imageReq("a.png", "image/png", 0), wantStatus: 413},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bucket := &fakeBucket{}
			svc := NewUploadService(testLogger(t), bucket)

			_, err := svc.UploadImage(context.Background(), uuid.New(), "images", tc.req)
			if err == nil {
				t.Fatalf("expected rejection")
			}
			status, _ := apierr.StatusOf(err)
			if status != tc.wantStatus {
				t.Fatalf("status = %d, want %d", status, tc.wantStatus)
			}
			if len(bucket.uploads) != 0 {
				t.Fatalf("rejected file still reached the bucket: %v", bucket.uploads)
			}
		})
	}
}

func TestUploadImageScopesKeyToCreator(t *testing.T) {
	bucket := &fakeBucket{}
	svc := NewUploadService(testLogger(t), bucket)
	creatorID := uuid.New()

	url, err := svc.UploadImage(context.Background(), creatorID, "hero", imageReq("pic.png", "image/png", 1024))
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if len(bucket.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(bucket.uploads))
	}
	key := bucket.uploads[0]
	if !strings.HasPrefix(key, creatorID.String()+"/hero/") {
		t.Fatalf("key %q not scoped to creator", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("key %q lost the extension", key)
	}
	if url != "https://cdn.test/"+key {
		t.Fatalf("url = %q", url)
	}
}

func TestUploadVideoLimits(t *testing.T) {
	bucket := &fakeBucket{}
	svc := NewUploadService(testLogger(t), bucket)

	_, _, err := svc.UploadVideo(context.Background(), uuid.New(), imageReq("clip.mp4", "video/mp4", MaxVideoBytes+1))
	if err == nil {
		t.Fatalf("expected rejection")
	}
	status, _ := apierr.StatusOf(err)
	if status != 413 {
		t.Fatalf("status = %d, want 413", status)
	}

	_, key, err := svc.UploadVideo(context.Background(), uuid.New(), imageReq("clip.mp4", "video/mp4", 2048))
	if err != nil {
		t.Fatalf("UploadVideo: %v", err)
	}
	if key == "" || !strings.Contains(key, "/videos/") {
		t.Fatalf("key = %q", key)
	}
}

func TestUploadReferenceImagesBatchRules(t *testing.T) {
	bucket := &fakeBucket{}
	svc := NewUploadService(testLogger(t), bucket)

	tooMany := make([]UploadRequest, MaxReferenceImages+1)
	for i := range tooMany {
		tooMany[i] = imageReq("r.png", "image/png", 100)
	}
	if _, err := svc.UploadReferenceImages(context.Background(), uuid.New(), tooMany); err == nil {
		t.Fatalf("expected batch size rejection")
	}

	// one bad file rejects the batch before anything uploads
	batch := []UploadRequest{
		imageReq("a.png", "image/png", 100),
		imageReq("b.gif", "video/mp4", 100),
	}
	if _, err := svc.UploadReferenceImages(context.Background(), uuid.New(), batch); err == nil {
		t.Fatalf("expected content type rejection")
	}
	if len(bucket.uploads) != 0 {
		t.Fatalf("bad batch still uploaded: %v", bucket.uploads)
	}

	urls, err := svc.UploadReferenceImages(context.Background(), uuid.New(), []UploadRequest{
		imageReq("a.png", "image/png", 100),
		imageReq("b.png", "image/png", 100),
	})
	if err != nil {
		t.Fatalf("UploadReferenceImages: %v", err)
	}
	if len(urls) != 2 || len(bucket.uploads) != 2 {
		t.Fatalf("urls = %d, uploads = %d", len(urls), len(bucket.uploads))
	}
}
