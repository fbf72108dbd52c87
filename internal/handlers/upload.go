package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/services"
)

type UploadHandler struct {
	uploadService  services.UploadService
	creatorService services.CreatorService
}

func NewUploadHandler(uploadService services.UploadService, creatorService services.CreatorService) *UploadHandler {
	return &UploadHandler{
		uploadService:  uploadService,
		creatorService: creatorService,
	}
}

func uploadRequestFromHeader(fh *multipart.FileHeader) (services.UploadRequest, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return services.UploadRequest{}, nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	req := services.UploadRequest{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
	return req, func() { _ = f.Close() }, nil
}

func (uh *UploadHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	creator, err := uh.creatorService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	req, closeFile, err := uploadRequestFromHeader(fh)
	if err != nil {
		RespondError(c, err)
		return
	}
	defer closeFile()

	url, err := uh.uploadService.UploadImage(c.Request.Context(), creator.ID, c.PostForm("folder"), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"url": url})
}

func (uh *UploadHandler) UploadReferenceImages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	creator, err := uh.creatorService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files given"})
		return
	}

	reqs := make([]services.UploadRequest, 0, len(headers))
	var closers []func()
	defer func() {
		for _, closeFile := range closers {
			closeFile()
		}
	}()
	for _, fh := range headers {
		req, closeFile, err := uploadRequestFromHeader(fh)
		if err != nil {
			RespondError(c, err)
			return
		}
		closers = append(closers, closeFile)
		reqs = append(reqs, req)
	}

	urls, err := uh.uploadService.UploadReferenceImages(c.Request.Context(), creator.ID, reqs)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"urls": urls})
}
