package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/services"
)

type VideoHandler struct {
	videoService services.VideoService
}

func NewVideoHandler(videoService services.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

func (vh *VideoHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
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

	video, err := vh.videoService.UploadVideo(c.Request.Context(), userID, c.PostForm("title"), c.PostForm("description"), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, video)
}

func (vh *VideoHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	videos, err := vh.videoService.ListByCreator(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, videos)
}

func (vh *VideoHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.ValidationRejected(fmt.Errorf("invalid video id")))
		return
	}
	video, err := vh.videoService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, video)
}

func (vh *VideoHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.ValidationRejected(fmt.Errorf("invalid video id")))
		return
	}
	if err := vh.videoService.DeleteVideo(c.Request.Context(), userID, id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "video deleted"})
}
