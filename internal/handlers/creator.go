package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/services"
	"github.com/jarahq/jara-backend/internal/types"
)

type CreatorHandler struct {
	creatorService services.CreatorService
}

func NewCreatorHandler(creatorService services.CreatorService) *CreatorHandler {
	return &CreatorHandler{creatorService: creatorService}
}

func (ch *CreatorHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	var req types.Creator
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := ch.creatorService.CreateCreator(c.Request.Context(), userID, &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, created)
}

// GetMe returns the caller's creator profile; 404 means they have not
// onboarded yet and the client shows the onboarding flow.
func (ch *CreatorHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	creator, err := ch.creatorService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, creator)
}

func (ch *CreatorHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	var fields types.CreatorFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updated, err := ch.creatorService.UpdateCreator(c.Request.Context(), userID, fields)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (ch *CreatorHandler) SetPublished(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	var req struct {
		IsPublished bool `json:"is_published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updated, err := ch.creatorService.SetPublished(c.Request.Context(), userID, req.IsPublished)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (ch *CreatorHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	if err := ch.creatorService.DeleteCreator(c.Request.Context(), userID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "creator deleted"})
}
