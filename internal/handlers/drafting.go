package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/services"
	"github.com/jarahq/jara-backend/internal/types"
)

type DraftingHandler struct {
	draftingService services.DraftingService
	creatorService  services.CreatorService
}

func NewDraftingHandler(draftingService services.DraftingService, creatorService services.CreatorService) *DraftingHandler {
	return &DraftingHandler{
		draftingService: draftingService,
		creatorService:  creatorService,
	}
}

// Generate produces a page suggestion from the posted brief. Name and bio
// default to the caller's creator profile when omitted.
func (dh *DraftingHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	var req types.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.CreatorName == "" || req.CreatorBio == "" {
		creator, err := dh.creatorService.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			RespondError(c, err)
			return
		}
		if req.CreatorName == "" {
			req.CreatorName = creator.Name
		}
		if req.CreatorBio == "" {
			req.CreatorBio = creator.Bio
		}
	}

	suggestion, err := dh.draftingService.GenerateDraft(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, suggestion)
}
