package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/pagebuilder"
	"github.com/jarahq/jara-backend/internal/services"
	"github.com/jarahq/jara-backend/internal/types"
)

type PageHandler struct {
	pageService services.PageService
}

func NewPageHandler(pageService services.PageService) *PageHandler {
	return &PageHandler{pageService: pageService}
}

func pageID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apierr.ValidationRejected(fmt.Errorf("invalid page id"))
	}
	return id, nil
}

func (ph *PageHandler) CreateDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	draft, err := ph.pageService.CreateDraft(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, draft)
}

func (ph *PageHandler) Save(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	var page types.LandingPage
	if err := c.ShouldBindJSON(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	saved, err := ph.pageService.Save(c.Request.Context(), userID, &page)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, saved)
}

func (ph *PageHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	pages, err := ph.pageService.ListByCreator(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, pages)
}

func (ph *PageHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := pageID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	page, err := ph.pageService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, page)
}

func (ph *PageHandler) UpdateFields(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := pageID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var fields types.PageFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	page, err := ph.pageService.UpdateFields(c.Request.Context(), userID, id, fields)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, page)
}

func (ph *PageHandler) AddSection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := pageID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		Type types.SectionType `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	page, err := ph.pageService.AddSection(c.Request.Context(), userID, id, req.Type)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, page)
}

// sectionPatchRequest carries the raw content payload; it is decoded against
// the effective section type before the patch is applied.
type sectionPatchRequest struct {
	Type    *types.SectionType `json:"type,omitempty"`
	Content json.RawMessage    `json:"content,omitempty"`
	Styling map[string]any     `json:"styling,omitempty"`
	Order   *int               `json:"order,omitempty"`
}

func (ph *PageHandler) UpdateSection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := pageID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	sectionID := c.Param("sectionId")

	var req sectionPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	patch := pagebuilder.SectionPatch{
		Type:    req.Type,
		Styling: req.Styling,
		Order:   req.Order,
	}
	if len(req.Content) > 0 {
		contentType, err := ph.effectiveSectionType(c, userID, id, sectionID, req.Type)
		if err != nil {
			RespondError(c, err)
			return
		}
		patch.Content = decodeSectionContent(contentType, req.Content)
	}

	page, err := ph.pageService.UpdateSection(c.Request.Context(), userID, id, sectionID, patch)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, page)
}

// effectiveSectionType is the patch's type when given, else the stored one.
func (ph *PageHandler) effectiveSectionType(c *gin.Context, userID, id uuid.UUID, sectionID string, patchType *types.SectionType) (types.SectionType, error) {
	if patchType != nil {
		return *patchType, nil
	}
	page, err := ph.pageService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		return "", err
	}
	for _, s := range page.ContentSections {
		if s.ID == sectionID {
			return s.Type, nil
		}
	}
	return "", apierr.NotFound(fmt.Errorf("section not found"))
}

// decodeSectionContent runs the raw payload through the section envelope
// decoder so it lands in the shape the type demands.
func decodeSectionContent(t types.SectionType, raw json.RawMessage) types.SectionContent {
	envelope, err := json.Marshal(map[string]any{
		"type":    t,
		"content": raw,
	})
	if err != nil {
		return nil
	}
	var section types.ContentSection
	if err := json.Unmarshal(envelope, &section); err != nil {
		return nil
	}
	return section.Content
}

func (ph *PageHandler) RemoveSection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := pageID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	page, err := ph.pageService.RemoveSection(c.Request.Context(), userID, id, c.Param("sectionId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, page)
}

func (ph *PageHandler) SetPublished(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := pageID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		IsPublished bool `json:"is_published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	page, err := ph.pageService.SetPublished(c.Request.Context(), userID, id, req.IsPublished)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, page)
}

func (ph *PageHandler) ApplyDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := pageID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var draft types.DraftSuggestion
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	page, err := ph.pageService.ApplyDraft(c.Request.Context(), userID, id, draft)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, page)
}

// Preview renders the editor's current state without publishing it.
func (ph *PageHandler) Preview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := pageID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	page, err := ph.pageService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"page": page, "tree": pagebuilder.Render(*page)})
}

func (ph *PageHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := pageID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := ph.pageService.Delete(c.Request.Context(), userID, id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "page deleted"})
}
