package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/services"
	"github.com/jarahq/jara-backend/internal/types"
)

type PaymentLinkHandler struct {
	linkService services.PaymentLinkService
}

func NewPaymentLinkHandler(linkService services.PaymentLinkService) *PaymentLinkHandler {
	return &PaymentLinkHandler{linkService: linkService}
}

func linkID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apierr.ValidationRejected(fmt.Errorf("invalid payment link id"))
	}
	return id, nil
}

func (plh *PaymentLinkHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	var link types.PaymentLink
	if err := c.ShouldBindJSON(&link); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := plh.linkService.CreateLink(c.Request.Context(), userID, &link)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (plh *PaymentLinkHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	links, err := plh.linkService.ListByCreator(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, links)
}

func (plh *PaymentLinkHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := linkID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	link, err := plh.linkService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, link)
}

func (plh *PaymentLinkHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := linkID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var fields services.PaymentLinkFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	link, err := plh.linkService.UpdateLink(c.Request.Context(), userID, id, fields)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, link)
}

func (plh *PaymentLinkHandler) SetPublished(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := linkID(c)
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
	link, err := plh.linkService.SetPublished(c.Request.Context(), userID, id, req.IsPublished)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, link)
}

func (plh *PaymentLinkHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := linkID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := plh.linkService.DeleteLink(c.Request.Context(), userID, id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "payment link deleted"})
}
