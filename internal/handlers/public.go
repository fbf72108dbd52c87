package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/pagebuilder"
	"github.com/jarahq/jara-backend/internal/services"
	"github.com/jarahq/jara-backend/internal/types"
)

// PublicHandler serves the unauthenticated read surface: creator profiles,
// published landing pages and payment link pages.
type PublicHandler struct {
	creatorService services.CreatorService
	pageService    services.PageService
	linkService    services.PaymentLinkService
}

func NewPublicHandler(
	creatorService services.CreatorService,
	pageService services.PageService,
	linkService services.PaymentLinkService,
) *PublicHandler {
	return &PublicHandler{
		creatorService: creatorService,
		pageService:    pageService,
		linkService:    linkService,
	}
}

// GetCreatorPage resolves /u/:slug to the creator's profile plus their
// primary landing page.
func (ph *PublicHandler) GetCreatorPage(c *gin.Context) {
	slug := c.Param("slug")
	creator, err := ph.creatorService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		RespondError(c, err)
		return
	}
	if !creator.IsPublished {
		RespondError(c, apierr.NotFound(fmt.Errorf("creator not found")))
		return
	}
	page, err := ph.loadPublishedPage(c, creator.JaraPageSlug)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"creator": publicCreatorView(creator),
		"page":    page,
		"tree":    pagebuilder.Render(*page),
	})
}

// GetPage serves the aggregate and rendered tree for /p/:slug.
func (ph *PublicHandler) GetPage(c *gin.Context) {
	page, err := ph.loadPublishedPage(c, c.Param("slug"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"page": page,
		"tree": pagebuilder.Render(*page),
	})
}

// GetPageHTML serves a server-rendered document for /p/:slug/html.
func (ph *PublicHandler) GetPageHTML(c *gin.Context) {
	page, err := ph.loadPublishedPage(c, c.Param("slug"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(pagebuilder.RenderHTML(*page)))
}

func (ph *PublicHandler) GetPaymentLink(c *gin.Context) {
	link, err := ph.linkService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		RespondError(c, err)
		return
	}
	if !link.IsPublished {
		RespondError(c, apierr.NotFound(fmt.Errorf("payment link not found")))
		return
	}
	RespondOK(c, link)
}

func (ph *PublicHandler) loadPublishedPage(c *gin.Context, slug string) (*types.LandingPage, error) {
	if slug == "" {
		return nil, apierr.NotFound(fmt.Errorf("page not found"))
	}
	page, err := ph.pageService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		return nil, err
	}
	if !page.IsPublished {
		// unpublished pages look missing from the outside
		return nil, apierr.NotFound(fmt.Errorf("page not found"))
	}
	return page, nil
}

// publicCreatorView strips internal linkage from the profile payload.
func publicCreatorView(creator *types.Creator) gin.H {
	return gin.H{
		"name":                 creator.Name,
		"bio":                  creator.Bio,
		"social_links":         creator.SocialLinks,
		"profile_image_url":    creator.ProfileImageURL,
		"background_image_url": creator.BackgroundImageURL,
		"jara_page_slug":       creator.JaraPageSlug,
	}
}
