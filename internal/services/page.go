package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/normalization"
	"github.com/jarahq/jara-backend/internal/pagebuilder"
	"github.com/jarahq/jara-backend/internal/repos"
	"github.com/jarahq/jara-backend/internal/types"
)

// PageService orchestrates the pure page-builder operations against storage.
// Every mutation loads the aggregate, applies the in-memory op, and persists
// the whole row back: last save wins.
type PageService interface {
	CreateDraft(ctx context.Context, userID uuid.UUID) (*types.LandingPage, error)
	GetBySlug(ctx context.Context, slug string) (*types.LandingPage, error)
	GetByID(ctx context.Context, userID, pageID uuid.UUID) (*types.LandingPage, error)
	ListByCreator(ctx context.Context, userID uuid.UUID) ([]*types.LandingPage, error)
	Save(ctx context.Context, userID uuid.UUID, page *types.LandingPage) (*types.LandingPage, error)
	UpdateFields(ctx context.Context, userID, pageID uuid.UUID, fields types.PageFields) (*types.LandingPage, error)
	AddSection(ctx context.Context, userID, pageID uuid.UUID, sectionType types.SectionType) (*types.LandingPage, error)
	UpdateSection(ctx context.Context, userID, pageID uuid.UUID, sectionID string, patch pagebuilder.SectionPatch) (*types.LandingPage, error)
	RemoveSection(ctx context.Context, userID, pageID uuid.UUID, sectionID string) (*types.LandingPage, error)
	SetPublished(ctx context.Context, userID, pageID uuid.UUID, published bool) (*types.LandingPage, error)
	ApplyDraft(ctx context.Context, userID, pageID uuid.UUID, draft types.DraftSuggestion) (*types.LandingPage, error)
	Delete(ctx context.Context, userID, pageID uuid.UUID) error
}

type pageService struct {
	db             *gorm.DB
	log            *logger.Logger
	pageRepo       repos.LandingPageRepo
	creatorRepo    repos.CreatorRepo
	creatorService CreatorService
}

func NewPageService(
	db *gorm.DB,
	log *logger.Logger,
	pageRepo repos.LandingPageRepo,
	creatorRepo repos.CreatorRepo,
	creatorService CreatorService,
) PageService {
	serviceLog := log.With("service", "PageService")
	return &pageService{
		db:             db,
		log:            serviceLog,
		pageRepo:       pageRepo,
		creatorRepo:    creatorRepo,
		creatorService: creatorService,
	}
}

func (ps *pageService) CreateDraft(ctx context.Context, userID uuid.UUID) (*types.LandingPage, error) {
	creator, err := ps.creatorService.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	draft := pagebuilder.NewDraft(creator.ID, "jara")
	draft.Title = creator.Name
	draft.Description = creator.Bio
	return &draft, nil
}

func (ps *pageService) GetBySlug(ctx context.Context, slug string) (*types.LandingPage, error) {
	page, err := ps.pageRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("page not found"))
		}
		return nil, fmt.Errorf("failed to load page by slug: %w", err)
	}
	return page, nil
}

func (ps *pageService) GetByID(ctx context.Context, userID, pageID uuid.UUID) (*types.LandingPage, error) {
	page, _, err := ps.loadOwned(ctx, userID, pageID)
	return page, err
}

func (ps *pageService) ListByCreator(ctx context.Context, userID uuid.UUID) ([]*types.LandingPage, error) {
	creator, err := ps.creatorService.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	pages, err := ps.pageRepo.ListByCreatorID(ctx, nil, creator.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

// Save creates the page when its id is unset and updates it otherwise. The
// server owns id, slug and timestamps; client-supplied values for those are
// ignored on create.
func (ps *pageService) Save(ctx context.Context, userID uuid.UUID, page *types.LandingPage) (*types.LandingPage, error) {
	if page == nil {
		return nil, apierr.ValidationRejected(fmt.Errorf("no page given"))
	}
	creator, err := ps.creatorService.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if page.ID == uuid.Nil {
		return ps.createPage(ctx, creator, page)
	}

	existing, err := ps.pageRepo.GetByID(ctx, nil, page.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("page not found"))
		}
		return nil, fmt.Errorf("failed to load page: %w", err)
	}
	if existing.CreatorID != creator.ID {
		return nil, apierr.NotFound(fmt.Errorf("page not found"))
	}

	// slug and ownership are immutable on update
	page.CreatorID = existing.CreatorID
	page.Slug = existing.Slug
	page.CreatedAt = existing.CreatedAt

	updated, err := ps.pageRepo.Update(ctx, nil, page)
	if err != nil {
		return nil, fmt.Errorf("failed to update page: %w", err)
	}
	return updated, nil
}

func (ps *pageService) createPage(ctx context.Context, creator *types.Creator, page *types.LandingPage) (*types.LandingPage, error) {
	fresh := pagebuilder.NewDraft(creator.ID, page.PageType)
	draft := pagebuilder.MergeDraft(fresh, pageToSuggestion(page))

	// fields outside the merge pipeline carry over as posted
	draft.HeroImageURL = page.HeroImageURL
	if page.MediaGallery != nil {
		draft.MediaGallery = page.MediaGallery
	}
	draft.MetaTitle = page.MetaTitle
	draft.MetaDescription = page.MetaDescription
	if page.MetaKeywords != nil {
		draft.MetaKeywords = page.MetaKeywords
	}
	draft.OGImageURL = page.OGImageURL
	if page.PaymentLinks != nil {
		draft.PaymentLinks = page.PaymentLinks
	}
	draft.IsPublished = page.IsPublished
	draft.ShowSocialLinks = page.ShowSocialLinks
	draft.ShowTestimonials = page.ShowTestimonials
	draft.ShowMediaGallery = page.ShowMediaGallery
	draft.ContactFormEnabled = page.ContactFormEnabled

	base := page.Title
	if base == "" {
		base = creator.Name
		draft.Title = creator.Name
	}

	var created *types.LandingPage
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, sErr := ps.uniqueSlug(ctx, tx, base)
		if sErr != nil {
			return sErr
		}
		draft.ID = uuid.New()
		draft.Slug = slug

		var cErr error
		created, cErr = ps.pageRepo.Create(ctx, tx, &draft)
		if cErr != nil {
			return fmt.Errorf("failed to create page: %w", cErr)
		}

		// first jara page becomes the creator's primary page pointer
		if created.PageType == "jara" && creator.JaraPageSlug == "" {
			creator.JaraPageSlug = created.Slug
			if _, uErr := ps.creatorRepo.Update(ctx, tx, creator); uErr != nil {
				return fmt.Errorf("failed to update creator page slug: %w", uErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// pageToSuggestion reuses the merge pipeline so client-provided collections
// get server-assigned ids and dense ordering on create.
func pageToSuggestion(page *types.LandingPage) types.DraftSuggestion {
	s := types.DraftSuggestion{
		Title:           page.Title,
		Subtitle:        page.Subtitle,
		Description:     page.Description,
		HeroTitle:       page.HeroTitle,
		HeroSubtitle:    page.HeroSubtitle,
		HeroDescription: page.HeroDescription,
	}
	if page.ContentSections != nil {
		s.ContentSections = page.ContentSections
	}
	if page.CTAButtons != nil {
		s.CTAButtons = page.CTAButtons
	}
	if page.Testimonials != nil {
		s.Testimonials = page.Testimonials
	}
	theme := page.ThemeSettings
	if theme != (types.ThemeSettings{}) {
		s.ThemeSettings = &theme
	}
	return s
}

func (ps *pageService) uniqueSlug(ctx context.Context, tx *gorm.DB, base string) (string, error) {
	slug := normalization.ParseSlug(base)
	if slug == "" {
		slug = "page"
	}
	candidate := slug
	for i := 2; ; i++ {
		exists, err := ps.pageRepo.SlugExists(ctx, tx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}

func (ps *pageService) UpdateFields(ctx context.Context, userID, pageID uuid.UUID, fields types.PageFields) (*types.LandingPage, error) {
	return ps.mutate(ctx, userID, pageID, func(page types.LandingPage) (types.LandingPage, error) {
		return pagebuilder.UpdateFields(page, fields), nil
	})
}

func (ps *pageService) AddSection(ctx context.Context, userID, pageID uuid.UUID, sectionType types.SectionType) (*types.LandingPage, error) {
	if types.DefaultContent(sectionType) == nil {
		return nil, apierr.ValidationRejected(fmt.Errorf("unknown section type %q", sectionType))
	}
	return ps.mutate(ctx, userID, pageID, func(page types.LandingPage) (types.LandingPage, error) {
		return pagebuilder.AddSection(page, sectionType), nil
	})
}

func (ps *pageService) UpdateSection(ctx context.Context, userID, pageID uuid.UUID, sectionID string, patch pagebuilder.SectionPatch) (*types.LandingPage, error) {
	return ps.mutate(ctx, userID, pageID, func(page types.LandingPage) (types.LandingPage, error) {
		return pagebuilder.UpdateSection(page, sectionID, patch), nil
	})
}

func (ps *pageService) RemoveSection(ctx context.Context, userID, pageID uuid.UUID, sectionID string) (*types.LandingPage, error) {
	return ps.mutate(ctx, userID, pageID, func(page types.LandingPage) (types.LandingPage, error) {
		return pagebuilder.RemoveSection(page, sectionID), nil
	})
}

func (ps *pageService) SetPublished(ctx context.Context, userID, pageID uuid.UUID, published bool) (*types.LandingPage, error) {
	return ps.mutate(ctx, userID, pageID, func(page types.LandingPage) (types.LandingPage, error) {
		return pagebuilder.SetPublished(page, published), nil
	})
}

func (ps *pageService) ApplyDraft(ctx context.Context, userID, pageID uuid.UUID, draft types.DraftSuggestion) (*types.LandingPage, error) {
	return ps.mutate(ctx, userID, pageID, func(page types.LandingPage) (types.LandingPage, error) {
		return pagebuilder.MergeDraft(page, draft), nil
	})
}

func (ps *pageService) Delete(ctx context.Context, userID, pageID uuid.UUID) error {
	page, creator, err := ps.loadOwned(ctx, userID, pageID)
	if err != nil {
		return err
	}
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dErr := ps.pageRepo.Delete(ctx, tx, page.ID); dErr != nil {
			return fmt.Errorf("failed to delete page: %w", dErr)
		}
		if creator.JaraPageSlug == page.Slug {
			creator.JaraPageSlug = ""
			if _, uErr := ps.creatorRepo.Update(ctx, tx, creator); uErr != nil {
				return fmt.Errorf("failed to clear creator page slug: %w", uErr)
			}
		}
		return nil
	})
}

func (ps *pageService) mutate(ctx context.Context, userID, pageID uuid.UUID, op func(types.LandingPage) (types.LandingPage, error)) (*types.LandingPage, error) {
	page, _, err := ps.loadOwned(ctx, userID, pageID)
	if err != nil {
		return nil, err
	}
	next, err := op(*page)
	if err != nil {
		return nil, err
	}
	updated, err := ps.pageRepo.Update(ctx, nil, &next)
	if err != nil {
		return nil, fmt.Errorf("failed to persist page: %w", err)
	}
	return updated, nil
}

func (ps *pageService) loadOwned(ctx context.Context, userID, pageID uuid.UUID) (*types.LandingPage, *types.Creator, error) {
	creator, err := ps.creatorService.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	page, err := ps.pageRepo.GetByID(ctx, nil, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apierr.NotFound(fmt.Errorf("page not found"))
		}
		return nil, nil, fmt.Errorf("failed to load page: %w", err)
	}
	if page.CreatorID != creator.ID {
		// ownership failures read as missing pages to the caller
		return nil, nil, apierr.NotFound(fmt.Errorf("page not found"))
	}
	return page, creator, nil
}
