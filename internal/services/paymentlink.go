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
	"github.com/jarahq/jara-backend/internal/repos"
	"github.com/jarahq/jara-backend/internal/types"
)

type PaymentLinkFields struct {
	Type           *types.PaymentLinkType `json:"type,omitempty"`
	Title          *string                `json:"title,omitempty"`
	Description    *string                `json:"description,omitempty"`
	Price          *float64               `json:"price,omitempty"`
	Currency       *string                `json:"currency,omitempty"`
	ImageURL       *string                `json:"image_url,omitempty"`
	SuccessMessage *string                `json:"success_message,omitempty"`
}

type PaymentLinkService interface {
	CreateLink(ctx context.Context, userID uuid.UUID, link *types.PaymentLink) (*types.PaymentLink, error)
	GetByID(ctx context.Context, userID, linkID uuid.UUID) (*types.PaymentLink, error)
	GetBySlug(ctx context.Context, slug string) (*types.PaymentLink, error)
	ListByCreator(ctx context.Context, userID uuid.UUID) ([]*types.PaymentLink, error)
	UpdateLink(ctx context.Context, userID, linkID uuid.UUID, fields PaymentLinkFields) (*types.PaymentLink, error)
	SetPublished(ctx context.Context, userID, linkID uuid.UUID, published bool) (*types.PaymentLink, error)
	DeleteLink(ctx context.Context, userID, linkID uuid.UUID) error
}

type paymentLinkService struct {
	db             *gorm.DB
	log            *logger.Logger
	linkRepo       repos.PaymentLinkRepo
	creatorService CreatorService
}

func NewPaymentLinkService(db *gorm.DB, log *logger.Logger, linkRepo repos.PaymentLinkRepo, creatorService CreatorService) PaymentLinkService {
	serviceLog := log.With("service", "PaymentLinkService")
	return &paymentLinkService{
		db:             db,
		log:            serviceLog,
		linkRepo:       linkRepo,
		creatorService: creatorService,
	}
}

func validLinkType(t types.PaymentLinkType) bool {
	switch t {
	case types.PaymentLinkTip, types.PaymentLinkMembership, types.PaymentLinkPayPerView,
		types.PaymentLinkRental, types.PaymentLinkTicket, types.PaymentLinkProduct:
		return true
	}
	return false
}

func (pls *paymentLinkService) CreateLink(ctx context.Context, userID uuid.UUID, link *types.PaymentLink) (*types.PaymentLink, error) {
	if link == nil || link.Title == "" {
		return nil, apierr.ValidationRejected(fmt.Errorf("a payment link title is required"))
	}
	if !validLinkType(link.Type) {
		return nil, apierr.ValidationRejected(fmt.Errorf("unknown payment link type %q", link.Type))
	}
	if link.Price < 0 {
		return nil, apierr.ValidationRejected(fmt.Errorf("price cannot be negative"))
	}
	creator, err := pls.creatorService.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	link.ID = uuid.New()
	link.CreatorID = creator.ID
	if link.Currency == "" {
		link.Currency = creator.PaymentPreferences.Currency
	}
	if link.Currency == "" {
		link.Currency = "USD"
	}
	link.TotalRevenue = 0
	link.TotalTransactions = 0

	var created *types.PaymentLink
	err = pls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, sErr := pls.uniqueSlug(ctx, tx, link.Title)
		if sErr != nil {
			return sErr
		}
		link.Slug = slug
		var cErr error
		created, cErr = pls.linkRepo.Create(ctx, tx, link)
		if cErr != nil {
			return fmt.Errorf("failed to create payment link: %w", cErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (pls *paymentLinkService) uniqueSlug(ctx context.Context, tx *gorm.DB, base string) (string, error) {
	slug := normalization.ParseSlug(base)
	if slug == "" {
		slug = "link"
	}
	candidate := slug
	for i := 2; ; i++ {
		exists, err := pls.linkRepo.SlugExists(ctx, tx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}

func (pls *paymentLinkService) GetByID(ctx context.Context, userID, linkID uuid.UUID) (*types.PaymentLink, error) {
	link, _, err := pls.loadOwned(ctx, userID, linkID)
	return link, err
}

func (pls *paymentLinkService) GetBySlug(ctx context.Context, slug string) (*types.PaymentLink, error) {
	link, err := pls.linkRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("payment link not found"))
		}
		return nil, fmt.Errorf("failed to load payment link by slug: %w", err)
	}
	return link, nil
}

func (pls *paymentLinkService) ListByCreator(ctx context.Context, userID uuid.UUID) ([]*types.PaymentLink, error) {
	creator, err := pls.creatorService.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	links, err := pls.linkRepo.ListByCreatorID(ctx, nil, creator.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment links: %w", err)
	}
	return links, nil
}

func (pls *paymentLinkService) UpdateLink(ctx context.Context, userID, linkID uuid.UUID, fields PaymentLinkFields) (*types.PaymentLink, error) {
	link, _, err := pls.loadOwned(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}

	if fields.Type != nil {
		if !validLinkType(*fields.Type) {
			return nil, apierr.ValidationRejected(fmt.Errorf("unknown payment link type %q", *fields.Type))
		}
		link.Type = *fields.Type
	}
	if fields.Title != nil {
		if *fields.Title == "" {
			return nil, apierr.ValidationRejected(fmt.Errorf("payment link title cannot be empty"))
		}
		link.Title = *fields.Title
	}
	if fields.Description != nil {
		link.Description = *fields.Description
	}
	if fields.Price != nil {
		if *fields.Price < 0 {
			return nil, apierr.ValidationRejected(fmt.Errorf("price cannot be negative"))
		}
		link.Price = *fields.Price
	}
	if fields.Currency != nil {
		link.Currency = *fields.Currency
	}
	if fields.ImageURL != nil {
		link.ImageURL = *fields.ImageURL
	}
	if fields.SuccessMessage != nil {
		link.SuccessMessage = *fields.SuccessMessage
	}

	updated, err := pls.linkRepo.Update(ctx, nil, link)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment link: %w", err)
	}
	return updated, nil
}

func (pls *paymentLinkService) SetPublished(ctx context.Context, userID, linkID uuid.UUID, published bool) (*types.PaymentLink, error) {
	link, _, err := pls.loadOwned(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}
	link.IsPublished = published
	updated, err := pls.linkRepo.Update(ctx, nil, link)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment link publish state: %w", err)
	}
	return updated, nil
}

func (pls *paymentLinkService) DeleteLink(ctx context.Context, userID, linkID uuid.UUID) error {
	link, _, err := pls.loadOwned(ctx, userID, linkID)
	if err != nil {
		return err
	}
	if err := pls.linkRepo.Delete(ctx, nil, link.ID); err != nil {
		return fmt.Errorf("failed to delete payment link: %w", err)
	}
	return nil
}

func (pls *paymentLinkService) loadOwned(ctx context.Context, userID, linkID uuid.UUID) (*types.PaymentLink, *types.Creator, error) {
	creator, err := pls.creatorService.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	link, err := pls.linkRepo.GetByID(ctx, nil, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apierr.NotFound(fmt.Errorf("payment link not found"))
		}
		return nil, nil, fmt.Errorf("failed to load payment link: %w", err)
	}
	if link.CreatorID != creator.ID {
		return nil, nil, apierr.NotFound(fmt.Errorf("payment link not found"))
	}
	return link, creator, nil
}
