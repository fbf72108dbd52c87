package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/apierr"
	redisclient "github.com/jarahq/jara-backend/internal/clients/redis"
	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/repos"
	"github.com/jarahq/jara-backend/internal/types"
)

// CreatorService manages creator profiles. A NotFound from GetByUserID is a
// normal state: the user has simply not onboarded as a creator yet.
type CreatorService interface {
	CreateCreator(ctx context.Context, userID uuid.UUID, creator *types.Creator) (*types.Creator, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Creator, error)
	GetByID(ctx context.Context, creatorID uuid.UUID) (*types.Creator, error)
	GetBySlug(ctx context.Context, slug string) (*types.Creator, error)
	UpdateCreator(ctx context.Context, userID uuid.UUID, fields types.CreatorFields) (*types.Creator, error)
	SetPublished(ctx context.Context, userID uuid.UUID, published bool) (*types.Creator, error)
	DeleteCreator(ctx context.Context, userID uuid.UUID) error
}

type creatorService struct {
	db          *gorm.DB
	log         *logger.Logger
	creatorRepo repos.CreatorRepo
	cache       redisclient.CreatorCache
}

// NewCreatorService wires the creator repo with an optional redis hint cache;
// cache may be nil and every lookup still works off the database.
func NewCreatorService(db *gorm.DB, log *logger.Logger, creatorRepo repos.CreatorRepo, cache redisclient.CreatorCache) CreatorService {
	serviceLog := log.With("service", "CreatorService")
	return &creatorService{
		db:          db,
		log:         serviceLog,
		creatorRepo: creatorRepo,
		cache:       cache,
	}
}

func (cs *creatorService) CreateCreator(ctx context.Context, userID uuid.UUID, creator *types.Creator) (*types.Creator, error) {
	if creator == nil || creator.Name == "" {
		return nil, apierr.ValidationRejected(fmt.Errorf("a creator name is required"))
	}
	if _, err := cs.creatorRepo.GetByUserID(ctx, nil, userID); err == nil {
		return nil, apierr.ValidationRejected(fmt.Errorf("creator profile already exists"))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing creator: %w", err)
	}

	creator.ID = uuid.New()
	creator.UserID = userID
	if creator.PaymentPreferences.Currency == "" {
		creator.PaymentPreferences.Currency = "USD"
	}

	created, err := cs.creatorRepo.Create(ctx, nil, creator)
	if err != nil {
		return nil, fmt.Errorf("failed to create creator: %w", err)
	}
	if cs.cache != nil {
		cs.cache.SetCreatorID(ctx, userID, created.ID)
	}
	return created, nil
}

func (cs *creatorService) GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Creator, error) {
	if cs.cache != nil {
		if creatorID, ok := cs.cache.GetCreatorID(ctx, userID); ok {
			creator, err := cs.creatorRepo.GetByID(ctx, nil, creatorID)
			if err == nil && creator.UserID == userID {
				return creator, nil
			}
			// stale hint, fall through to the database
			cs.cache.Invalidate(ctx, userID)
		}
	}

	creator, err := cs.creatorRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if cs.cache != nil {
				cs.cache.Invalidate(ctx, userID)
			}
			return nil, apierr.NotFound(fmt.Errorf("no creator profile for user"))
		}
		return nil, fmt.Errorf("failed to load creator: %w", err)
	}
	if cs.cache != nil {
		cs.cache.SetCreatorID(ctx, userID, creator.ID)
	}
	return creator, nil
}

func (cs *creatorService) GetByID(ctx context.Context, creatorID uuid.UUID) (*types.Creator, error) {
	creator, err := cs.creatorRepo.GetByID(ctx, nil, creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("creator not found"))
		}
		return nil, fmt.Errorf("failed to load creator: %w", err)
	}
	return creator, nil
}

func (cs *creatorService) GetBySlug(ctx context.Context, slug string) (*types.Creator, error) {
	creator, err := cs.creatorRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("creator not found"))
		}
		return nil, fmt.Errorf("failed to load creator by slug: %w", err)
	}
	return creator, nil
}

func (cs *creatorService) UpdateCreator(ctx context.Context, userID uuid.UUID, fields types.CreatorFields) (*types.Creator, error) {
	creator, err := cs.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if fields.Name != nil {
		if *fields.Name == "" {
			return nil, apierr.ValidationRejected(fmt.Errorf("creator name cannot be empty"))
		}
		creator.Name = *fields.Name
	}
	if fields.Bio != nil {
		creator.Bio = *fields.Bio
	}
	if fields.SocialLinks != nil {
		creator.SocialLinks = fields.SocialLinks
	}
	if fields.ProfileImageURL != nil {
		creator.ProfileImageURL = *fields.ProfileImageURL
	}
	if fields.BackgroundImageURL != nil {
		creator.BackgroundImageURL = *fields.BackgroundImageURL
	}
	if fields.PaymentPreferences != nil {
		creator.PaymentPreferences = *fields.PaymentPreferences
	}

	updated, err := cs.creatorRepo.Update(ctx, nil, creator)
	if err != nil {
		return nil, fmt.Errorf("failed to update creator: %w", err)
	}
	return updated, nil
}

func (cs *creatorService) SetPublished(ctx context.Context, userID uuid.UUID, published bool) (*types.Creator, error) {
	creator, err := cs.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	creator.IsPublished = published
	updated, err := cs.creatorRepo.Update(ctx, nil, creator)
	if err != nil {
		return nil, fmt.Errorf("failed to update creator publish state: %w", err)
	}
	return updated, nil
}

func (cs *creatorService) DeleteCreator(ctx context.Context, userID uuid.UUID) error {
	creator, err := cs.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := cs.creatorRepo.Delete(ctx, nil, creator.ID); err != nil {
		return fmt.Errorf("failed to delete creator: %w", err)
	}
	if cs.cache != nil {
		cs.cache.Invalidate(ctx, userID)
	}
	return nil
}
