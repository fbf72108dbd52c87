package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/repos"
	"github.com/jarahq/jara-backend/internal/types"
)

// TransactionService is a read surface: rows land in the table from the
// payment processor, this side only lists them for the dashboard.
type TransactionService interface {
	ListByCreator(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Transaction, error)
	ListByPaymentLink(ctx context.Context, userID, linkID uuid.UUID) ([]*types.Transaction, error)
}

type transactionService struct {
	db             *gorm.DB
	log            *logger.Logger
	txnRepo        repos.TransactionRepo
	linkService    PaymentLinkService
	creatorService CreatorService
}

func NewTransactionService(
	db *gorm.DB,
	log *logger.Logger,
	txnRepo repos.TransactionRepo,
	linkService PaymentLinkService,
	creatorService CreatorService,
) TransactionService {
	serviceLog := log.With("service", "TransactionService")
	return &transactionService{
		db:             db,
		log:            serviceLog,
		txnRepo:        txnRepo,
		linkService:    linkService,
		creatorService: creatorService,
	}
}

func (ts *transactionService) ListByCreator(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Transaction, error) {
	creator, err := ts.creatorService.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	txns, err := ts.txnRepo.ListByCreatorID(ctx, nil, creator.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (ts *transactionService) ListByPaymentLink(ctx context.Context, userID, linkID uuid.UUID) ([]*types.Transaction, error) {
	// ownership check rides on the link lookup
	link, err := ts.linkService.GetByID(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}
	txns, err := ts.txnRepo.ListByPaymentLinkID(ctx, nil, link.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for link: %w", err)
	}
	return txns, nil
}
