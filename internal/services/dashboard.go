package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/repos"
	"github.com/jarahq/jara-backend/internal/types"
)

type DashboardService interface {
	GetStats(ctx context.Context, userID uuid.UUID) (*types.DashboardStats, error)
}

type dashboardService struct {
	db             *gorm.DB
	log            *logger.Logger
	linkRepo       repos.PaymentLinkRepo
	txnRepo        repos.TransactionRepo
	creatorService CreatorService
}

func NewDashboardService(
	db *gorm.DB,
	log *logger.Logger,
	linkRepo repos.PaymentLinkRepo,
	txnRepo repos.TransactionRepo,
	creatorService CreatorService,
) DashboardService {
	serviceLog := log.With("service", "DashboardService")
	return &dashboardService{
		db:             db,
		log:            serviceLog,
		linkRepo:       linkRepo,
		txnRepo:        txnRepo,
		creatorService: creatorService,
	}
}

// GetStats computes the dashboard aggregate from the creator's links and
// successful transactions. Computed in memory: creators hold dozens of rows,
// not millions.
func (ds *dashboardService) GetStats(ctx context.Context, userID uuid.UUID) (*types.DashboardStats, error) {
	creator, err := ds.creatorService.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	links, err := ds.linkRepo.ListByCreatorID(ctx, nil, creator.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment links: %w", err)
	}
	txns, err := ds.txnRepo.ListByCreatorID(ctx, nil, creator.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	stats := &types.DashboardStats{
		RevenueByCurrency: map[string]float64{},
	}

	var top *types.PaymentLink
	for _, link := range links {
		if link.IsPublished {
			stats.PublishedLinks++
		}
		if top == nil || link.TotalRevenue > top.TotalRevenue {
			top = link
		}
	}
	if top != nil && top.TotalRevenue > 0 {
		stats.TopPerformingLink = top
	}

	recentCutoff := time.Now().AddDate(0, 0, -30)
	for _, txn := range txns {
		if txn.Status != types.TransactionSuccessful {
			continue
		}
		stats.TotalRevenue += txn.Amount
		stats.TotalTransactions++
		stats.RevenueByCurrency[txn.Currency] += txn.Amount
		if txn.CreatedAt.After(recentCutoff) {
			stats.RecentRevenue += txn.Amount
		}
	}

	return stats, nil
}
