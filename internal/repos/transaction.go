package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/types"
)

type TransactionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, txn *types.Transaction) (*types.Transaction, error)
	GetByID(ctx context.Context, tx *gorm.DB, txnID uuid.UUID) (*types.Transaction, error)
	ListByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, limit int) ([]*types.Transaction, error)
	ListByPaymentLinkID(ctx context.Context, tx *gorm.DB, linkID uuid.UUID) ([]*types.Transaction, error)
	Update(ctx context.Context, tx *gorm.DB, txn *types.Transaction) (*types.Transaction, error)
}

type transactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTransactionRepo(db *gorm.DB, baseLog *logger.Logger) TransactionRepo {
	repoLog := baseLog.With("repo", "TransactionRepo")
	return &transactionRepo{db: db, log: repoLog}
}

func (tr *transactionRepo) Create(ctx context.Context, tx *gorm.DB, txn *types.Transaction) (*types.Transaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if err := transaction.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

func (tr *transactionRepo) GetByID(ctx context.Context, tx *gorm.DB, txnID uuid.UUID) (*types.Transaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var result types.Transaction
	if err := transaction.WithContext(ctx).
		Where("id = ?", txnID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *transactionRepo) ListByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, limit int) ([]*types.Transaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	query := transaction.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []*types.Transaction
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *transactionRepo) ListByPaymentLinkID(ctx context.Context, tx *gorm.DB, linkID uuid.UUID) ([]*types.Transaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Transaction
	if err := transaction.WithContext(ctx).
		Where("payment_link_id = ?", linkID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *transactionRepo) Update(ctx context.Context, tx *gorm.DB, txn *types.Transaction) (*types.Transaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if err := transaction.WithContext(ctx).Save(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}
