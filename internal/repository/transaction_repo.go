package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DvineConqueror/GroceryStorePOS/internal/model"
)

// TransactionRepository persists completed sales. Header and items are
// separate calls on purpose: checkout is a multi-step write without a
// wrapping transaction, and a failure between the two leaves an orphaned
// header (accepted inconsistency window, recovered manually).
type TransactionRepository interface {
	CreateHeader(ctx context.Context, tx *model.Transaction) error
	CreateItems(ctx context.Context, items []model.TransactionItem) error
	// ListWithItems returns all transactions newest first, each line item
	// joined with its current product row.
	ListWithItems(ctx context.Context) ([]model.Transaction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) CreateHeader(ctx context.Context, tx *model.Transaction) error {
	return r.db.WithContext(ctx).Omit("Items").Create(tx).Error
}

func (r *transactionRepo) CreateItems(ctx context.Context, items []model.TransactionItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *transactionRepo) ListWithItems(ctx context.Context) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var tx model.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&tx, "id = ?", id).Error
	return &tx, err
}
