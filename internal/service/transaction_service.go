package service

import (
	"context"
	"os"

	"github.com/google/uuid"

	"github.com/DvineConqueror/GroceryStorePOS/internal/dto"
	"github.com/DvineConqueror/GroceryStorePOS/internal/infra"
	"github.com/DvineConqueror/GroceryStorePOS/internal/pos"
	"github.com/DvineConqueror/GroceryStorePOS/internal/repository"
)

// TransactionService serves the sales history and receipts.
type TransactionService interface {
	// FetchTransactions loads the full history newest-first and replaces
	// the POS store's list wholesale.
	FetchTransactions(ctx context.Context) ([]dto.TransactionView, error)
	// ReceiptFile returns the path to the receipt PDF, rendering it on the
	// spot when the async job has not produced it yet.
	ReceiptFile(ctx context.Context, id uuid.UUID) (string, error)
}

type transactionService struct {
	repo        repository.TransactionRepository
	profiles    repository.ProfileRepository
	store       *pos.Store
	storeName   string
	receiptPath string
}

func NewTransactionService(
	repo repository.TransactionRepository,
	profiles repository.ProfileRepository,
	store *pos.Store,
	storeName, receiptPath string,
) TransactionService {
	return &transactionService{
		repo:        repo,
		profiles:    profiles,
		store:       store,
		storeName:   storeName,
		receiptPath: receiptPath,
	}
}

func (s *transactionService) FetchTransactions(ctx context.Context) ([]dto.TransactionView, error) {
	txs, err := s.repo.ListWithItems(ctx)
	if err != nil {
		return nil, err
	}

	// Cashier names come from a secondary profile lookup keyed by cashier
	// id, falling back to the stamped name and then to "Unknown".
	ids := make([]uuid.UUID, 0, len(txs))
	for _, tx := range txs {
		if tx.CashierID != uuid.Nil {
			ids = append(ids, tx.CashierID)
		}
	}
	names, err := s.profiles.FindNamesByIDs(ctx, ids)
	if err != nil {
		names = map[uuid.UUID]string{}
	}

	views := make([]dto.TransactionView, len(txs))
	for i, tx := range txs {
		name := names[tx.CashierID]
		if name == "" {
			name = tx.CashierName
		}
		if name == "" {
			name = "Unknown"
		}

		items := make([]dto.CartItemView, len(tx.Items))
		for j, item := range tx.Items {
			// Price is pinned from the sale; name, category and image are
			// the product's CURRENT values and may have drifted since.
			view := dto.CartItemView{
				ID:       item.ProductID.String(),
				Price:    item.PriceAtTime,
				Quantity: item.Quantity,
			}
			if item.Product != nil {
				view.Name = item.Product.Name
				view.Category = item.Product.Category
				view.Image = item.Product.Image
			}
			items[j] = view
		}

		views[i] = dto.TransactionView{
			ID:            tx.ID.String(),
			Items:         items,
			Total:         tx.Total,
			PaymentMethod: tx.PaymentMethod,
			CashReceived:  tx.CashReceived,
			Change:        tx.ChangeAmount,
			Status:        tx.Status,
			Timestamp:     tx.CreatedAt,
			CashierName:   name,
		}
	}

	s.store.Dispatch(pos.SetTransactions{Transactions: views})
	return views, nil
}

func (s *transactionService) ReceiptFile(ctx context.Context, id uuid.UUID) (string, error) {
	path := infra.ReceiptPath(s.receiptPath, id.String())
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return infra.GenerateReceiptPDF(tx, s.storeName, s.receiptPath)
}
