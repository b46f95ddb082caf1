package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/DvineConqueror/GroceryStorePOS/internal/dto"
	"github.com/DvineConqueror/GroceryStorePOS/internal/model"
	"github.com/DvineConqueror/GroceryStorePOS/internal/pos"
	"github.com/DvineConqueror/GroceryStorePOS/internal/repository"
	"github.com/DvineConqueror/GroceryStorePOS/internal/worker"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInsufficientCash = errors.New("cash received is less than the total")
	ErrCashOverLimit    = errors.New("cash received exceeds the register limit")
)

// CheckoutService completes the in-progress sale: it persists the
// transaction header, its line items and the stock decrements, and only
// after all of that succeeds does it dispatch CompleteTransaction into the
// POS store. On any persistence failure the cart stays intact.
type CheckoutService interface {
	Complete(ctx context.Context, cashierID uuid.UUID, req dto.CheckoutRequest) (*dto.TransactionView, error)
}

type checkoutService struct {
	store      *pos.Store
	txRepo     repository.TransactionRepository
	products   repository.ProductRepository
	profiles   repository.ProfileRepository
	dispatcher *worker.Dispatcher
	cashLimit  decimal.Decimal
}

func NewCheckoutService(
	store *pos.Store,
	txRepo repository.TransactionRepository,
	products repository.ProductRepository,
	profiles repository.ProfileRepository,
	dispatcher *worker.Dispatcher,
	cashLimit decimal.Decimal,
) CheckoutService {
	return &checkoutService{
		store:      store,
		txRepo:     txRepo,
		products:   products,
		profiles:   profiles,
		dispatcher: dispatcher,
		cashLimit:  cashLimit,
	}
}

func (s *checkoutService) Complete(ctx context.Context, cashierID uuid.UUID, req dto.CheckoutRequest) (*dto.TransactionView, error) {
	cart := s.store.Snapshot().Cart
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	// Tender validation happens before any persistence call. Change can
	// never be negative because under-tendering is blocked here.
	total := s.store.CalculateTotal()
	if req.CashReceived.LessThan(total) {
		return nil, ErrInsufficientCash
	}
	if req.CashReceived.GreaterThan(s.cashLimit) {
		return nil, ErrCashOverLimit
	}
	change := req.CashReceived.Sub(total)

	// The cashier's display name is stamped onto the transaction.
	profile, err := s.profiles.FindByID(ctx, cashierID)
	if err != nil {
		log.Error().Err(err).Str("cashier_id", cashierID.String()).Msg("checkout: fetch cashier profile")
		return nil, errors.New("failed to complete transaction")
	}

	now := time.Now()
	header := &model.Transaction{
		Total:         total,
		PaymentMethod: model.PaymentCash,
		CashReceived:  req.CashReceived,
		ChangeAmount:  change,
		Status:        model.TransactionCompleted,
		CashierID:     cashierID,
		CashierName:   profile.FullName,
		CreatedAt:     now,
	}

	// Header, items and stock decrements are independent calls without a
	// wrapping transaction. A failure mid-way leaves what was already
	// written (orphaned header, missing decrements); nothing is retried or
	// rolled back, recovery is manual.
	if err := s.txRepo.CreateHeader(ctx, header); err != nil {
		log.Error().Err(err).Msg("checkout: insert transaction header")
		return nil, errors.New("failed to complete transaction")
	}

	items := make([]model.TransactionItem, 0, len(cart))
	for _, line := range cart {
		pid, err := uuid.Parse(line.ID)
		if err != nil {
			log.Error().Err(err).Str("product_id", line.ID).Msg("checkout: bad product id in cart")
			return nil, errors.New("failed to complete transaction")
		}
		items = append(items, model.TransactionItem{
			TransactionID: header.ID,
			ProductID:     pid,
			Quantity:      line.Quantity,
			PriceAtTime:   line.Price,
		})
	}
	if err := s.txRepo.CreateItems(ctx, items); err != nil {
		log.Error().Err(err).Str("transaction_id", header.ID.String()).Msg("checkout: insert transaction items")
		return nil, errors.New("failed to complete transaction")
	}

	// Atomic per-line decrement: a single UPDATE expression on the server,
	// never a client-side read-modify-write.
	for _, item := range items {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Error().Err(err).Str("product_id", item.ProductID.String()).Msg("checkout: decrement stock")
			return nil, errors.New("failed to complete transaction")
		}
	}

	view := dto.TransactionView{
		ID:            header.ID.String(),
		Items:         cart,
		Total:         total,
		PaymentMethod: model.PaymentCash,
		CashReceived:  req.CashReceived,
		Change:        change,
		Status:        model.TransactionCompleted,
		Timestamp:     now,
		CashierName:   profile.FullName,
	}

	// Persistence succeeded: now, and only now, the in-memory transition.
	s.store.Dispatch(pos.CompleteTransaction{Transaction: view})
	id := view.ID
	s.store.Dispatch(pos.SetCurrentTransactionID{ID: &id})
	s.store.Dispatch(pos.ToggleCheckout{Open: false})

	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReceipt(ctx, view.ID)
	}
	return &view, nil
}
