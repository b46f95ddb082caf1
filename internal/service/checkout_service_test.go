package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DvineConqueror/GroceryStorePOS/internal/dto"
	"github.com/DvineConqueror/GroceryStorePOS/internal/model"
	"github.com/DvineConqueror/GroceryStorePOS/internal/pos"
)

func buildCheckoutSvc() (CheckoutService, *pos.Store, *stubTransactionRepo, *stubProductRepo, *stubProfileRepo) {
	store := pos.NewStore()
	txRepo := &stubTransactionRepo{}
	products := newStubProductRepo()
	profiles := newStubProfileRepo()
	svc := NewCheckoutService(store, txRepo, products, profiles, nil, decimal.NewFromInt(10000))
	return svc, store, txRepo, products, profiles
}

func seedCashier(profiles *stubProfileRepo) uuid.UUID {
	id := uuid.New()
	_ = profiles.Create(context.Background(), &model.Profile{
		ID: id, FullName: "Test Cashier", Role: model.RoleCashier, Approved: true,
	})
	return id
}

func addProductToCart(store *pos.Store, products *stubProductRepo, price float64, stock, qty int) *model.Product {
	p := products.seed(model.Product{
		Name:     "Chips",
		Price:    decimal.NewFromFloat(price),
		Category: "Snacks",
		Stock:    stock,
	})
	for i := 0; i < qty; i++ {
		store.Dispatch(pos.AddToCart{Product: *p})
	}
	return p
}

func TestCheckout_Success(t *testing.T) {
	svc, store, txRepo, products, profiles := buildCheckoutSvc()
	cashier := seedCashier(profiles)
	p := addProductToCart(store, products, 25, 10, 2) // total 50

	view, err := svc.Complete(context.Background(), cashier, dto.CheckoutRequest{
		CashReceived: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	assert.Equal(t, "50", view.Total.String())
	assert.Equal(t, "50", view.Change.String())
	assert.Equal(t, model.TransactionCompleted, view.Status)
	assert.Equal(t, model.PaymentCash, view.PaymentMethod)
	assert.Equal(t, "Test Cashier", view.CashierName)

	// Persisted header, line items at the sale price, and stock decrement.
	require.Len(t, txRepo.headers, 1)
	require.Len(t, txRepo.items, 1)
	assert.Equal(t, "25", txRepo.items[0].PriceAtTime.String())
	assert.Equal(t, 2, txRepo.items[0].Quantity)
	assert.Equal(t, 8, products.products[p.ID].Stock)

	// In-memory transitions fire after persistence: history gains the sale,
	// the cart clears, the dialog closes.
	state := store.Snapshot()
	assert.Empty(t, state.Cart)
	require.Len(t, state.Transactions, 1)
	assert.Equal(t, view.ID, state.Transactions[0].ID)
	assert.False(t, state.CheckoutOpen)
	require.NotNil(t, state.CurrentTransactionID)
	assert.Equal(t, view.ID, *state.CurrentTransactionID)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _, txRepo, _, profiles := buildCheckoutSvc()
	cashier := seedCashier(profiles)

	_, err := svc.Complete(context.Background(), cashier, dto.CheckoutRequest{
		CashReceived: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, txRepo.headers)
}

func TestCheckout_InsufficientCash_NothingPersisted(t *testing.T) {
	svc, store, txRepo, products, profiles := buildCheckoutSvc()
	cashier := seedCashier(profiles)
	addProductToCart(store, products, 25, 10, 2) // total 50

	_, err := svc.Complete(context.Background(), cashier, dto.CheckoutRequest{
		CashReceived: decimal.NewFromInt(49),
	})
	assert.ErrorIs(t, err, ErrInsufficientCash)
	assert.Empty(t, txRepo.headers)
	assert.Zero(t, products.decrements)
	assert.Len(t, store.Snapshot().Cart, 1)
}

func TestCheckout_ExactCash_ZeroChange(t *testing.T) {
	svc, store, _, products, profiles := buildCheckoutSvc()
	cashier := seedCashier(profiles)
	addProductToCart(store, products, 25, 10, 2)

	view, err := svc.Complete(context.Background(), cashier, dto.CheckoutRequest{
		CashReceived: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.True(t, view.Change.IsZero())
}

func TestCheckout_CashOverLimit(t *testing.T) {
	svc, store, txRepo, products, profiles := buildCheckoutSvc()
	cashier := seedCashier(profiles)
	addProductToCart(store, products, 25, 10, 2)

	_, err := svc.Complete(context.Background(), cashier, dto.CheckoutRequest{
		CashReceived: decimal.NewFromInt(10001),
	})
	assert.ErrorIs(t, err, ErrCashOverLimit)
	assert.Empty(t, txRepo.headers)
}

func TestCheckout_InsufficientStock_CartStaysIntact(t *testing.T) {
	svc, store, _, products, profiles := buildCheckoutSvc()
	cashier := seedCashier(profiles)
	addProductToCart(store, products, 25, 1, 2) // stock 1, cart wants 2

	_, err := svc.Complete(context.Background(), cashier, dto.CheckoutRequest{
		CashReceived: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.Equal(t, "failed to complete transaction", err.Error())

	// The persistence failure leaves the in-memory cart untouched so the
	// cashier can retry or adjust.
	state := store.Snapshot()
	assert.Len(t, state.Cart, 1)
	assert.Empty(t, state.Transactions)
}

func TestCheckout_HeaderInsertFailure(t *testing.T) {
	svc, store, txRepo, products, profiles := buildCheckoutSvc()
	cashier := seedCashier(profiles)
	addProductToCart(store, products, 25, 10, 1)
	txRepo.headerErr = errors.New("db down")

	_, err := svc.Complete(context.Background(), cashier, dto.CheckoutRequest{
		CashReceived: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.Equal(t, "failed to complete transaction", err.Error())
	assert.Zero(t, products.decrements)
	assert.Len(t, store.Snapshot().Cart, 1)
}

func TestCheckout_UnknownCashier(t *testing.T) {
	svc, store, txRepo, products, _ := buildCheckoutSvc()
	addProductToCart(store, products, 25, 10, 1)

	_, err := svc.Complete(context.Background(), uuid.New(), dto.CheckoutRequest{
		CashReceived: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.Empty(t, txRepo.headers)
}
