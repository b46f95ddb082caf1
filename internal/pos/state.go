// Package pos holds the register's in-memory working state: the catalog view,
// the cart being assembled, the transaction history and the checkout dialog
// flag. All mutation goes through a closed set of actions applied by a pure
// transition function; nothing outside the Store touches the state directly.
package pos

import (
	"github.com/DvineConqueror/GroceryStorePOS/internal/dto"
	"github.com/DvineConqueror/GroceryStorePOS/internal/model"
)

// State is rebuilt from storage at startup; only products and transactions
// are durable — the cart and dialog flag live and die with the process.
type State struct {
	Products             []model.Product
	Cart                 []dto.CartItemView
	Transactions         []dto.TransactionView // newest first
	CheckoutOpen         bool
	CurrentTransactionID *string
}

// Action is the closed union of state transitions. The unexported marker
// keeps the set closed to this package's variants.
type Action interface{ isAction() }

type SetProducts struct{ Products []model.Product }

type SetTransactions struct{ Transactions []dto.TransactionView }

// AddToCart adds one unit of a product. If the product is already in the
// cart its quantity is incremented; the cart never holds two lines for the
// same product id.
type AddToCart struct{ Product model.Product }

// RemoveFromCart deletes the whole line regardless of quantity.
type RemoveFromCart struct{ ProductID string }

// UpdateQuantity sets the exact quantity. Callers guarantee Quantity >= 1;
// the register UI clamps at 1 and never sends less.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

type ClearCart struct{}

type ToggleCheckout struct{ Open bool }

// CompleteTransaction prepends the finished sale to the history and clears
// the cart. Dispatched only after persistence has succeeded.
type CompleteTransaction struct{ Transaction dto.TransactionView }

type SetCurrentTransactionID struct{ ID *string }

func (SetProducts) isAction()             {}
func (SetTransactions) isAction()         {}
func (AddToCart) isAction()               {}
func (RemoveFromCart) isAction()          {}
func (UpdateQuantity) isAction()          {}
func (ClearCart) isAction()               {}
func (ToggleCheckout) isAction()          {}
func (CompleteTransaction) isAction()     {}
func (SetCurrentTransactionID) isAction() {}

// reduce is the pure transition function. It never mutates its input: slices
// are copied before modification so snapshots handed out earlier stay valid.
func reduce(s State, a Action) State {
	switch act := a.(type) {
	case SetProducts:
		s.Products = act.Products
	case SetTransactions:
		s.Transactions = act.Transactions
	case AddToCart:
		s.Cart = addItem(s.Cart, act.Product)
	case RemoveFromCart:
		cart := make([]dto.CartItemView, 0, len(s.Cart))
		for _, item := range s.Cart {
			if item.ID != act.ProductID {
				cart = append(cart, item)
			}
		}
		s.Cart = cart
	case UpdateQuantity:
		cart := make([]dto.CartItemView, len(s.Cart))
		copy(cart, s.Cart)
		for i := range cart {
			if cart[i].ID == act.ProductID {
				cart[i].Quantity = act.Quantity
			}
		}
		s.Cart = cart
	case ClearCart:
		s.Cart = nil
	case ToggleCheckout:
		s.CheckoutOpen = act.Open
	case CompleteTransaction:
		txs := make([]dto.TransactionView, 0, len(s.Transactions)+1)
		txs = append(txs, act.Transaction)
		txs = append(txs, s.Transactions...)
		s.Transactions = txs
		s.Cart = nil
	case SetCurrentTransactionID:
		s.CurrentTransactionID = act.ID
	}
	return s
}

func addItem(cart []dto.CartItemView, p model.Product) []dto.CartItemView {
	next := make([]dto.CartItemView, len(cart))
	copy(next, cart)
	for i := range next {
		if next[i].ID == p.ID.String() {
			next[i].Quantity++
			return next
		}
	}
	return append(next, dto.CartItemView{
		ID:       p.ID.String(),
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
		Image:    p.Image,
		Stock:    p.Stock,
		Quantity: 1,
	})
}
