package pos

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Store owns the register state for the lifetime of the process. One store
// per register; this application runs a single register.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store { return &Store{} }

// Dispatch applies one action through the pure reducer. Actions dispatched
// from the same flow apply in dispatch order.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = reduce(s.state, a)
}

// Snapshot returns the current state. The reducer copies on write, so the
// returned slices are safe to read without holding the lock.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CalculateTotal recomputes Σ(price × quantity) over the cart on every call.
// Never cached: the cart is small and a stale total is worse than the loop.
func (s *Store) CalculateTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, item := range s.state.Cart {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
