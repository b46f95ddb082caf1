package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/DvineConqueror/GroceryStorePOS/internal/model"
	"github.com/DvineConqueror/GroceryStorePOS/internal/repository"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	users      map[uuid.UUID]*model.User
	byEmail    map[string]*model.User
	createErr  error
	deletedIDs []uuid.UUID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:   make(map[uuid.UUID]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return errors.New("duplicate email")
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("not found")
	}
	delete(r.byEmail, u.Email)
	delete(r.users, id)
	r.deletedIDs = append(r.deletedIDs, id)
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

type stubProfileRepo struct {
	profiles  map[uuid.UUID]*model.Profile
	createErr error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[uuid.UUID]*model.Profile)}
}

func (r *stubProfileRepo) Create(_ context.Context, p *model.Profile) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.profiles[p.ID] = p
	return nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *p
	return &cp, nil
}

func (r *stubProfileRepo) FindNamesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string)
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			out[id] = p.FullName
		}
	}
	return out, nil
}

func (r *stubProfileRepo) UpdateSessionToken(_ context.Context, id uuid.UUID, token *string) error {
	p, ok := r.profiles[id]
	if !ok {
		return errors.New("not found")
	}
	p.ActiveSessionToken = token
	return nil
}

func (r *stubProfileRepo) Approve(_ context.Context, id uuid.UUID) error {
	p, ok := r.profiles[id]
	if !ok {
		return errors.New("not found")
	}
	p.Approved = true
	return nil
}

func (r *stubProfileRepo) ListPending(_ context.Context) ([]model.Profile, error) {
	out := make([]model.Profile, 0)
	for _, p := range r.profiles {
		if !p.Approved {
			out = append(out, *p)
		}
	}
	return out, nil
}

var _ repository.ProfileRepository = (*stubProfileRepo)(nil)

type stubProductRepo struct {
	products  map[uuid.UUID]*model.Product
	createErr error
	updateErr error

	decrements int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) seed(p model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = &p
	return &p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProductRepo) ListActive(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0)
	for _, p := range r.products {
		if !p.IsDeleted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.IsDeleted = true
	return nil
}

func (r *stubProductRepo) DecrementStock(_ context.Context, id uuid.UUID, amount int) error {
	r.decrements++
	p, ok := r.products[id]
	if !ok || p.Stock < amount {
		return repository.ErrInsufficientStock
	}
	p.Stock -= amount
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubTransactionRepo struct {
	headers   []*model.Transaction
	items     []model.TransactionItem
	headerErr error
	itemsErr  error
}

func (r *stubTransactionRepo) CreateHeader(_ context.Context, tx *model.Transaction) error {
	if r.headerErr != nil {
		return r.headerErr
	}
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	r.headers = append(r.headers, tx)
	return nil
}

func (r *stubTransactionRepo) CreateItems(_ context.Context, items []model.TransactionItem) error {
	if r.itemsErr != nil {
		return r.itemsErr
	}
	r.items = append(r.items, items...)
	return nil
}

func (r *stubTransactionRepo) ListWithItems(_ context.Context) ([]model.Transaction, error) {
	out := make([]model.Transaction, 0, len(r.headers))
	for i := len(r.headers) - 1; i >= 0; i-- {
		out = append(out, *r.headers[i])
	}
	return out, nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Transaction, error) {
	for _, tx := range r.headers {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, errors.New("not found")
}

var _ repository.TransactionRepository = (*stubTransactionRepo)(nil)
