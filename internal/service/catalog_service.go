package service

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/DvineConqueror/GroceryStorePOS/internal/dto"
	"github.com/DvineConqueror/GroceryStorePOS/internal/model"
	"github.com/DvineConqueror/GroceryStorePOS/internal/pos"
	"github.com/DvineConqueror/GroceryStorePOS/internal/repository"
)

// ImageStore uploads a product image and returns its public reference.
type ImageStore interface {
	SaveProductImage(r io.Reader) (string, error)
}

// CatalogService is the product data access path: fetch for the register,
// create/update/soft-delete for the admin screen. Fetches replace the POS
// store's product list wholesale.
type CatalogService interface {
	FetchProducts(ctx context.Context) ([]dto.ProductResponse, error)
	Create(ctx context.Context, form dto.ProductForm, image io.Reader) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, form dto.ProductForm, image io.Reader) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	repo   repository.ProductRepository
	store  *pos.Store
	images ImageStore
}

func NewCatalogService(repo repository.ProductRepository, store *pos.Store, images ImageStore) CatalogService {
	return &catalogService{repo: repo, store: store, images: images}
}

func (s *catalogService) FetchProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	s.store.Dispatch(pos.SetProducts{Products: products})

	out := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		out[i] = productResponse(&p)
	}
	return out, nil
}

// parseForm validates the text inputs before anything is written. Invalid
// numbers block the operation outright — no storage call is made.
func parseForm(form dto.ProductForm) (price decimal.Decimal, stock int, category string, err error) {
	price, err = decimal.NewFromString(form.Price)
	if err != nil || price.IsNegative() {
		return decimal.Zero, 0, "", errors.New("price must be a non-negative number")
	}
	stock, err = strconv.Atoi(form.Stock)
	if err != nil || stock < 0 {
		return decimal.Zero, 0, "", errors.New("stock must be a non-negative integer")
	}

	category = "Others"
	for _, c := range model.ProductCategories {
		if form.Category == c {
			category = c
			break
		}
	}
	return price, stock, category, nil
}

func (s *catalogService) Create(ctx context.Context, form dto.ProductForm, image io.Reader) (*dto.ProductResponse, error) {
	price, stock, category, err := parseForm(form)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		Name:     form.Name,
		Price:    price,
		Stock:    stock,
		Category: category,
	}

	// Image goes to object storage first; only the resulting public
	// reference is stored on the row.
	if image != nil {
		url, err := s.images.SaveProductImage(image)
		if err != nil {
			log.Error().Err(err).Msg("catalog: upload image")
			return nil, errors.New("failed to upload product image")
		}
		p.Image = &url
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productResponse(p)
	return &resp, nil
}

func (s *catalogService) Update(ctx context.Context, id uuid.UUID, form dto.ProductForm, image io.Reader) (*dto.ProductResponse, error) {
	price, stock, category, err := parseForm(form)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	p.Name = form.Name
	p.Price = price
	p.Stock = stock
	p.Category = category

	if image != nil {
		url, err := s.images.SaveProductImage(image)
		if err != nil {
			log.Error().Err(err).Msg("catalog: upload image")
			return nil, errors.New("failed to upload product image")
		}
		p.Image = &url
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := productResponse(p)
	return &resp, nil
}

// Delete soft-deletes: the row survives so historical transaction items keep
// resolving, it just disappears from catalog queries.
func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func productResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:       p.ID.String(),
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
		Stock:    p.Stock,
		Image:    p.Image,
	}
}
