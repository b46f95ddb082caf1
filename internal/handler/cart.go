package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DvineConqueror/GroceryStorePOS/internal/apierror"
	"github.com/DvineConqueror/GroceryStorePOS/internal/dto"
	"github.com/DvineConqueror/GroceryStorePOS/internal/middleware"
	"github.com/DvineConqueror/GroceryStorePOS/internal/pos"
	"github.com/DvineConqueror/GroceryStorePOS/internal/repository"
	"github.com/DvineConqueror/GroceryStorePOS/internal/service"
)

// CartHandler drives the register's cart through the POS store's action set.
type CartHandler struct {
	store    *pos.Store
	products repository.ProductRepository
	checkout service.CheckoutService
}

func NewCartHandler(store *pos.Store, products repository.ProductRepository, checkout service.CheckoutService) *CartHandler {
	return &CartHandler{store: store, products: products, checkout: checkout}
}

func (h *CartHandler) cartResponse() dto.CartResponse {
	state := h.store.Snapshot()
	return dto.CartResponse{
		Items:        state.Cart,
		Total:        h.store.CalculateTotal(),
		CheckoutOpen: state.CheckoutOpen,
	}
}

func (h *CartHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartResponse())
}

// AddItem adds one unit; a product already in the cart gets its quantity
// incremented instead of a second line.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddToCartRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}

	product, err := h.products.FindByID(c.Request.Context(), id)
	if err != nil || product.IsDeleted {
		c.JSON(http.StatusNotFound, apierror.New("Product not found"))
		return
	}

	h.store.Dispatch(pos.AddToCart{Product: *product})
	c.JSON(http.StatusOK, h.cartResponse())
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req dto.UpdateQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.store.Dispatch(pos.UpdateQuantity{ProductID: c.Param("id"), Quantity: req.Quantity})
	c.JSON(http.StatusOK, h.cartResponse())
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	h.store.Dispatch(pos.RemoveFromCart{ProductID: c.Param("id")})
	c.JSON(http.StatusOK, h.cartResponse())
}

func (h *CartHandler) Clear(c *gin.Context) {
	h.store.Dispatch(pos.ClearCart{})
	c.JSON(http.StatusOK, h.cartResponse())
}

// ToggleCheckout shows or hides the checkout dialog. The refusal to open on
// an empty cart lives here, on the calling side — the reducer itself does
// not guard it.
func (h *CartHandler) ToggleCheckout(c *gin.Context) {
	var req dto.ToggleCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return
	}
	if req.Open && len(h.store.Snapshot().Cart) == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Cart is empty"))
		return
	}
	h.store.Dispatch(pos.ToggleCheckout{Open: req.Open})
	c.JSON(http.StatusOK, h.cartResponse())
}

// Complete tenders cash against the cart and, when persistence succeeds,
// returns the finished transaction.
func (h *CartHandler) Complete(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	cashierID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid token subject"))
		return
	}

	view, err := h.checkout.Complete(c.Request.Context(), cashierID, req)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, service.ErrEmptyCart) &&
			!errors.Is(err, service.ErrInsufficientCash) &&
			!errors.Is(err, service.ErrCashOverLimit) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, view)
}
