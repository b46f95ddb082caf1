package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DvineConqueror/GroceryStorePOS/internal/apierror"
	"github.com/DvineConqueror/GroceryStorePOS/internal/dto"
	"github.com/DvineConqueror/GroceryStorePOS/internal/service"
)

type ProductsHandler struct{ svc service.CatalogService }

func NewProductsHandler(svc service.CatalogService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// List godoc
// @Summary      Catalog — all products not soft-deleted
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ProductResponse
// @Router       /v1/products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	products, err := h.svc.FetchProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load products"))
		return
	}
	c.JSON(http.StatusOK, products)
}

// bindProductForm pulls the multipart fields and the optional image file.
// The image reader is nil when no file was attached.
func bindProductForm(c *gin.Context) (dto.ProductForm, io.ReadCloser, bool) {
	var form dto.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid form: "+err.Error()))
		return form, nil, false
	}
	if err := validate.Struct(form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Name, price and stock are required"))
		return form, nil, false
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		return form, nil, true // no image attached
	}
	return form, file, true
}

func (h *ProductsHandler) Create(c *gin.Context) {
	form, image, ok := bindProductForm(c)
	if !ok {
		return
	}
	var reader io.Reader
	if image != nil {
		defer image.Close()
		reader = image
	}

	resp, err := h.svc.Create(c.Request.Context(), form, reader)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}
	form, image, ok := bindProductForm(c)
	if !ok {
		return
	}
	var reader io.Reader
	if image != nil {
		defer image.Close()
		reader = image
	}

	resp, err := h.svc.Update(c.Request.Context(), id, form, reader)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete soft-deletes a product; the row stays for history.
func (h *ProductsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Failed to delete product"))
		return
	}
	c.Status(http.StatusNoContent)
}
