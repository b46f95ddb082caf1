package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DvineConqueror/GroceryStorePOS/internal/apierror"
	"github.com/DvineConqueror/GroceryStorePOS/internal/service"
)

// AdminHandler exposes the cashier-approval flow. Routes are gated to the
// admin role by the router.
type AdminHandler struct{ svc service.AuthService }

func NewAdminHandler(svc service.AuthService) *AdminHandler { return &AdminHandler{svc: svc} }

func (h *AdminHandler) ListPending(c *gin.Context) {
	pending, err := h.svc.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list pending accounts"))
		return
	}
	c.JSON(http.StatusOK, pending)
}

func (h *AdminHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid profile id"))
		return
	}
	if err := h.svc.Approve(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Failed to approve account"))
		return
	}
	c.Status(http.StatusNoContent)
}
