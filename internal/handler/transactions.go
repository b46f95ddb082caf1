package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DvineConqueror/GroceryStorePOS/internal/apierror"
	"github.com/DvineConqueror/GroceryStorePOS/internal/service"
)

type TransactionsHandler struct{ svc service.TransactionService }

func NewTransactionsHandler(svc service.TransactionService) *TransactionsHandler {
	return &TransactionsHandler{svc: svc}
}

// List godoc
// @Summary      Transaction history, newest first
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.TransactionView
// @Router       /v1/transactions [get]
func (h *TransactionsHandler) List(c *gin.Context) {
	txs, err := h.svc.FetchTransactions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load transactions"))
		return
	}
	c.JSON(http.StatusOK, txs)
}

// Receipt serves the transaction's PDF receipt, rendering it on demand when
// the background job has not finished yet.
func (h *TransactionsHandler) Receipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid transaction id"))
		return
	}
	path, err := h.svc.ReceiptFile(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Receipt not found"))
		return
	}
	c.FileAttachment(path, "receipt.pdf")
}
