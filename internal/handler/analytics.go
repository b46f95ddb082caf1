package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DvineConqueror/GroceryStorePOS/internal/analytics"
	"github.com/DvineConqueror/GroceryStorePOS/internal/pos"
)

// AnalyticsHandler derives sales views from the POS store's in-memory
// transaction list. Each request snapshots "now" exactly once and hands it
// to every aggregation.
type AnalyticsHandler struct{ store *pos.Store }

func NewAnalyticsHandler(store *pos.Store) *AnalyticsHandler {
	return &AnalyticsHandler{store: store}
}

// Summary godoc
// @Summary      Total sales, transaction count and average value
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        range query string false "today | week | month | all"
// @Success      200 {object} dto.AnalyticsSummary
// @Router       /v1/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	frame := analytics.ParseTimeFrame(c.Query("range"))
	txs := h.store.Snapshot().Transactions
	c.JSON(http.StatusOK, analytics.Summary(txs, frame, time.Now()))
}

func (h *AnalyticsHandler) ByCategory(c *gin.Context) {
	frame := analytics.ParseTimeFrame(c.Query("range"))
	txs := h.store.Snapshot().Transactions
	c.JSON(http.StatusOK, analytics.SalesByCategory(txs, frame, time.Now()))
}

// ByDate ignores the range parameter: the daily series always covers the
// full history.
func (h *AnalyticsHandler) ByDate(c *gin.Context) {
	txs := h.store.Snapshot().Transactions
	c.JSON(http.StatusOK, analytics.SalesByDate(txs))
}

func (h *AnalyticsHandler) ByCashier(c *gin.Context) {
	txs := h.store.Snapshot().Transactions
	c.JSON(http.StatusOK, analytics.SalesByCashier(txs))
}
