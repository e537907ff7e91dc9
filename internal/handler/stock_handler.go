package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VijayAsokkumar/VigilAI/internal/model"
)

type StockLookup interface {
	Quote(ctx context.Context, symbol string) (*model.QuoteResult, error)
	Performance(ctx context.Context, symbol string) ([]model.PerformancePoint, error)
}

type StockHandler struct {
	lookup StockLookup
}

func NewStockHandler(lookup StockLookup) *StockHandler {
	return &StockHandler{lookup: lookup}
}

func (h *StockHandler) GetQuote(c *gin.Context) {
	symbol := c.Param("symbol")

	quote, err := h.lookup.Quote(c.Request.Context(), symbol)
	if err != nil {
		writeError(c, "quote", symbol, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *StockHandler) GetPerformance(c *gin.Context) {
	symbol := c.Param("symbol")

	points, err := h.lookup.Performance(c.Request.Context(), symbol)
	if err != nil {
		writeError(c, "performance", symbol, err)
		return
	}
	if points == nil {
		points = []model.PerformancePoint{}
	}

	c.JSON(http.StatusOK, points)
}
