package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VijayAsokkumar/VigilAI/internal/lookup"
)

func writeError(c *gin.Context, op, symbol string, err error) {
	switch lookup.KindOf(err) {
	case lookup.KindValidation:
		slog.Warn("invalid symbol", "op", op, "symbol", symbol, "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case lookup.KindNotFound:
		slog.Warn("no market data", "op", op, "symbol", symbol)
		c.JSON(http.StatusNotFound, ErrorResponse{Error: lookup.ErrStockDataNotFound.Error()})
	default:
		slog.Error("error fetching "+op, "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
