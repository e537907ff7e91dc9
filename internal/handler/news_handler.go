package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VijayAsokkumar/VigilAI/internal/model"
)

type NewsLookup interface {
	CompanyNews(ctx context.Context, symbol string) ([]model.NewsArticle, error)
	IndustryNews(ctx context.Context, symbol string) ([]model.NewsArticle, error)
}

type NewsHandler struct {
	lookup NewsLookup
}

func NewNewsHandler(lookup NewsLookup) *NewsHandler {
	return &NewsHandler{lookup: lookup}
}

func (h *NewsHandler) GetCompanyNews(c *gin.Context) {
	symbol := c.Param("symbol")

	articles, err := h.lookup.CompanyNews(c.Request.Context(), symbol)
	if err != nil {
		writeError(c, "company news", symbol, err)
		return
	}

	c.JSON(http.StatusOK, nonNil(articles))
}

func (h *NewsHandler) GetIndustryNews(c *gin.Context) {
	symbol := c.Param("symbol")

	articles, err := h.lookup.IndustryNews(c.Request.Context(), symbol)
	if err != nil {
		writeError(c, "industry news", symbol, err)
		return
	}

	c.JSON(http.StatusOK, nonNil(articles))
}

func nonNil(articles []model.NewsArticle) []model.NewsArticle {
	if articles == nil {
		return []model.NewsArticle{}
	}
	return articles
}
