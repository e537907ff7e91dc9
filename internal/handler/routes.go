package handler

import "github.com/gin-gonic/gin"

// FrontendPrefix is the path prefix the dashboard uses for the same API.
const FrontendPrefix = "/stocks"

func RegisterRoutes(r *gin.Engine, stocks *StockHandler, news *NewsHandler) {
	r.GET("/health", GetHealth)

	registerAPI(r, stocks, news)
	registerAPI(r.Group(FrontendPrefix), stocks, news)
}

func registerAPI(r gin.IRoutes, stocks *StockHandler, news *NewsHandler) {
	r.GET("/api/stock/:symbol/", stocks.GetQuote)
	r.GET("/api/news/:symbol/", news.GetCompanyNews)
	r.GET("/api/industry-news/:symbol/", news.GetIndustryNews)
	r.GET("/api/performance/:symbol/", stocks.GetPerformance)
}
