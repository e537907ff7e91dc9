package main

import (
	"log"
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/VijayAsokkumar/VigilAI/internal/config"
	"github.com/VijayAsokkumar/VigilAI/internal/handler"
	"github.com/VijayAsokkumar/VigilAI/internal/provider"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	svc, err := provider.NewLookup(cfg)
	if err != nil {
		log.Fatalf("error configuring providers: %v", err)
	}

	stockHandler := handler.NewStockHandler(svc)
	newsHandler := handler.NewNewsHandler(svc)

	r := gin.Default()

	allowedOrigins := cfg.AllowedOrigins()

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	handler.RegisterRoutes(r, stockHandler, newsHandler)

	slog.Info("starting server", "addr", cfg.Addr())

	err = r.Run(cfg.Addr())
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
