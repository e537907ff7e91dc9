package provider

import (
	"fmt"
	"log/slog"

	"github.com/VijayAsokkumar/VigilAI/internal/config"
	"github.com/VijayAsokkumar/VigilAI/internal/httpx"
	"github.com/VijayAsokkumar/VigilAI/internal/lookup"
	"github.com/VijayAsokkumar/VigilAI/pkg/market"
	"github.com/VijayAsokkumar/VigilAI/pkg/news"
)

// NewLookup builds the lookup service with the providers selected by cfg,
// sharing one outbound HTTP client.
func NewLookup(cfg *config.Config) (*lookup.Service, error) {
	client := httpx.New(cfg.RequestTimeout())

	marketClient, err := Market(cfg, client)
	if err != nil {
		return nil, err
	}
	newsClient := News(cfg, client)

	slog.Info("providers configured",
		"market", marketClient.Name(),
		"news", newsClient.Name(),
		"exchange_suffix", cfg.Market.ExchangeSuffix,
		"timeout", cfg.RequestTimeout().String(),
	)

	return lookup.NewService(marketClient, newsClient, lookup.Options{
		ExchangeSuffix: cfg.Market.ExchangeSuffix,
		IndustryQuery:  cfg.News.IndustryQuery,
	}), nil
}

func Market(cfg *config.Config, client *httpx.Client) (market.Client, error) {
	switch cfg.Market.Provider {
	case config.ProviderYahoo:
		return market.NewYahooClient(
			market.WithBaseURL(cfg.Market.YahooBaseURL),
			market.WithHTTPClient(client),
		), nil
	case config.ProviderFinnhub:
		return market.NewFinnhubClient(cfg.Market.FinnhubAPIKey, client.HTTP), nil
	default:
		return nil, fmt.Errorf("unknown market provider %q", cfg.Market.Provider)
	}
}

func News(cfg *config.Config, client news.HTTPClient) news.SearchClient {
	if cfg.News.APIKey == "" {
		slog.Warn("NEWS_API_KEY is not set; news lookups will fail upstream")
	}
	return news.NewNewsAPIClient(cfg.News.APIKey, cfg.News.BaseURL, client)
}
