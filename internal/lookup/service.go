package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/VijayAsokkumar/VigilAI/internal/model"
	"github.com/VijayAsokkumar/VigilAI/pkg/market"
	"github.com/VijayAsokkumar/VigilAI/pkg/news"
)

const (
	DefaultExchangeSuffix = ".NS"
	DefaultIndustryQuery  = "Information Technology"

	performancePeriod = market.Period6mo
)

type Options struct {
	// ExchangeSuffix is appended to every symbol sent to the market provider.
	ExchangeSuffix string
	// IndustryQuery is the search term used by IndustryNews.
	IndustryQuery string
}

type Service struct {
	market market.Client
	news   news.SearchClient
	opts   Options
}

func NewService(marketClient market.Client, newsClient news.SearchClient, opts Options) *Service {
	if opts.IndustryQuery == "" {
		opts.IndustryQuery = DefaultIndustryQuery
	}
	return &Service{market: marketClient, news: newsClient, opts: opts}
}

// Quote reports the most recent trading day for symbol. The profile is only
// requested once a trading day exists.
func (s *Service) Quote(ctx context.Context, symbol string) (*model.QuoteResult, error) {
	const op = "quote"

	if err := checkTicker(symbol); err != nil {
		return nil, newError(KindValidation, op, symbol, err)
	}
	ticker := s.ticker(symbol)

	day, err := s.market.LatestDay(ctx, ticker)
	if err != nil {
		return nil, newError(KindUpstream, op, symbol, fmt.Errorf("%s latest day %s: %w", s.market.Name(), ticker, err))
	}
	if day == nil {
		return nil, newError(KindNotFound, op, symbol, ErrStockDataNotFound)
	}

	profile, err := s.market.Profile(ctx, ticker)
	if err != nil {
		return nil, newError(KindUpstream, op, symbol, fmt.Errorf("%s profile %s: %w", s.market.Name(), ticker, err))
	}

	var price *float64
	if profile != nil {
		price = profile.Price
	}

	return &model.QuoteResult{
		Symbol:       symbol,
		CurrentPrice: model.PriceOf(price),
		Open:         day.Open,
		Close:        day.Close,
		High:         day.High,
		Low:          day.Low,
		Volume:       day.Volume,
		Date:         day.Time.Format(model.DateLayout),
	}, nil
}

// CompanyNews searches news using the symbol verbatim as a free-text query.
func (s *Service) CompanyNews(ctx context.Context, symbol string) ([]model.NewsArticle, error) {
	return s.search(ctx, "company news", symbol, symbol)
}

// IndustryNews searches news for the configured industry term. The symbol
// does not influence the query.
func (s *Service) IndustryNews(ctx context.Context, symbol string) ([]model.NewsArticle, error) {
	slog.Debug("industry news lookup", "symbol", symbol, "query", s.opts.IndustryQuery)
	return s.search(ctx, "industry news", symbol, s.opts.IndustryQuery)
}

// Performance returns closing prices over the trailing six months. No history
// is an empty series, not an error.
func (s *Service) Performance(ctx context.Context, symbol string) ([]model.PerformancePoint, error) {
	const op = "performance"

	if err := checkTicker(symbol); err != nil {
		return nil, newError(KindValidation, op, symbol, err)
	}
	ticker := s.ticker(symbol)

	records, err := s.market.History(ctx, ticker, performancePeriod)
	if err != nil {
		return nil, newError(KindUpstream, op, symbol, fmt.Errorf("%s history %s: %w", s.market.Name(), ticker, err))
	}

	points := make([]model.PerformancePoint, 0, len(records))
	for _, r := range records {
		points = append(points, model.PerformancePoint{
			Date:  r.Time.Format(model.DateLayout),
			Price: r.Close,
		})
	}
	return points, nil
}

func (s *Service) search(ctx context.Context, op, sym, query string) ([]model.NewsArticle, error) {
	res, err := s.news.Search(ctx, query)
	if err != nil {
		return nil, newError(KindUpstream, op, sym, fmt.Errorf("%s search: %w", s.news.Name(), err))
	}
	if res.Status != news.StatusOK {
		return nil, newError(KindUpstream, op, sym, statusError(s.news.Name(), res))
	}

	articles := make([]model.NewsArticle, 0, len(res.Articles))
	for _, a := range res.Articles {
		articles = append(articles, json.RawMessage(a))
	}
	return articles, nil
}

func (s *Service) ticker(sym string) string {
	return sym + s.opts.ExchangeSuffix
}

func statusError(provider string, res *news.SearchResult) error {
	if res.Message != "" {
		return fmt.Errorf("%s returned status %q: %s", provider, res.Status, res.Message)
	}
	return fmt.Errorf("%s returned status %q", provider, res.Status)
}
