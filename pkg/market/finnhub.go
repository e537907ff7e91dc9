package market

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// finnhubAPI is the slice of the Finnhub SDK this client depends on.
type finnhubAPI interface {
	Quote(ctx context.Context, symbol string) (finnhub.Quote, error)
	StockCandles(ctx context.Context, symbol, resolution string, from, to int64) (finnhub.StockCandles, error)
}

type finnhubService struct {
	client *finnhub.DefaultApiService
}

func (s finnhubService) Quote(ctx context.Context, symbol string) (finnhub.Quote, error) {
	res, _, err := s.client.Quote(ctx).Symbol(symbol).Execute()
	return res, err
}

func (s finnhubService) StockCandles(ctx context.Context, symbol, resolution string, from, to int64) (finnhub.StockCandles, error) {
	res, _, err := s.client.StockCandles(ctx).Symbol(symbol).Resolution(resolution).From(from).To(to).Execute()
	return res, err
}

// FinnhubClient serves daily candles and quotes from Finnhub.
type FinnhubClient struct {
	api finnhubAPI
	now func() time.Time
}

// NewFinnhubClient builds a client on the Finnhub SDK. A nil httpClient keeps
// the SDK default.
func NewFinnhubClient(apiKey string, httpClient *http.Client) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{api: finnhubService{client: client}, now: time.Now}
}

func (c *FinnhubClient) Name() string {
	return "FinnHub"
}

// LatestDay looks back over the last ten calendar days so weekends and
// holidays still leave a session to report.
func (c *FinnhubClient) LatestDay(ctx context.Context, symbol string) (*DayRecord, error) {
	now := c.now()
	records, err := c.candles(ctx, symbol, now.AddDate(0, 0, -10), now)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[len(records)-1], nil
}

func (c *FinnhubClient) History(ctx context.Context, symbol, period string) ([]DayRecord, error) {
	now := c.now()
	from, err := periodStart(now, period)
	if err != nil {
		return nil, err
	}
	return c.candles(ctx, symbol, from, now)
}

func (c *FinnhubClient) Profile(ctx context.Context, symbol string) (*Profile, error) {
	q, err := c.api.Quote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("finnhub quote: %w", err)
	}

	p := &Profile{Symbol: symbol}
	// Finnhub answers unknown symbols with an all-zero quote.
	if cur, ok := q.GetCOk(); ok && *cur != 0 {
		price := widen(*cur)
		p.Price = &price
	}
	return p, nil
}

func (c *FinnhubClient) candles(ctx context.Context, symbol string, from, to time.Time) ([]DayRecord, error) {
	res, err := c.api.StockCandles(ctx, symbol, "D", from.Unix(), to.Unix())
	if err != nil {
		return nil, fmt.Errorf("finnhub candles: %w", err)
	}

	out := []DayRecord{}
	if res.GetS() == "no_data" {
		return out, nil
	}

	ts, opens, highs, lows, closes, volumes := res.GetT(), res.GetO(), res.GetH(), res.GetL(), res.GetC(), res.GetV()
	if len(opens) != len(ts) || len(highs) != len(ts) || len(lows) != len(ts) || len(closes) != len(ts) {
		return nil, fmt.Errorf("finnhub candles: mismatched column lengths for %d timestamps", len(ts))
	}

	for i, t := range ts {
		var volume int64
		if i < len(volumes) {
			volume = int64(volumes[i])
		}
		out = append(out, DayRecord{
			Time:   time.Unix(t, 0).UTC(),
			Open:   widen(opens[i]),
			High:   widen(highs[i]),
			Low:    widen(lows[i]),
			Close:  widen(closes[i]),
			Volume: volume,
		})
	}
	return out, nil
}

// widen converts the SDK's float32 prices without exposing float32 noise
// (101.1 stays 101.1, not 101.09999847).
func widen(v float32) float64 {
	f, err := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'f', -1, 32), 64)
	if err != nil {
		return float64(v)
	}
	return f
}
