package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"
)

const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooClient reads the Yahoo Finance chart API.
type YahooClient struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

// YahooClientOption is a configuration option for the Yahoo client.
type YahooClientOption func(*YahooClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) YahooClientOption {
	return func(c *YahooClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) YahooClientOption {
	return func(c *YahooClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) YahooClientOption {
	return func(c *YahooClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewYahooClient creates a new Yahoo Finance chart API client.
func NewYahooClient(options ...YahooClientOption) *YahooClient {
	c := &YahooClient{
		baseURL:    DefaultYahooBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *YahooClient) Name() string {
	return "Yahoo"
}

// LatestDay returns the last session of a one-day chart.
func (c *YahooClient) LatestDay(ctx context.Context, symbol string) (*DayRecord, error) {
	result, err := c.chart(ctx, symbol, Period1d)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	records, err := result.records()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[len(records)-1], nil
}

func (c *YahooClient) History(ctx context.Context, symbol, period string) ([]DayRecord, error) {
	if _, err := periodStart(time.Now(), period); err != nil {
		return nil, err
	}

	result, err := c.chart(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return []DayRecord{}, nil
	}
	return result.records()
}

// Profile reads the chart meta block, which carries the issuer name, currency
// and regular market price.
func (c *YahooClient) Profile(ctx context.Context, symbol string) (*Profile, error) {
	result, err := c.chart(ctx, symbol, Period1d)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return &Profile{Symbol: symbol}, nil
	}

	meta := result.Meta
	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	exchange := meta.FullExchangeName
	if exchange == "" {
		exchange = meta.ExchangeName
	}
	return &Profile{
		Symbol:   symbol,
		Name:     name,
		Currency: meta.Currency,
		Exchange: exchange,
		Price:    meta.RegularMarketPrice,
	}, nil
}

// chart fetches one chart result. A nil result with a nil error means the
// provider does not know the symbol.
func (c *YahooClient) chart(ctx context.Context, symbol, period string) (*yahooChartResult, error) {
	query := url.Values{}
	query.Set("range", period)
	query.Set("interval", "1d")

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusNotFound:
		return nil, nil

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("yahoo: unauthorized")

	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("yahoo: rate limited")

	default:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return nil, fmt.Errorf("yahoo: unexpected status code %d: %s", res.StatusCode, string(b))
	}

	var body yahooChartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding chart response: %w", err)
	}

	if e := body.Chart.Error; e != nil {
		if e.Code == "Not Found" {
			return nil, nil
		}
		return nil, fmt.Errorf("yahoo: %s: %s", e.Code, e.Description)
	}
	if len(body.Chart.Result) == 0 {
		return nil, nil
	}
	return &body.Chart.Result[0], nil
}

type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *yahooError        `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type yahooChartResult struct {
	Meta       yahooMeta `json:"meta"`
	Timestamp  []int64   `json:"timestamp"`
	Indicators struct {
		Quote []yahooQuote `json:"quote"`
	} `json:"indicators"`
}

type yahooMeta struct {
	Currency             string   `json:"currency"`
	Symbol               string   `json:"symbol"`
	ExchangeName         string   `json:"exchangeName"`
	FullExchangeName     string   `json:"fullExchangeName"`
	LongName             string   `json:"longName"`
	ShortName            string   `json:"shortName"`
	RegularMarketPrice   *float64 `json:"regularMarketPrice"`
	ExchangeTimezoneName string   `json:"exchangeTimezoneName"`
	GMTOffset            int      `json:"gmtoffset"`
}

// Yahoo reports missing bars (holidays, suspended sessions) as nulls.
type yahooQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

func (m yahooMeta) location() *time.Location {
	if m.ExchangeTimezoneName != "" {
		if loc, err := time.LoadLocation(m.ExchangeTimezoneName); err == nil {
			return loc
		}
	}
	if m.GMTOffset != 0 {
		return time.FixedZone(m.ExchangeTimezoneName, m.GMTOffset)
	}
	return time.UTC
}

// records zips the column arrays into sessions, skipping bars with no prices.
func (r *yahooChartResult) records() ([]DayRecord, error) {
	out := []DayRecord{}
	if len(r.Timestamp) == 0 {
		return out, nil
	}
	if len(r.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("decoding chart response: %d timestamps without quote indicators", len(r.Timestamp))
	}

	q := r.Indicators.Quote[0]
	loc := r.Meta.location()
	for i, ts := range r.Timestamp {
		o, h, l, c := at(q.Open, i), at(q.High, i), at(q.Low, i), at(q.Close, i)
		if o == nil || h == nil || l == nil || c == nil {
			continue
		}

		var volume int64
		if v := at(q.Volume, i); v != nil {
			volume = int64(math.Round(*v))
		}

		out = append(out, DayRecord{
			Time:   time.Unix(ts, 0).In(loc),
			Open:   *o,
			High:   *h,
			Low:    *l,
			Close:  *c,
			Volume: volume,
		})
	}
	return out, nil
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}
