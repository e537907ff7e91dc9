package market

import (
	"context"
	"fmt"
	"time"
)

// Periods accepted by History.
const (
	Period1d  = "1d"
	Period5d  = "5d"
	Period1mo = "1mo"
	Period3mo = "3mo"
	Period6mo = "6mo"
	Period1y  = "1y"
)

// DayRecord is one exchange session (OHLCV). Time is the session start in the
// exchange's local timezone when the provider reports one.
type DayRecord struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Profile is descriptive and quote metadata for an issuer, reported separately
// from trading history. Price is nil when the provider has no current price.
type Profile struct {
	Symbol   string
	Name     string
	Currency string
	Exchange string
	Price    *float64
}

// Client is a market-data provider. Symbols are provider symbols, exchange
// suffix included.
type Client interface {
	Name() string
	// LatestDay returns the most recent trading session, or nil when the
	// provider has no trading data for the symbol.
	LatestDay(ctx context.Context, symbol string) (*DayRecord, error)
	// History returns daily sessions over period in chronological order.
	History(ctx context.Context, symbol, period string) ([]DayRecord, error)
	Profile(ctx context.Context, symbol string) (*Profile, error)
}

func periodStart(now time.Time, period string) (time.Time, error) {
	switch period {
	case Period1d:
		return now.AddDate(0, 0, -1), nil
	case Period5d:
		return now.AddDate(0, 0, -5), nil
	case Period1mo:
		return now.AddDate(0, -1, 0), nil
	case Period3mo:
		return now.AddDate(0, -3, 0), nil
	case Period6mo:
		return now.AddDate(0, -6, 0), nil
	case Period1y:
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported period %q", period)
	}
}
