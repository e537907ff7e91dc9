package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	DateLayout       = "2006-01-02"
	PriceUnavailable = "N/A"
)

type QuoteResult struct {
	Symbol       string       `json:"symbol"`
	CurrentPrice CurrentPrice `json:"current_price"`
	Open         float64      `json:"open"`
	Close        float64      `json:"close"`
	High         float64      `json:"high"`
	Low          float64      `json:"low"`
	Volume       int64        `json:"volume"`
	Date         string       `json:"date"`
}

type PerformancePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// CurrentPrice encodes as a JSON number, or as "N/A" when the provider
// reported no price.
type CurrentPrice struct {
	Value float64
	Known bool
}

func PriceOf(v *float64) CurrentPrice {
	if v == nil {
		return CurrentPrice{}
	}
	return CurrentPrice{Value: *v, Known: true}
}

func (p CurrentPrice) String() string {
	if !p.Known {
		return PriceUnavailable
	}
	return strconv.FormatFloat(p.Value, 'f', -1, 64)
}

func (p CurrentPrice) MarshalJSON() ([]byte, error) {
	if !p.Known {
		return json.Marshal(PriceUnavailable)
	}
	return json.Marshal(p.Value)
}

func (p *CurrentPrice) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*p = CurrentPrice{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s != PriceUnavailable {
			return fmt.Errorf("current_price: unexpected string %q", s)
		}
		*p = CurrentPrice{}
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("current_price: %w", err)
	}
	*p = CurrentPrice{Value: v, Known: true}
	return nil
}
