package lookup

import (
	"errors"
	"strings"
)

var (
	ErrEmptySymbol = errors.New("symbol is required")
	ErrSymbolSlash = errors.New("symbol must not contain '/'")
)

// checkTicker rejects symbols that cannot be sent as a single path segment to
// the market provider. Anything else goes upstream verbatim; unknown tickers
// come back as no data.
func checkTicker(symbol string) error {
	if symbol == "" {
		return ErrEmptySymbol
	}
	if strings.Contains(symbol, "/") {
		return ErrSymbolSlash
	}
	return nil
}
