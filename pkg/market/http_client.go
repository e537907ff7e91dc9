package market

import "net/http"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=market_test -destination=mock_http_client_test.go -source=http_client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
