package news

import (
	"context"
	"encoding/json"
	"net/http"
)

const StatusOK = "ok"

// SearchResult is the provider envelope. Articles are kept as raw JSON so
// they can be passed through without reshaping.
type SearchResult struct {
	Status       string
	TotalResults int
	Articles     []json.RawMessage
	Code         string
	Message      string
}

type SearchClient interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
	Name() string
}

// HTTPClient describes an HTTP client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
