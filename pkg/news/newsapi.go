package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultNewsAPIBaseURL = "https://newsapi.org"

type NewsAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
}

// NewNewsAPIClient builds a client for the NewsAPI "everything" search. An
// empty baseURL selects the public endpoint; a nil httpClient gets a 30s
// timeout client.
func NewNewsAPIClient(apiKey, baseURL string, httpClient HTTPClient) *NewsAPIClient {
	if baseURL == "" {
		baseURL = DefaultNewsAPIBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &NewsAPIClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

// Search returns the provider envelope as-is. Error envelopes come back with
// a non-ok Status and a nil error; only transport and decoding failures are
// returned as errors.
func (c *NewsAPIClient) Search(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)

	reqURL := fmt.Sprintf("%s/v2/everything?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("newsapi read: %w", err)
	}

	var raw newsAPIResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("newsapi: unexpected status code %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}
	if raw.Status == "" {
		return nil, fmt.Errorf("newsapi: response without status (HTTP %d)", resp.StatusCode)
	}

	articles := raw.Articles
	if articles == nil {
		articles = []json.RawMessage{}
	}

	return &SearchResult{
		Status:       raw.Status,
		TotalResults: raw.TotalResults,
		Articles:     articles,
		Code:         raw.Code,
		Message:      raw.Message,
	}, nil
}

type newsAPIResponse struct {
	Status       string            `json:"status"`
	TotalResults int               `json:"totalResults"`
	Articles     []json.RawMessage `json:"articles"`
	Code         string            `json:"code"`
	Message      string            `json:"message"`
}
