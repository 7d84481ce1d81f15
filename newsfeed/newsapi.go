package newsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"healthfeed/config"
	"healthfeed/types"
)

const defaultNewsAPIBaseURL = "https://newsapi.org/v2"

// NewsAPIClient fetches top headlines from newsapi.org.
// Endpoint: GET {base}/top-headlines?country=&category=&apiKey=
type NewsAPIClient struct {
	apiKey   string
	baseURL  string
	country  string
	category string
	client   *http.Client
}

// NewNewsAPIClient returns a client for the given API key, requesting US
// health headlines by default.
func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:   apiKey,
		baseURL:  defaultNewsAPIBaseURL,
		country:  "us",
		category: "health",
		client:   &http.Client{Timeout: config.FetchTimeout},
	}
}

// FetchTopHeadlines retrieves the current headline set. A non-ok upstream
// status is reported as an error.
func (c *NewsAPIClient) FetchTopHeadlines(ctx context.Context) ([]types.RawArticle, error) {
	params := url.Values{}
	params.Set("country", c.country)
	params.Set("category", c.category)
	params.Set("apiKey", c.apiKey)

	endpoint := fmt.Sprintf("%s/top-headlines?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed struct {
		Status   string             `json:"status"`
		Message  string             `json:"message"`
		Articles []types.RawArticle `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("newsapi decode failed: %w", err)
	}

	if parsed.Status != "ok" {
		if parsed.Message == "" {
			parsed.Message = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("newsapi error: %s", parsed.Message)
	}

	return parsed.Articles, nil
}
