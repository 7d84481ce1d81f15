package enrichment

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	coherecore "github.com/cohere-ai/cohere-go/v2/core"

	"healthfeed/config"
)

const defaultCohereModel = "command-r-08-2024"

// CohereGenerator implements TextGenerator using the Cohere Chat API.
// SDK: github.com/cohere-ai/cohere-go/v2
type CohereGenerator struct {
	client *cohereclient.Client
	model  string
}

// NewCohereGenerator returns a generator for the given API key. An empty
// model selects the default chat model.
func NewCohereGenerator(apiKey, model string) *CohereGenerator {
	if model == "" {
		model = defaultCohereModel
	}
	// Force HTTP/1.1 to avoid HTTP/2 protocol errors against the Cohere API
	httpClient := &http.Client{
		Timeout: config.GenerateTimeout,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereGenerator{client: client, model: model}
}

// Generate runs a single-turn completion bounded by the generation timeout.
// All failures come back as *GenerateError.
func (g *CohereGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, config.GenerateTimeout)
	defer cancel()

	resp, err := g.client.Chat(cctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   cohere.String(g.model),
	})
	if err != nil {
		return "", &GenerateError{
			Op:          "cohere chat",
			RateLimited: isRateLimited(err),
			Err:         err,
		}
	}
	if resp == nil || resp.Text == "" {
		return "", &GenerateError{Op: "cohere chat", Err: errors.New("empty response")}
	}
	return resp.Text, nil
}

func isRateLimited(err error) bool {
	var tooMany *cohere.TooManyRequestsError
	if errors.As(err, &tooMany) {
		return true
	}
	var apiErr *coherecore.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}
