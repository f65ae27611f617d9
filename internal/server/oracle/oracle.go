// Package oracle wraps the external text-generation service. The upstream
// is treated as an untrusted, latency-variable oracle that answers prompts
// with free text; callers parse it leniently and fall back to hardcoded
// defaults on any failure, so a broken or absent upstream never surfaces as
// a client-facing error.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client answers a prompt with the oracle's raw text reply.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNoAPIKey is returned when the adapter is configured without a key;
// AI features then run permanently on their fallbacks.
var ErrNoAPIKey = errors.New("oracle: no api key configured")

// DefaultTimeout bounds a single oracle call so a hung upstream cannot hang
// the request that triggered it.
const DefaultTimeout = 10 * time.Second

// HTTPClient talks to a Gemini-style generateContent endpoint.
type HTTPClient struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient constructs an HTTPClient. timeout <= 0 falls back to
// DefaultTimeout.
func NewHTTPClient(baseURL, model, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and concatenates the text parts of the first
// candidate. Any transport, status or decode problem is returned as an
// error for the caller to translate into its fallback.
func (c *HTTPClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("oracle call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("oracle status %s: %s", resp.Status, string(b))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 {
		return "", errors.New("oracle returned no candidates")
	}

	var text string
	for _, p := range decoded.Candidates[0].Content.Parts {
		text += p.Text
	}
	return text, nil
}
