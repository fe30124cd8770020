// internal/adapters/gemini/client.go
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_adlab/internal/adapters/observability"
	"hotel_adlab/internal/domain"
)

// Client performs single generateContent calls. Retries live in Retrying.
type Client struct {
	base  string
	model string
	hc    *http.Client
	key   string
	rl    *rate.Limiter
}

func New(base, model, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		model: model,
		hc:    &http.Client{Timeout: 20 * time.Second},
		key:   key,
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// StatusError is a non-2xx answer from the endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini: bad status %d: %s", e.Code, e.Body)
}

// Retryable reports whether the status is worth another attempt (429 and 5xx).
func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// ---- wire types ----

type generateRequest struct {
	Contents         []domain.Content `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   responseSchema `json:"responseSchema"`
}

type responseSchema struct {
	Type             string                    `json:"type"`
	Properties       map[string]schemaProperty `json:"properties"`
	PropertyOrdering []string                  `json:"propertyOrdering"`
}

type schemaProperty struct {
	Type string `json:"type"`
}

// recommendationRequest asks for {recommendedHotelId, reasoning} as structured JSON.
func recommendationRequest(prompt string) generateRequest {
	return generateRequest{
		Contents: []domain.Content{{Role: "user", Parts: []domain.Part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: responseSchema{
				Type: "OBJECT",
				Properties: map[string]schemaProperty{
					"recommendedHotelId": {Type: "INTEGER"},
					"reasoning":          {Type: "STRING"},
				},
				PropertyOrdering: []string{"recommendedHotelId", "reasoning"},
			},
		},
	}
}

// GenerateContent posts prompt as a single user turn and decodes the response envelope.
// Content validation is left to the caller.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (domain.Envelope, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.Envelope{}, err
	}

	body, err := json.Marshal(recommendationRequest(prompt))
	if err != nil {
		return domain.Envelope{}, err
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", c.base, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.Envelope{}, err
	}
	// header rather than query string so the key never shows up in logged URLs
	req.Header.Set("x-goog-api-key", c.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hotel-adlab/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("gemini", "generateContent", 0, time.Since(start))
		if ctx.Err() != nil {
			return domain.Envelope{}, ctx.Err()
		}
		return domain.Envelope{}, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("gemini", "generateContent", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.Envelope{}, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var env domain.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return domain.Envelope{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponseEnvelope, err)
	}
	return env, nil
}

// IsRetryable classifies an error returned by GenerateContent.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, domain.ErrMalformedResponseEnvelope) || errors.Is(err, ErrDisabled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	// transport level failure
	return true
}

var ErrDisabled = errors.New("gemini disabled")

// Disabled stands in for the client when no credential is configured; every
// call fails the way an unreachable endpoint would, without retries.
type Disabled struct{ Reason error }

func (d Disabled) GenerateContent(context.Context, string) (domain.Envelope, error) {
	return domain.Envelope{}, fmt.Errorf("%w: %v", ErrDisabled, d.Reason)
}
