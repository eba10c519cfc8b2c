// Package api talks to the jobs backend over its JSON REST contract.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const DefaultBaseURL = "http://localhost:5000"

const genericFailure = "Request failed"

// Doer sends a single HTTP request. *network.Client satisfies it.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

// TokenSource yields the bearer credential of the current session, or "".
type TokenSource interface {
	Token() string
}

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type Client struct {
	doer    Doer
	baseURL string
	tokens  TokenSource
	logger  zerolog.Logger
}

func New(doer Doer, baseURL string, tokens TokenSource, logger zerolog.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		doer:    doer,
		baseURL: baseURL,
		tokens:  tokens,
		logger:  logger,
	}
}

// BaseURL returns the backend root every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request sends body as JSON to path and decodes the response into out.
// The body is read as text first; a body that is not JSON is kept as a raw string.
func (c *Client) Request(ctx context.Context, method, path string, body any, out any) error {
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if s, ok := out.(*string); ok {
		*s = string(raw)
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := fhttp.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		c.logger.Debug().
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Err(err).
			Msg("request failed")
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	return raw, nil
}

// errorMessage picks the error text from a failed response body:
// an "error" field, then a "message" field, then the raw text.
func errorMessage(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return genericFailure
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return text
	}

	switch value := decoded.(type) {
	case map[string]any:
		for _, key := range []string{"error", "message"} {
			if msg, ok := value[key].(string); ok && strings.TrimSpace(msg) != "" {
				return msg
			}
		}
		return genericFailure
	case string:
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return genericFailure
}
