package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"signpubliq/internal/config"
	"signpubliq/internal/infrastructure/secure"
)

const maxBodyLogLength = 500 // Maximum characters to log for body

type HTTPClient interface {
	// Get performs a GET request against the backend. token may be
	// empty for unauthenticated endpoints.
	Get(ctx context.Context, path, token string, result interface{}) error
	// Post performs a POST request with the body wrapped through the
	// transport codec.
	Post(ctx context.Context, path, token string, body, result interface{}) error
}

// payloadEnvelope is the wire form both directions: the actual
// payload rides encoded under a single "data" field.
type payloadEnvelope struct {
	Data string `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type httpClient struct {
	client  *http.Client
	baseURL string
	codec   *secure.Codec
	logger  *zap.Logger
}

func NewHTTPClient(cfg *config.Config, codec *secure.Codec, logger *zap.Logger) HTTPClient {
	return &httpClient{
		client: &http.Client{
			Timeout: cfg.Backend.Timeout,
		},
		baseURL: cfg.Backend.BaseURL,
		codec:   codec,
		logger:  logger,
	}
}

func (c *httpClient) Get(ctx context.Context, path, token string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, token, nil, result)
}

func (c *httpClient) Post(ctx context.Context, path, token string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, token, body, result)
}

func (c *httpClient) do(ctx context.Context, method, path, token string, body, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		encoded, err := c.codec.Encrypt(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		wrapped, err := json.Marshal(payloadEnvelope{Data: encoded})
		if err != nil {
			return fmt.Errorf("failed to wrap request body: %w", err)
		}
		reqBody = bytes.NewReader(wrapped)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("Backend request",
		zap.String("method", method),
		zap.String("url", url),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("Backend response",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.String("body", truncateString(string(raw), maxBodyLogLength)),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp errorResponse
		if json.Unmarshal(raw, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("backend error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("backend error (%d)", resp.StatusCode)
	}

	if result == nil || len(raw) == 0 {
		return nil
	}

	// Responses normally carry their payload under "data"; fall back
	// to the plain form for endpoints that skip the codec.
	var env payloadEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != "" {
		return c.codec.Decrypt(env.Data, result)
	}
	return json.Unmarshal(raw, result)
}

// truncateString truncates a string if it exceeds maxLength
func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + fmt.Sprintf("... [truncated, total %d chars]", len(s))
}
