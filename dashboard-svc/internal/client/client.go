package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"foodie-dashboard/dashboard-svc/internal/domain"
)

// maxBodyBytes bounds a single response; chart images are the largest bodies.
const maxBodyBytes = 16 << 20

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseURL string
}

type Client struct {
	config Config
	client HTTPClient
	logger *slog.Logger
}

func New(config Config, client HTTPClient, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		config: config,
		client: client,
		logger: logger,
	}
}

// Fetch issues req and decodes the data member of the response envelope into
// T. Every failure is one of *TransportError, *APIError or *ParseError.
func Fetch[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var zero T

	env, err := c.do(ctx, req)
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return zero, &ParseError{Err: err}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, req Request) (domain.Envelope, error) {
	var env domain.Envelope

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL(c.config.BaseURL), nil)
	if err != nil {
		return env, &TransportError{Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Debug("api request failed", "path", req.Path, "error", err)
		return env, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return env, &TransportError{Err: err}
	}

	decodeErr := json.Unmarshal(body, &env)
	meta := env.Metadata()
	c.logger.Debug("api response", "path", req.Path, "status", resp.StatusCode,
		"request_id", meta.RequestID, "processing_time_ms", meta.ProcessingTimeMS)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && env.Error != nil && *env.Error != "" {
			return env, &APIError{Status: resp.StatusCode, Message: *env.Error}
		}
		return env, &APIError{Status: resp.StatusCode, Message: failedStatusMessage(resp.StatusCode)}
	}

	if decodeErr != nil {
		return env, &ParseError{Err: decodeErr}
	}
	if env.Success == nil {
		return env, &ParseError{Err: errMissingSuccess}
	}
	if !*env.Success {
		if env.Error != nil && *env.Error != "" {
			return env, &APIError{Status: resp.StatusCode, Message: *env.Error}
		}
		return env, &APIError{Status: resp.StatusCode, Message: failedStatusMessage(resp.StatusCode)}
	}
	if env.Error != nil {
		return env, &ParseError{Err: errDataAndError}
	}
	if !env.HasData() {
		return env, &ParseError{Err: errMissingData}
	}
	return env, nil
}

// Health probes the backend health endpoint.
func (c *Client) Health(ctx context.Context) (domain.Health, error) {
	return Fetch[domain.Health](ctx, c, HealthRequest())
}
