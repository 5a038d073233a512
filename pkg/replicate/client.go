package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxErrorSnippet bounds how much of a non-JSON provider response is carried
// in error messages.
const maxErrorSnippet = 500

// Client talks to the Replicate predictions API. Construct it once at
// process start and share it across requests; it holds no per-request state.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client, e.g. for tests or custom
// transport settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a provider client. The API token is mandatory; services
// running in mock mode should not construct a client at all.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIToken == "" {
		return nil, ErrMissingAPIToken
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: BaseURL is required", ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: Model is required", ErrInvalidConfig)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.MaxPollAttempts <= 0 {
		cfg.MaxPollAttempts = 60
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CreatePrediction submits a generation job against the configured model.
// The provider answers synchronously with a job descriptor that is then
// polled via Wait.
func (c *Client) CreatePrediction(ctx context.Context, input PredictionInput) (*Prediction, error) {
	body, err := json.Marshal(map[string]any{"input": input})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	url := fmt.Sprintf("%s/models/%s/predictions", c.cfg.BaseURL, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "Token "+c.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var prediction Prediction
	if err := json.Unmarshal(raw, &prediction); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, snippet(raw))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrCreateFailed, resp.StatusCode, snippet(raw))
	}
	if msg := prediction.ErrorMessage(); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrCreateFailed, msg)
	}
	if prediction.ID == "" {
		return nil, fmt.Errorf("%w: missing prediction id", ErrInvalidResponse)
	}

	return &prediction, nil
}

// GetPrediction fetches the current state of a job.
func (c *Client) GetPrediction(ctx context.Context, id string) (*Prediction, error) {
	url := fmt.Sprintf("%s/predictions/%s", c.cfg.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "Token "+c.cfg.APIToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var prediction Prediction
	if err := json.Unmarshal(raw, &prediction); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, snippet(raw))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, snippet(raw))
	}

	return &prediction, nil
}

// Wait polls the job on the configured interval until it reaches a terminal
// state or the attempt budget runs out. A failed or canceled job returns
// ErrPredictionFailed immediately; budget exhaustion returns ErrWaitTimeout.
// There is no cancellation of the remote job: if the caller's context ends,
// the provider keeps working regardless.
func (c *Client) Wait(ctx context.Context, id string) (*Prediction, error) {
	for attempt := 0; attempt < c.cfg.MaxPollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.cfg.PollInterval):
		}

		prediction, err := c.GetPrediction(ctx, id)
		if err != nil {
			return nil, err
		}

		if prediction.Status.Terminal() {
			if prediction.Status == StatusSucceeded {
				return prediction, nil
			}
			if msg := prediction.ErrorMessage(); msg != "" {
				return nil, fmt.Errorf("%w: %s", ErrPredictionFailed, msg)
			}
			return nil, ErrPredictionFailed
		}
	}

	return nil, ErrWaitTimeout
}

func snippet(raw []byte) string {
	if len(raw) > maxErrorSnippet {
		raw = raw[:maxErrorSnippet]
	}
	return string(raw)
}
