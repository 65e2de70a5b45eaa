// Package openai provides a minimal OpenAI REST client for the moderation pipeline
// it covers the moderations and chat completions endpoints and never retries
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	perr "skillreel/internal/platform/errors"
	"skillreel/internal/platform/logger"
)

const (
	baseURLDefault         = "https://api.openai.com/v1"
	defaultTimeout         = 20 * time.Second
	defaultUA              = "skillreel-moderation"
	defaultModerationModel = "omni-moderation-latest"
	defaultChatModel       = "gpt-4o-mini"

	// ProviderName tags raw payloads produced by this client
	ProviderName = "openai"

	maxErrBody = 2048
)

// Options configures the Client
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration

	ModerationModel string
	ChatModel       string
}

// Client is a thin OpenAI client; callers bound each call with their own context deadline
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	o.BaseURL = strings.TrimRight(strings.TrimSpace(o.BaseURL), "/")
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.APIKey = strings.TrimSpace(o.APIKey)
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.ModerationModel == "" {
		o.ModerationModel = defaultModerationModel
	}
	if o.ChatModel == "" {
		o.ChatModel = defaultChatModel
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("openai"),
		now:  time.Now,
	}
}

// Name returns the provider tag recorded in raw payloads
func (c *Client) Name() string { return ProviderName }

// postJSON sends body to path and returns the raw response body on 2xx
// status codes are mapped onto perr codes; nothing is retried
func (c *Client) postJSON(ctx context.Context, path string, body any) ([]byte, error) {
	if c.opts.APIKey == "" {
		return nil, perr.Unauthorizedf("openai: api key required")
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "openai: encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "openai: new request")
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "openai: %s transport error", path)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("openai http response")

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		out, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "openai: %s read body", path)
		}
		return out, nil
	}

	tail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
	return nil, statusError(path, resp.StatusCode, tail)
}

// statusError maps a non-2xx response onto a perr code
func statusError(path string, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	switch {
	case status == http.StatusTooManyRequests:
		return perr.Newf(perr.ErrorCodeTooManyRequests, "openai: %s rate limited: %s", path, msg)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return perr.Unauthorizedf("openai: %s http %d: %s", path, status, msg)
	case status >= http.StatusInternalServerError:
		return perr.Unavailablef("openai: %s http %d: %s", path, status, msg)
	default:
		return perr.InvalidArgf("openai: %s http %d: %s", path, status, msg)
	}
}
