package telegramclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://api.telegram.org"
	defaultUserAgent = "sy-number-bot/0.1"
)

// Config controls how the Telegram client behaves.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

// Client calls the Telegram Bot API methods the bot needs. Failed calls are
// returned to the caller as-is; the client never retries.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	userAgent  string
}

// New creates a configured Client with sane defaults.
func New(cfg Config) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("telegramclient: bot token is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		userAgent:  userAgent,
	}, nil
}

// SendMessage posts a text message to a chat.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	result, err := c.invoke(ctx, "sendMessage", req)
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := json.Unmarshal(result, &msg); err != nil {
		return nil, fmt.Errorf("telegramclient: decode sendMessage result: %w", err)
	}
	return &msg, nil
}

// SetWebhook registers the URL Telegram delivers updates to.
func (c *Client) SetWebhook(ctx context.Context, req SetWebhookRequest) error {
	if err := req.validate(); err != nil {
		return err
	}
	_, err := c.invoke(ctx, "setWebhook", req)
	return err
}

func (c *Client) invoke(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("telegramclient: marshal %s body: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("telegramclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// the URL embeds the token, keep it out of errors and logs
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("telegramclient: %s: http error: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("telegramclient: read response: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &APIError{Method: method, StatusCode: resp.StatusCode, Description: strings.TrimSpace(string(data))}
	}
	if !env.OK || resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, StatusCode: resp.StatusCode, ErrorCode: env.ErrorCode, Description: env.Description}
		c.logger.Warn("telegram api error", "method", method, "status", resp.StatusCode, "error_code", env.ErrorCode, "description", env.Description)
		return nil, apiErr
	}
	return env.Result, nil
}

func (c *Client) methodURL(method string) string {
	return c.baseURL + "/bot" + c.token + "/" + method
}

// APIError is a non-ok answer from the Bot API.
type APIError struct {
	Method      string
	StatusCode  int
	ErrorCode   int
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("telegramclient: %s: %s (status=%d)", e.Method, e.Description, e.StatusCode)
	}
	return fmt.Sprintf("telegramclient: %s: http status %d", e.Method, e.StatusCode)
}
