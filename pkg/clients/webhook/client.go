package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/cristovive/gestao/internal/config"
)

// Notifier publishes short text notifications to an external endpoint, such
// as the chat webhook the leadership uses for announcements.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Client is a resty-backed implementation of Notifier.
type Client struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.WebhookConfig) *Client {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{
		httpClient: restyClient,
		url:        cfg.URL,
	}
}

// Notify posts the text as a simple JSON payload. Any non-2xx response is an
// error carrying the response body.
func (c *Client) Notify(ctx context.Context, text string) error {
	payload := map[string]any{"text": text}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post webhook notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook error: code=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
