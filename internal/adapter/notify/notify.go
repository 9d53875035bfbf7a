// Package notify delivers domain events to the log or an HTTP webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

var _ domain.Notifier = (*LogNotifier)(nil)
var _ domain.Notifier = (*WebhookNotifier)(nil)
var _ domain.Notifier = Multi(nil)

// LogNotifier writes events to a logger.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the event at info level.
func (n *LogNotifier) Notify(_ context.Context, e domain.Event) error {
	n.logger.Info(e.Message, "event", e.Kind, "user", e.UserID, "day", e.Day, "id", e.ID)
	return nil
}

// WebhookNotifier POSTs each event as JSON to a URL.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a WebhookNotifier with a short client timeout.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{url: url, client: &http.Client{Timeout: 5 * time.Second}}
}

// Notify sends the event. Any non-2xx response is an error.
func (n *WebhookNotifier) Notify(ctx context.Context, e domain.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Multi fans an event out to every notifier and returns the first error.
type Multi []domain.Notifier

// Notify delivers to all notifiers even if one fails.
func (m Multi) Notify(ctx context.Context, e domain.Event) error {
	var first error
	for _, n := range m {
		if err := n.Notify(ctx, e); err != nil && first == nil {
			first = err
		}
	}
	return first
}
