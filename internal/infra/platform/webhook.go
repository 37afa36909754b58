// Package platform implements the host automation platform adapter. The
// host consumes entity state and domain events through plain JSON webhooks;
// when no endpoints are configured a logging adapter stands in.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"pantrylink/config"
	"pantrylink/internal/domain/entity"
	"pantrylink/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultTimeout = 10 * time.Second

// Webhook publishes entity state and domain events to the host platform's
// callback endpoints.
type Webhook struct {
	stateURL   string
	removeURL  string
	eventURL   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWebhook creates a webhook adapter from config.
func NewWebhook(cfg *config.PlatformConfig, logger *slog.Logger) *Webhook {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Webhook{
		stateURL:   cfg.StateURL,
		removeURL:  cfg.RemoveURL,
		eventURL:   cfg.EventURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type statePayload struct {
	Key        string         `json:"key"`
	Kind       string         `json:"kind"`
	Name       string         `json:"name"`
	State      any            `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// PublishState asks the host to re-render one entity.
func (w *Webhook) PublishState(ctx context.Context, view entity.View) error {
	payload := statePayload{
		Key:        view.Key(),
		Kind:       string(view.Kind()),
		Name:       view.Name(),
		State:      view.State(),
		Attributes: view.Attributes(),
	}

	return w.post(ctx, w.stateURL, payload)
}

// RemoveEntity tells the host an entity no longer exists.
func (w *Webhook) RemoveEntity(ctx context.Context, key string) error {
	return w.post(ctx, w.removeURL, map[string]string{"key": key})
}

// Publish sends a domain event to the host bus, assigning an id when the
// caller left it empty.
func (w *Webhook) Publish(ctx context.Context, event service.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	return w.post(ctx, w.eventURL, event)
}

func (w *Webhook) post(ctx context.Context, url string, payload any) error {
	if url == "" {
		return nil
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encode platform payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return errors.Wrap(err, "build platform request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "POST %s", url)
	}
	defer resp.Body.Close()

	w.logger.Debug("platform callback",
		slog.String("url", url),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("platform: POST %s returned %d", url, resp.StatusCode)
	}

	return nil
}
