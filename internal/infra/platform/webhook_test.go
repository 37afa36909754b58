package platform

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pantrylink/config"
	"pantrylink/internal/domain/entity"
	"pantrylink/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhook_PublishState(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ = io.ReadAll(r.Body)
	}))
	t.Cleanup(srv.Close)

	webhook := NewWebhook(&config.PlatformConfig{StateURL: srv.URL}, discardLogger())
	view := &entity.ProductView{
		Product:      entity.Product{ID: 1, Name: "Milk"},
		Amount:       2,
		GroupName:    "Dairy",
		LocationName: "Fridge",
		UnitName:     "Bottle",
	}

	require.NoError(t, webhook.PublishState(context.Background(), view))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "product:1", payload["key"])
	assert.Equal(t, "product", payload["kind"])
	assert.Equal(t, "Milk", payload["name"])
	assert.Equal(t, 2.0, payload["state"])
}

func TestWebhook_PublishAssignsEventID(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
	}))
	t.Cleanup(srv.Close)

	webhook := NewWebhook(&config.PlatformConfig{EventURL: srv.URL}, discardLogger())

	require.NoError(t, webhook.Publish(context.Background(), service.Event{Name: service.EventSyncDone}))

	var event service.Event
	require.NoError(t, json.Unmarshal(body, &event))
	assert.Equal(t, service.EventSyncDone, event.Name)
	assert.NotEmpty(t, event.ID)
}

func TestWebhook_UnconfiguredEndpointIsNoop(t *testing.T) {
	webhook := NewWebhook(&config.PlatformConfig{}, discardLogger())

	require.NoError(t, webhook.RemoveEntity(context.Background(), "product:1"))
}

func TestWebhook_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	webhook := NewWebhook(&config.PlatformConfig{RemoveURL: srv.URL}, discardLogger())

	require.Error(t, webhook.RemoveEntity(context.Background(), "product:1"))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
