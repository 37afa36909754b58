// Package store implements the online grocery store clients used for
// barcode lookup and cart sync. Vendors are selected by name through a pure
// mapping; unknown names fall back to the no-op vendor.
package store

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"pantrylink/config"
	"pantrylink/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const defaultTimeout = 20 * time.Second

// ForName maps a configured vendor name to its client implementation.
func ForName(cfg *config.StoreConfig, logger *slog.Logger) service.StoreClient {
	if cfg == nil {
		return NewNone()
	}
	switch strings.ToLower(cfg.Name) {
	case strings.ToLower(ramiLevyName):
		return NewRamiLevy(cfg, logger)
	case strings.ToLower(shufersalName):
		return NewShufersal(cfg, logger)
	case strings.ToLower(mySupermarketName):
		return NewMySupermarket(cfg, logger)
	default:
		return NewNone()
	}
}

// baseClient carries the pieces shared by every vendor: an HTTP client, a
// request throttle for the public catalog endpoints, and a logger.
type baseClient struct {
	name       string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

func newBaseClient(name string, cfg *config.StoreConfig, logger *slog.Logger) baseClient {
	timeout := defaultTimeout
	limit := rate.Inf
	if cfg != nil {
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		if cfg.RatePerSecond > 0 {
			limit = rate.Limit(cfg.RatePerSecond)
		}
	}

	return baseClient{
		name:       name,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// getJSON performs a throttled GET and decodes the body into out. An empty
// body leaves out untouched.
func (b *baseClient) getJSON(ctx context.Context, url string, out any) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "store rate limit")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "build store request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", url)
	}
	defer resp.Body.Close()

	b.logger.Debug("store request",
		slog.String("store", b.name),
		slog.String("url", url),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("store %s: GET %s returned %d", b.name, url, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read store response")
	}
	if len(raw) == 0 {
		return nil
	}

	return errors.Wrap(json.Unmarshal(raw, out), "decode store response")
}
