package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"pantrylink/config"
	"pantrylink/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	shufersalName    = "Shufersal"
	shufersalBaseURL = "https://www.shufersal.co.il"

	shufersalSearchLimit = 10
)

// shufersalClient searches the Shufersal online catalog. The vendor exposes
// no cart API.
type shufersalClient struct {
	baseClient
	baseURL string
}

// NewShufersal creates the Shufersal store client.
func NewShufersal(cfg *config.StoreConfig, logger *slog.Logger) service.StoreClient {
	return &shufersalClient{
		baseClient: newBaseClient(shufersalName, cfg, logger),
		baseURL:    shufersalBaseURL,
	}
}

func (c *shufersalClient) Name() string { return shufersalName }

func (c *shufersalClient) ProductByBarcode(ctx context.Context, barcode string) (service.StoreProduct, error) {
	reqURL := fmt.Sprintf("%s/online/he/search/results?q=%s%%3Arelevance&limit=%d",
		c.baseURL, url.QueryEscape(barcode), shufersalSearchLimit)

	var payload struct {
		Results []struct {
			SKU    string `json:"sku"`
			Name   string `json:"name"`
			Images []struct {
				URL string `json:"url"`
			} `json:"images"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, reqURL, &payload); err != nil {
		return service.StoreProduct{}, err
	}

	for _, item := range payload.Results {
		if item.SKU != barcode {
			continue
		}
		product := service.StoreProduct{
			Store:     shufersalName,
			Barcode:   item.SKU,
			Name:      item.Name,
			GroupName: "Others",
		}
		if len(item.Images) > 0 {
			product.Picture = item.Images[0].URL
		}

		return product, nil
	}

	return service.StoreProduct{}, errors.WithStack(service.ErrNotFound)
}

func (c *shufersalClient) Login(ctx context.Context, username, password string) error {
	return errors.WithStack(service.ErrCartUnsupported)
}

func (c *shufersalClient) Logout(ctx context.Context) error {
	return nil
}

func (c *shufersalClient) FillCart(ctx context.Context, items []service.CartItem) error {
	return errors.WithStack(service.ErrCartUnsupported)
}

func (c *shufersalClient) EmptyCart(ctx context.Context) error {
	return errors.WithStack(service.ErrCartUnsupported)
}
