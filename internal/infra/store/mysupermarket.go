package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"pantrylink/config"
	"pantrylink/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	mySupermarketName    = "My Supermarket"
	mySupermarketBaseURL = "https://chp.co.il"
)

// mySupermarketClient searches the chp.co.il price-comparison catalog. No
// cart API exists for this vendor.
type mySupermarketClient struct {
	baseClient
	baseURL string
}

// NewMySupermarket creates the My Supermarket store client.
func NewMySupermarket(cfg *config.StoreConfig, logger *slog.Logger) service.StoreClient {
	return &mySupermarketClient{
		baseClient: newBaseClient(mySupermarketName, cfg, logger),
		baseURL:    mySupermarketBaseURL,
	}
}

func (c *mySupermarketClient) Name() string { return mySupermarketName }

func (c *mySupermarketClient) ProductByBarcode(ctx context.Context, barcode string) (service.StoreProduct, error) {
	reqURL := fmt.Sprintf("%s/autocompletion/product_extended?term=%s", c.baseURL, url.QueryEscape(barcode))

	var payload []struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	}
	if err := c.getJSON(ctx, reqURL, &payload); err != nil {
		return service.StoreProduct{}, err
	}

	for _, item := range payload {
		// Entry ids look like "<kind>_<barcode>".
		parts := strings.SplitN(item.ID, "_", 2)
		if len(parts) != 2 || parts[1] != barcode {
			continue
		}

		return service.StoreProduct{
			Store:     mySupermarketName,
			Barcode:   parts[1],
			Name:      item.Value,
			GroupName: "Others",
		}, nil
	}

	return service.StoreProduct{}, errors.WithStack(service.ErrNotFound)
}

func (c *mySupermarketClient) Login(ctx context.Context, username, password string) error {
	return errors.WithStack(service.ErrCartUnsupported)
}

func (c *mySupermarketClient) Logout(ctx context.Context) error {
	return nil
}

func (c *mySupermarketClient) FillCart(ctx context.Context, items []service.CartItem) error {
	return errors.WithStack(service.ErrCartUnsupported)
}

func (c *mySupermarketClient) EmptyCart(ctx context.Context) error {
	return errors.WithStack(service.ErrCartUnsupported)
}
