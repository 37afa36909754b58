package store

import (
	"context"

	"pantrylink/internal/domain/service"

	"github.com/pkg/errors"
)

const noneName = "None"

// noneClient is the fallback vendor: every lookup misses and cart
// operations are unsupported.
type noneClient struct{}

// NewNone creates the no-op store client.
func NewNone() service.StoreClient {
	return &noneClient{}
}

func (c *noneClient) Name() string { return noneName }

func (c *noneClient) ProductByBarcode(ctx context.Context, barcode string) (service.StoreProduct, error) {
	return service.StoreProduct{}, errors.WithStack(service.ErrNotFound)
}

func (c *noneClient) Login(ctx context.Context, username, password string) error {
	return errors.WithStack(service.ErrCartUnsupported)
}

func (c *noneClient) Logout(ctx context.Context) error {
	return nil
}

func (c *noneClient) FillCart(ctx context.Context, items []service.CartItem) error {
	return errors.WithStack(service.ErrCartUnsupported)
}

func (c *noneClient) EmptyCart(ctx context.Context) error {
	return errors.WithStack(service.ErrCartUnsupported)
}
