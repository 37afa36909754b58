package store

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pantrylink/config"
	"pantrylink/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestForName_MapsVendorsCaseInsensitively(t *testing.T) {
	logger := discardLogger()

	assert.Equal(t, "None", ForName(nil, logger).Name())
	assert.Equal(t, "None", ForName(&config.StoreConfig{Name: "Unknown Vendor"}, logger).Name())
	assert.Equal(t, "Rami Levy", ForName(&config.StoreConfig{Name: "rami levy"}, logger).Name())
	assert.Equal(t, "Shufersal", ForName(&config.StoreConfig{Name: "SHUFERSAL"}, logger).Name())
	assert.Equal(t, "My Supermarket", ForName(&config.StoreConfig{Name: "my supermarket"}, logger).Name())
}

func TestNoneClient(t *testing.T) {
	client := NewNone()
	ctx := context.Background()

	_, err := client.ProductByBarcode(ctx, "7290001")
	assert.True(t, errors.Is(err, service.ErrNotFound))

	assert.True(t, errors.Is(client.Login(ctx, "u", "p"), service.ErrCartUnsupported))
	assert.True(t, errors.Is(client.FillCart(ctx, nil), service.ErrCartUnsupported))
	assert.True(t, errors.Is(client.EmptyCart(ctx), service.ErrCartUnsupported))
	assert.NoError(t, client.Logout(ctx))
}

func TestShufersal_ProductByBarcode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/online/he/search/results", r.URL.Path)
		_, _ = w.Write([]byte(`{"results":[
			{"sku":"123","name":"Wrong Product"},
			{"sku":"7290001","name":"Cottage Cheese","images":[{"url":"https://img/1.jpg"}]}
		]}`))
	}))
	t.Cleanup(srv.Close)

	client := &shufersalClient{
		baseClient: newBaseClient(shufersalName, nil, discardLogger()),
		baseURL:    srv.URL,
	}

	product, err := client.ProductByBarcode(context.Background(), "7290001")
	require.NoError(t, err)
	assert.Equal(t, "Shufersal", product.Store)
	assert.Equal(t, "Cottage Cheese", product.Name)
	assert.Equal(t, "https://img/1.jpg", product.Picture)

	_, err = client.ProductByBarcode(context.Background(), "404404")
	assert.True(t, errors.Is(err, service.ErrNotFound))

	assert.True(t, errors.Is(client.FillCart(context.Background(), nil), service.ErrCartUnsupported))
}

func TestMySupermarket_ProductByBarcode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/autocompletion/product_extended", r.URL.Path)
		assert.Equal(t, "7290001", r.URL.Query().Get("term"))
		_, _ = w.Write([]byte(`[
			{"id":"brand_123","value":"Wrong"},
			{"id":"product_7290001","value":"Hummus"}
		]`))
	}))
	t.Cleanup(srv.Close)

	client := &mySupermarketClient{
		baseClient: newBaseClient(mySupermarketName, nil, discardLogger()),
		baseURL:    srv.URL,
	}

	product, err := client.ProductByBarcode(context.Background(), "7290001")
	require.NoError(t, err)
	assert.Equal(t, "My Supermarket", product.Store)
	assert.Equal(t, "Hummus", product.Name)
	assert.Equal(t, "7290001", product.Barcode)
}

func TestRamiLevy_ProductByBarcode_PagesUntilMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		switch r.URL.Query().Get("from") {
		case "0":
			_, _ = w.Write([]byte(`{"total":3,"data":[
				{"id":1,"barcode":"111","name":"A","price":{"price":1}},
				{"id":2,"barcode":222,"name":"B","price":{"price":2}}
			]}`))
		case "2":
			_, _ = w.Write([]byte(`{"total":3,"data":[
				{"id":5544,"barcode":"7290001","name":"Cottage Cheese","group_id":9,"price":{"price":5.9}}
			]}`))
		default:
			t.Errorf("unexpected from offset %q", r.URL.Query().Get("from"))
		}
	}))
	t.Cleanup(srv.Close)

	client := &ramiLevyClient{
		baseClient: newBaseClient(ramiLevyName, nil, discardLogger()),
		searchURL:  srv.URL,
		apiURL:     srv.URL,
		storeID:    ramiLevyStoreID,
	}

	product, err := client.ProductByBarcode(context.Background(), "7290001")
	require.NoError(t, err)
	assert.Equal(t, "Rami Levy", product.Store)
	assert.Equal(t, "Cottage Cheese", product.Name)
	assert.InDelta(t, 5.9, product.Price, 0.001)
	assert.JSONEq(t, `{"id":5544}`, product.Metadata)
}

func TestRamiLevy_CartSession(t *testing.T) {
	var fillBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			_, _ = w.Write([]byte(`{"user":{"token":"session-token"}}`))
		case "/api/v1/cart/add-line-to-cart":
			assert.Equal(t, "session-token", r.Header.Get("Ecomtoken"))
			fillBody, _ = io.ReadAll(r.Body)
			_, _ = w.Write([]byte(`{}`))
		case "/api/v1/cart/delete-cart":
			assert.Equal(t, "session-token", r.Header.Get("Ecomtoken"))
			_, _ = w.Write([]byte(`{}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)

	client := &ramiLevyClient{
		baseClient: newBaseClient(ramiLevyName, nil, discardLogger()),
		searchURL:  srv.URL,
		apiURL:     srv.URL,
		storeID:    ramiLevyStoreID,
	}
	ctx := context.Background()

	// Cart calls before login are rejected locally.
	assert.True(t, errors.Is(client.EmptyCart(ctx), service.ErrNotLoggedIn))

	require.NoError(t, client.Login(ctx, "user", "pass"))
	require.NoError(t, client.FillCart(ctx, []service.CartItem{{Code: 5544, Quantity: 2}}))
	require.NoError(t, client.EmptyCart(ctx))

	var payload struct {
		Store int              `json:"store"`
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(fillBody, &payload))
	assert.Equal(t, ramiLevyStoreID, payload.Store)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, float64(5544), payload.Items[0]["C"])
	assert.Equal(t, "2.00", payload.Items[0]["Quantity"])

	require.NoError(t, client.Logout(ctx))
	assert.True(t, errors.Is(client.FillCart(ctx, nil), service.ErrNotLoggedIn))
}
