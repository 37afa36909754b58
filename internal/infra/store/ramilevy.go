package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"pantrylink/config"
	"pantrylink/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	ramiLevyName      = "Rami Levy"
	ramiLevySearchURL = "https://www.rami-levy.co.il"
	ramiLevyAPIURL    = "https://api-prod.rami-levy.co.il"

	ramiLevyStoreID = 331

	ecomTokenHeader = "Ecomtoken"
)

// ramiLevyClient implements barcode search against the Rami Levy public
// catalog and cart operations against its session API.
type ramiLevyClient struct {
	baseClient
	searchURL string
	apiURL    string
	storeID   int

	mu    sync.Mutex
	token string
}

// NewRamiLevy creates the Rami Levy store client.
func NewRamiLevy(cfg *config.StoreConfig, logger *slog.Logger) service.StoreClient {
	return &ramiLevyClient{
		baseClient: newBaseClient(ramiLevyName, cfg, logger),
		searchURL:  ramiLevySearchURL,
		apiURL:     ramiLevyAPIURL,
		storeID:    ramiLevyStoreID,
	}
}

func (c *ramiLevyClient) Name() string { return ramiLevyName }

type ramiLevySearchPage struct {
	Data []struct {
		ID      int    `json:"id"`
		Barcode any    `json:"barcode"`
		Name    string `json:"name"`
		GroupID int    `json:"group_id"`
		Price   struct {
			Price float64 `json:"price"`
		} `json:"price"`
	} `json:"data"`
	Total int `json:"total"`
}

// ProductByBarcode pages through the catalog search until the exact barcode
// is found or results are exhausted.
func (c *ramiLevyClient) ProductByBarcode(ctx context.Context, barcode string) (service.StoreProduct, error) {
	index := 0
	total := 1
	for index < total {
		reqURL := fmt.Sprintf("%s/api/search?store=%d&q=%s&from=%d",
			c.searchURL, c.storeID, url.QueryEscape(barcode), index)

		var page ramiLevySearchPage
		if err := c.getJSON(ctx, reqURL, &page); err != nil {
			return service.StoreProduct{}, err
		}
		if len(page.Data) == 0 {
			break
		}

		for _, item := range page.Data {
			itemBarcode := flattenBarcode(item.Barcode)
			if itemBarcode != barcode {
				continue
			}
			metadata, err := json.Marshal(map[string]int{"id": item.ID})
			if err != nil {
				return service.StoreProduct{}, errors.Wrap(err, "encode vendor metadata")
			}

			return service.StoreProduct{
				Store:     ramiLevyName,
				Barcode:   itemBarcode,
				Name:      item.Name,
				Price:     item.Price.Price,
				GroupID:   item.GroupID,
				GroupName: "Others",
				Picture: fmt.Sprintf("https://static.rami-levy.co.il/storage/images/%s/%d/small.jpg",
					itemBarcode, item.ID),
				Metadata: string(metadata),
			}, nil
		}

		index += len(page.Data)
		total = page.Total
	}

	return service.StoreProduct{}, errors.WithStack(service.ErrNotFound)
}

// flattenBarcode renders the vendor's number-or-string barcode field.
func flattenBarcode(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatInt(int64(value), 10)
	default:
		return ""
	}
}

// Login establishes a cart session and stores the returned ecom token.
func (c *ramiLevyClient) Login(ctx context.Context, username, password string) error {
	payload := map[string]string{
		"username": username,
		"password": password,
	}

	var result struct {
		User struct {
			Token string `json:"token"`
		} `json:"user"`
	}
	if err := c.postJSON(ctx, c.apiURL+"/api/v1/auth/login", payload, &result); err != nil {
		return err
	}
	if result.User.Token == "" {
		return errors.Errorf("store %s: login returned no token", ramiLevyName)
	}

	c.mu.Lock()
	c.token = result.User.Token
	c.mu.Unlock()

	return nil
}

func (c *ramiLevyClient) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	return nil
}

// FillCart pushes cart lines to the current session.
func (c *ramiLevyClient) FillCart(ctx context.Context, items []service.CartItem) error {
	token, err := c.sessionToken()
	if err != nil {
		return err
	}

	lines := make([]map[string]any, 0, len(items))
	for _, item := range items {
		lines = append(lines, map[string]any{
			"C":        item.Code,
			"Quantity": strconv.FormatFloat(item.Quantity, 'f', 2, 64),
		})
	}
	payload := map[string]any{
		"store": c.storeID,
		"items": lines,
	}

	return c.postJSONWithToken(ctx, c.apiURL+"/api/v1/cart/add-line-to-cart", token, payload, nil)
}

// EmptyCart deletes the current session's cart.
func (c *ramiLevyClient) EmptyCart(ctx context.Context) error {
	token, err := c.sessionToken()
	if err != nil {
		return err
	}

	return c.postJSONWithToken(ctx, c.apiURL+"/api/v1/cart/delete-cart", token, nil, nil)
}

func (c *ramiLevyClient) sessionToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" {
		return "", errors.WithStack(service.ErrNotLoggedIn)
	}

	return c.token, nil
}

func (c *ramiLevyClient) postJSON(ctx context.Context, reqURL string, payload, out any) error {
	return c.postJSONWithToken(ctx, reqURL, "", payload, out)
}

func (c *ramiLevyClient) postJSONWithToken(ctx context.Context, reqURL, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "encode store payload")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return errors.Wrap(err, "build store request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	if token != "" {
		req.Header.Set(ecomTokenHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "POST %s", reqURL)
	}
	defer resp.Body.Close()

	c.logger.Debug("store request",
		slog.String("store", ramiLevyName),
		slog.String("url", reqURL),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("store %s: POST %s returned %d", ramiLevyName, reqURL, resp.StatusCode)
	}

	if out == nil {
		return nil
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
