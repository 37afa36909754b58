package pantry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pantrylink/config"
	"pantrylink/internal/domain/entity"
	"pantrylink/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	apiKeyHeader = "GROCY-API-KEY"

	// demoModeKey suppresses the auth header when used as the API key.
	demoModeKey = "demo_mode"

	defaultTimeout = 30 * time.Second
)

// APIError is a transport-level failure: a non-2xx response from the pantry
// server.
type APIError struct {
	Method string
	Path   string
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pantry api: %s %s returned %d", e.Method, e.Path, e.Status)
}

// Client implements service.PantryClient against a pantry HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a pantry API client from config.
func New(cfg *config.Config, logger *slog.Logger) service.PantryClient {
	timeout := cfg.Pantry.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    fmt.Sprintf("%s:%d/api", strings.TrimRight(cfg.Pantry.URL, "/"), cfg.Pantry.Port),
		apiKey:     cfg.Pantry.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "encode request payload")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != demoModeKey {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	c.logger.Debug("pantry request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s %s response", method, path)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if resp.StatusCode == http.StatusNotFound {
			return nil, errors.WithStack(service.ErrNotFound)
		}

		return nil, errors.WithStack(&APIError{Method: method, Path: path, Status: resp.StatusCode})
	}

	return raw, nil
}

func (c *Client) getRecords(ctx context.Context, path string) ([]rawRecord, error) {
	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var records []rawRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.Wrapf(err, "decode %s response", path)
	}

	return records, nil
}

// Info returns the remote server description.
func (c *Client) Info(ctx context.Context) (service.SystemInfo, error) {
	raw, err := c.do(ctx, http.MethodGet, "system/info", nil)
	if err != nil {
		return service.SystemInfo{}, err
	}

	var payload struct {
		Version     string `json:"Version"`
		ReleaseDate string `json:"ReleaseDate"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return service.SystemInfo{}, errors.Wrap(err, "decode system info")
	}

	return service.SystemInfo{Version: payload.Version, ReleaseDate: payload.ReleaseDate}, nil
}

// LastChanged returns the global staleness token.
func (c *Client) LastChanged(ctx context.Context) (time.Time, error) {
	raw, err := c.do(ctx, http.MethodGet, "system/db-changed-time", nil)
	if err != nil {
		return time.Time{}, err
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return time.Time{}, errors.Wrap(err, "decode db-changed-time")
	}
	token := parseTime(payload["changed_time"])
	if token.IsZero() {
		return time.Time{}, errors.Errorf("unparsable changed_time: %v", payload["changed_time"])
	}

	return token, nil
}

func (c *Client) Products(ctx context.Context) ([]entity.Product, error) {
	records, err := c.getRecords(ctx, "objects/products")
	if err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, productFromRecord(rec))
	}

	return products, nil
}

func (c *Client) Locations(ctx context.Context) ([]entity.Location, error) {
	records, err := c.getRecords(ctx, "objects/locations")
	if err != nil {
		return nil, err
	}
	locations := make([]entity.Location, 0, len(records))
	for _, rec := range records {
		locations = append(locations, locationFromRecord(rec))
	}

	return locations, nil
}

func (c *Client) QuantityUnits(ctx context.Context) ([]entity.QuantityUnit, error) {
	records, err := c.getRecords(ctx, "objects/quantity_units")
	if err != nil {
		return nil, err
	}
	units := make([]entity.QuantityUnit, 0, len(records))
	for _, rec := range records {
		units = append(units, quantityUnitFromRecord(rec))
	}

	return units, nil
}

func (c *Client) ProductGroups(ctx context.Context) ([]entity.ProductGroup, error) {
	records, err := c.getRecords(ctx, "objects/product_groups")
	if err != nil {
		return nil, err
	}
	groups := make([]entity.ProductGroup, 0, len(records))
	for _, rec := range records {
		groups = append(groups, productGroupFromRecord(rec))
	}

	return groups, nil
}

func (c *Client) ShoppingLists(ctx context.Context) ([]entity.ShoppingList, error) {
	records, err := c.getRecords(ctx, "objects/shopping_lists")
	if err != nil {
		return nil, err
	}
	lists := make([]entity.ShoppingList, 0, len(records))
	for _, rec := range records {
		lists = append(lists, shoppingListFromRecord(rec))
	}

	return lists, nil
}

func (c *Client) ShoppingListItems(ctx context.Context) ([]entity.ShoppingListItem, error) {
	records, err := c.getRecords(ctx, "objects/shopping_list")
	if err != nil {
		return nil, err
	}
	items := make([]entity.ShoppingListItem, 0, len(records))
	for _, rec := range records {
		items = append(items, shoppingListItemFromRecord(rec))
	}

	return items, nil
}

// ProductByBarcode resolves a product through the remote barcode index.
func (c *Client) ProductByBarcode(ctx context.Context, barcode string) (entity.Product, error) {
	raw, err := c.do(ctx, http.MethodGet, "stock/products/by-barcode/"+barcode, nil)
	if err != nil {
		return entity.Product{}, err
	}

	var payload struct {
		Product rawRecord `json:"product"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return entity.Product{}, errors.Wrap(err, "decode barcode lookup")
	}
	if payload.Product == nil {
		return entity.Product{}, errors.WithStack(service.ErrNotFound)
	}

	return productFromRecord(payload.Product), nil
}

// CreateProduct creates a product with the server's expected default field
// values for everything the caller does not control.
func (c *Client) CreateProduct(ctx context.Context, product service.NewProduct) error {
	payload := map[string]any{
		"id":                                      product.ID,
		"name":                                    product.Name,
		"barcode":                                 product.Barcode,
		"description":                             product.Description,
		"product_group_id":                        product.ProductGroupID,
		"qu_id_purchase":                          product.QuIDPurchase,
		"qu_id_stock":                             product.QuIDPurchase,
		"location_id":                             product.LocationID,
		"picture_file_name":                       product.Picture,
		"qu_factor_purchase_to_stock":             "1.0",
		"min_stock_amount":                        "1",
		"default_best_before_days":                "0",
		"default_best_before_days_after_open":     "0",
		"allow_partial_units_in_stock":            "0",
		"enable_tare_weight_handling":             "0",
		"tare_weight":                             "0.0",
		"not_check_stock_fulfillment_for_recipes": "0",
	}
	_, err := c.do(ctx, http.MethodPost, "objects/products", payload)

	return err
}

func (c *Client) UpdateProduct(ctx context.Context, id int, update service.ProductUpdate) error {
	payload := map[string]any{}
	if update.Name != nil {
		payload["name"] = *update.Name
	}
	if update.Barcode != nil {
		payload["barcode"] = *update.Barcode
	}
	if update.Description != nil {
		payload["description"] = *update.Description
	}
	if update.ProductGroupID != nil {
		payload["product_group_id"] = *update.ProductGroupID
	}
	if update.LocationID != nil {
		payload["location_id"] = *update.LocationID
	}
	if update.Picture != nil {
		payload["picture_file_name"] = *update.Picture
	}
	_, err := c.do(ctx, http.MethodPut, "objects/products/"+strconv.Itoa(id), payload)

	return err
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "objects/products/"+strconv.Itoa(id), nil)

	return err
}

func (c *Client) createObject(ctx context.Context, path string, id int, name string) error {
	_, err := c.do(ctx, http.MethodPost, path, map[string]any{"id": id, "name": name})

	return err
}

func (c *Client) CreateLocation(ctx context.Context, id int, name string) error {
	return c.createObject(ctx, "objects/locations", id, name)
}

func (c *Client) CreateQuantityUnit(ctx context.Context, id int, name string) error {
	return c.createObject(ctx, "objects/quantity_units", id, name)
}

func (c *Client) CreateProductGroup(ctx context.Context, id int, name string) error {
	return c.createObject(ctx, "objects/product_groups", id, name)
}

func (c *Client) CreateShoppingList(ctx context.Context, id int, name string) error {
	return c.createObject(ctx, "objects/shopping_lists", id, name)
}

func (c *Client) AddToShoppingList(ctx context.Context, productID, listID int, amount float64) error {
	payload := map[string]any{
		"product_id":     productID,
		"list_id":        listID,
		"product_amount": amount,
	}
	_, err := c.do(ctx, http.MethodPost, "stock/shoppinglist/add-product", payload)

	return err
}

func (c *Client) RemoveFromShoppingList(ctx context.Context, productID, listID int, amount float64) error {
	payload := map[string]any{
		"product_id":     productID,
		"list_id":        listID,
		"product_amount": amount,
	}
	_, err := c.do(ctx, http.MethodPost, "stock/shoppinglist/remove-product", payload)

	return err
}

func (c *Client) ClearShoppingList(ctx context.Context, listID int) error {
	_, err := c.do(ctx, http.MethodPost, "stock/shoppinglist/clear", map[string]any{"list_id": listID})

	return err
}

func (c *Client) CompleteShoppingListItem(ctx context.Context, itemID int, done bool) error {
	doneFlag := 0
	if done {
		doneFlag = 1
	}
	_, err := c.do(ctx, http.MethodPut, "objects/shopping_list/"+strconv.Itoa(itemID), map[string]any{"done": doneFlag})

	return err
}

// Userfields reads the free-form metadata bag of one product. A product
// without configured userfields is an empty bag, not an error.
func (c *Client) Userfields(ctx context.Context, productID int) (entity.Userfields, error) {
	raw, err := c.do(ctx, http.MethodGet, "userfields/products/"+strconv.Itoa(productID), nil)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return entity.Userfields{}, nil
		}

		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return entity.Userfields{}, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Wrap(err, "decode userfields")
	}
	fields := make(entity.Userfields, len(payload))
	for key, value := range payload {
		if value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			fields[key] = v
		case float64:
			fields[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			if v {
				fields[key] = "1"
			} else {
				fields[key] = "0"
			}
		}
	}

	return fields, nil
}

func (c *Client) SetUserfields(ctx context.Context, productID int, fields entity.Userfields) error {
	_, err := c.do(ctx, http.MethodPut, "userfields/products/"+strconv.Itoa(productID), fields)

	return err
}
