// Package mocks provides testify doubles for the domain service
// interfaces.
package mocks

import (
	"context"
	"time"

	"pantrylink/internal/domain/entity"
	"pantrylink/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockPantryClient is a mock implementation of service.PantryClient.
type MockPantryClient struct {
	mock.Mock
}

// NewMockPantryClient creates a mock whose expectations are asserted on
// test cleanup.
func NewMockPantryClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPantryClient {
	m := &MockPantryClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPantryClient) Info(ctx context.Context) (service.SystemInfo, error) {
	args := m.Called(ctx)

	return args.Get(0).(service.SystemInfo), args.Error(1)
}

func (m *MockPantryClient) LastChanged(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)

	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockPantryClient) Products(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	var products []entity.Product
	if v := args.Get(0); v != nil {
		products = v.([]entity.Product)
	}

	return products, args.Error(1)
}

func (m *MockPantryClient) Locations(ctx context.Context) ([]entity.Location, error) {
	args := m.Called(ctx)
	var locations []entity.Location
	if v := args.Get(0); v != nil {
		locations = v.([]entity.Location)
	}

	return locations, args.Error(1)
}

func (m *MockPantryClient) QuantityUnits(ctx context.Context) ([]entity.QuantityUnit, error) {
	args := m.Called(ctx)
	var units []entity.QuantityUnit
	if v := args.Get(0); v != nil {
		units = v.([]entity.QuantityUnit)
	}

	return units, args.Error(1)
}

func (m *MockPantryClient) ProductGroups(ctx context.Context) ([]entity.ProductGroup, error) {
	args := m.Called(ctx)
	var groups []entity.ProductGroup
	if v := args.Get(0); v != nil {
		groups = v.([]entity.ProductGroup)
	}

	return groups, args.Error(1)
}

func (m *MockPantryClient) ShoppingLists(ctx context.Context) ([]entity.ShoppingList, error) {
	args := m.Called(ctx)
	var lists []entity.ShoppingList
	if v := args.Get(0); v != nil {
		lists = v.([]entity.ShoppingList)
	}

	return lists, args.Error(1)
}

func (m *MockPantryClient) ShoppingListItems(ctx context.Context) ([]entity.ShoppingListItem, error) {
	args := m.Called(ctx)
	var items []entity.ShoppingListItem
	if v := args.Get(0); v != nil {
		items = v.([]entity.ShoppingListItem)
	}

	return items, args.Error(1)
}

func (m *MockPantryClient) ProductByBarcode(ctx context.Context, barcode string) (entity.Product, error) {
	args := m.Called(ctx, barcode)

	return args.Get(0).(entity.Product), args.Error(1)
}

func (m *MockPantryClient) CreateProduct(ctx context.Context, product service.NewProduct) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *MockPantryClient) UpdateProduct(ctx context.Context, id int, update service.ProductUpdate) error {
	args := m.Called(ctx, id, update)

	return args.Error(0)
}

func (m *MockPantryClient) DeleteProduct(ctx context.Context, id int) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockPantryClient) CreateLocation(ctx context.Context, id int, name string) error {
	args := m.Called(ctx, id, name)

	return args.Error(0)
}

func (m *MockPantryClient) CreateQuantityUnit(ctx context.Context, id int, name string) error {
	args := m.Called(ctx, id, name)

	return args.Error(0)
}

func (m *MockPantryClient) CreateProductGroup(ctx context.Context, id int, name string) error {
	args := m.Called(ctx, id, name)

	return args.Error(0)
}

func (m *MockPantryClient) CreateShoppingList(ctx context.Context, id int, name string) error {
	args := m.Called(ctx, id, name)

	return args.Error(0)
}

func (m *MockPantryClient) AddToShoppingList(ctx context.Context, productID, listID int, amount float64) error {
	args := m.Called(ctx, productID, listID, amount)

	return args.Error(0)
}

func (m *MockPantryClient) RemoveFromShoppingList(ctx context.Context, productID, listID int, amount float64) error {
	args := m.Called(ctx, productID, listID, amount)

	return args.Error(0)
}

func (m *MockPantryClient) ClearShoppingList(ctx context.Context, listID int) error {
	args := m.Called(ctx, listID)

	return args.Error(0)
}

func (m *MockPantryClient) CompleteShoppingListItem(ctx context.Context, itemID int, done bool) error {
	args := m.Called(ctx, itemID, done)

	return args.Error(0)
}

func (m *MockPantryClient) Userfields(ctx context.Context, productID int) (entity.Userfields, error) {
	args := m.Called(ctx, productID)
	var fields entity.Userfields
	if v := args.Get(0); v != nil {
		fields = v.(entity.Userfields)
	}

	return fields, args.Error(1)
}

func (m *MockPantryClient) SetUserfields(ctx context.Context, productID int, fields entity.Userfields) error {
	args := m.Called(ctx, productID, fields)

	return args.Error(0)
}
