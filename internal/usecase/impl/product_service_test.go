package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"pantrylink/config"
	"pantrylink/internal/domain/entity"
	"pantrylink/internal/domain/service"
	"pantrylink/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductFixture(t *testing.T) (*syncFixture, usecase.ProductUsecase) {
	cfg := &config.Config{}
	cfg.Pantry.DefaultShoppingListID = 1
	f := newSyncFixture(t, cfg)
	productSvc := NewProductService(ProductServiceParams{
		Config:   cfg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Pantry:   f.pantry,
		Store:    f.store,
		Platform: f.platform,
		Events:   f.events,
		Snapshot: f.snapshot,
		Registry: f.registry,
		Sync:     f.service,
	})

	return f, productSvc
}

// expectProductsRefresh arms the force refresh of the products category that
// follows every product mutation.
func (f *syncFixture) expectProductsRefresh(ctx context.Context, products []entity.Product) {
	f.pantry.On("LastChanged", ctx).Return(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), nil).Once()
	f.pantry.On("Products", ctx).Return(products, nil).Once()
	for _, product := range products {
		f.pantry.On("Userfields", ctx, product.ID).Return(product.Userfields, nil).Once()
	}
}

func TestProductService_AddProduct_CreatesFromStoreCatalog(t *testing.T) {
	f, productSvc := newProductFixture(t)
	ctx := context.Background()

	f.store.On("ProductByBarcode", ctx, "7290004").Return(service.StoreProduct{
		Store:    "Rami Levy",
		Barcode:  "7290004",
		Name:     "Cottage Cheese",
		Price:    5.9,
		Picture:  "https://img.example/7290004.jpg",
		Metadata: `{"id":5544}`,
	}, nil).Once()
	f.pantry.On("CreateProduct", ctx, service.NewProduct{
		ID:             7290004,
		Name:           "Cottage Cheese",
		Barcode:        "7290004",
		ProductGroupID: 3,
		QuIDPurchase:   1,
		LocationID:     2,
		Picture:        "https://img.example/7290004.jpg",
	}).Return(nil).Once()
	f.pantry.On("SetUserfields", ctx, 7290004, entity.Userfields{
		entity.UserfieldPrice:    "5.9",
		entity.UserfieldStore:    "Rami Levy",
		entity.UserfieldMetadata: `{"id":5544}`,
	}).Return(nil).Once()
	f.expectProductsRefresh(ctx, []entity.Product{{ID: 7290004, Name: "Cottage Cheese"}})
	f.platform.On("PublishState", ctx, mock.Anything).Return(nil).Once()
	f.events.On("Publish", ctx, service.Event{
		Name:     service.EventProductAdded,
		EntityID: entity.ProductKey(7290004),
	}).Return(nil).Once()

	require.NoError(t, productSvc.AddProduct(ctx, &usecase.AddProductInput{
		Barcode:        "7290004",
		ProductGroupID: 3,
		LocationID:     2,
	}))

	assert.True(t, f.registry.Exists(entity.ProductKey(7290004)))
}

func TestProductService_AddProduct_StoreMissIsSuccessWithoutEffect(t *testing.T) {
	f, productSvc := newProductFixture(t)
	ctx := context.Background()

	f.store.On("ProductByBarcode", ctx, "404404").Return(service.StoreProduct{}, service.ErrNotFound).Once()
	f.store.On("Name").Return("Shufersal")
	f.events.On("Publish", ctx, mock.MatchedBy(func(event service.Event) bool {
		return event.Name == service.EventError
	})).Return(nil).Once()

	require.NoError(t, productSvc.AddProduct(ctx, &usecase.AddProductInput{
		Barcode:        "404404",
		ProductGroupID: 1,
		LocationID:     1,
	}))
	assert.Empty(t, f.registry.All())
}

func TestProductService_AddProduct_ExistingBarcodeUpdates(t *testing.T) {
	f, productSvc := newProductFixture(t)
	ctx := context.Background()

	f.registry.Add(&entity.ProductView{Product: entity.Product{
		ID: 1, Name: "Milk", Barcodes: []string{"7290001"},
	}})

	groupID := 3
	locationID := 2
	f.pantry.On("UpdateProduct", ctx, 1, service.ProductUpdate{
		ProductGroupID: &groupID,
		LocationID:     &locationID,
	}).Return(nil).Once()
	f.expectProductsRefresh(ctx, []entity.Product{{ID: 1, Name: "Milk", ProductGroupID: 3, LocationID: 2}})
	f.platform.On("PublishState", ctx, mock.Anything).Return(nil).Once()
	f.events.On("Publish", ctx, service.Event{
		Name:     service.EventProductUpdated,
		EntityID: entity.ProductKey(1),
	}).Return(nil).Once()

	require.NoError(t, productSvc.AddProduct(ctx, &usecase.AddProductInput{
		Barcode:        "7290001",
		ProductGroupID: 3,
		LocationID:     2,
	}))
}

func TestProductService_RemoveProduct_RemoteFailureLeavesRegistry(t *testing.T) {
	f, productSvc := newProductFixture(t)
	ctx := context.Background()

	f.registry.Add(&entity.ProductView{Product: entity.Product{ID: 1, Name: "Milk"}})

	f.pantry.On("DeleteProduct", ctx, 1).Return(errors.New("boom")).Once()
	f.events.On("Publish", ctx, mock.MatchedBy(func(event service.Event) bool {
		return event.Name == service.EventError
	})).Return(nil).Once()

	err := productSvc.RemoveProduct(ctx, &usecase.EntityRefInput{EntityRef: "product:1"})
	require.Error(t, err)
	// Local state is only touched after a successful remote delete.
	assert.True(t, f.registry.Exists(entity.ProductKey(1)))
}

func TestProductService_RemoveProduct_BarcodeLookupTransportFailure(t *testing.T) {
	f, productSvc := newProductFixture(t)
	ctx := context.Background()

	f.pantry.On("ProductByBarcode", ctx, "7290009").Return(entity.Product{}, errors.New("connection reset")).Once()
	f.events.On("Publish", ctx, mock.MatchedBy(func(event service.Event) bool {
		return event.Name == service.EventError
	})).Return(nil).Once()

	// A transport failure during resolution fails the command; no delete is
	// attempted.
	err := productSvc.RemoveProduct(ctx, &usecase.EntityRefInput{EntityRef: "7290009"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestProductService_RemoveProduct_Success(t *testing.T) {
	f, productSvc := newProductFixture(t)
	ctx := context.Background()

	f.registry.Add(&entity.ProductView{Product: entity.Product{ID: 1, Name: "Milk"}})

	f.pantry.On("DeleteProduct", ctx, 1).Return(nil).Once()
	f.platform.On("RemoveEntity", ctx, entity.ProductKey(1)).Return(nil).Once()
	f.expectProductsRefresh(ctx, nil)
	f.events.On("Publish", ctx, service.Event{
		Name:     service.EventProductRemoved,
		EntityID: entity.ProductKey(1),
	}).Return(nil).Once()

	require.NoError(t, productSvc.RemoveProduct(ctx, &usecase.EntityRefInput{EntityRef: "product:1"}))
	assert.False(t, f.registry.Exists(entity.ProductKey(1)))
}

func TestProductService_AddFavorite_WritesUserfieldAndRefreshes(t *testing.T) {
	f, productSvc := newProductFixture(t)
	ctx := context.Background()

	f.registry.Add(&entity.ProductView{Product: entity.Product{ID: 1, Name: "Milk"}})

	f.pantry.On("SetUserfields", ctx, 1, entity.Userfields{entity.UserfieldFavorite: "1"}).Return(nil).Once()
	f.expectProductsRefresh(ctx, []entity.Product{{
		ID: 1, Name: "Milk", Userfields: entity.Userfields{entity.UserfieldFavorite: "1"},
	}})
	f.platform.On("PublishState", ctx, mock.Anything).Return(nil).Once()
	f.events.On("Publish", ctx, service.Event{
		Name:     service.EventProductUpdated,
		EntityID: entity.ProductKey(1),
	}).Return(nil).Once()

	require.NoError(t, productSvc.AddFavorite(ctx, &usecase.EntityRefInput{EntityRef: "product:1"}))

	view, ok := f.service.Entity(entity.ProductKey(1))
	require.True(t, ok)
	assert.True(t, view.(*entity.ProductView).Product.Userfields.Favorite())
}

func TestProductService_RemoveFavorite_ClearsFlag(t *testing.T) {
	f, productSvc := newProductFixture(t)
	ctx := context.Background()

	f.registry.Add(&entity.ProductView{Product: entity.Product{
		ID: 1, Name: "Milk", Userfields: entity.Userfields{entity.UserfieldFavorite: "1"},
	}})

	f.pantry.On("SetUserfields", ctx, 1, entity.Userfields{entity.UserfieldFavorite: "0"}).Return(nil).Once()
	f.expectProductsRefresh(ctx, []entity.Product{{
		ID: 1, Name: "Milk", Userfields: entity.Userfields{entity.UserfieldFavorite: "0"},
	}})
	f.platform.On("PublishState", ctx, mock.Anything).Return(nil).Once()
	f.events.On("Publish", ctx, mock.MatchedBy(func(event service.Event) bool {
		return event.Name == service.EventProductUpdated
	})).Return(nil).Once()

	require.NoError(t, productSvc.RemoveFavorite(ctx, &usecase.EntityRefInput{EntityRef: "product:1"}))
}
