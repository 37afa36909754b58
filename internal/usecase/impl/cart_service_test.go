package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"pantrylink/config"
	"pantrylink/internal/domain/entity"
	"pantrylink/internal/domain/service"
	"pantrylink/internal/infra/memory"
	mockSvc "pantrylink/internal/mocks/service"
	"pantrylink/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cartFixture struct {
	store    *mockSvc.MockStoreClient
	events   *mockSvc.MockEventPublisher
	snapshot *memory.Snapshot
	service  usecase.CartUsecase
}

func newCartFixture(t *testing.T, storeCfg *config.StoreConfig) *cartFixture {
	cfg := &config.Config{Store: storeCfg}
	cfg.Pantry.DefaultShoppingListID = 1

	f := &cartFixture{
		store:    mockSvc.NewMockStoreClient(t),
		events:   mockSvc.NewMockEventPublisher(t),
		snapshot: memory.NewSnapshot(),
	}
	f.service = NewCartService(CartServiceParams{
		Config:   cfg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:    f.store,
		Events:   f.events,
		Snapshot: f.snapshot,
	})

	return f
}

func TestCartService_FillCart_PushesResolvableItems(t *testing.T) {
	f := newCartFixture(t, &config.StoreConfig{Name: "Rami Levy", Username: "u", Password: "p"})
	ctx := context.Background()

	f.snapshot.ReplaceProducts([]entity.Product{
		{ID: 1, Userfields: entity.Userfields{entity.UserfieldMetadata: `{"id":5544}`}},
		{ID: 2}, // no vendor metadata, cannot be carted
	})
	f.snapshot.ReplaceShoppingListItems([]entity.ShoppingListItem{
		{ID: 1, ProductID: 1, ShoppingListID: 1, Amount: 2},
		{ID: 2, ProductID: 2, ShoppingListID: 1, Amount: 1},
		{ID: 3, ProductID: 1, ShoppingListID: 9, Amount: 7},
	})

	f.store.On("Login", ctx, "u", "p").Return(nil).Once()
	f.store.On("FillCart", ctx, []service.CartItem{{Code: 5544, Quantity: 2}}).Return(nil).Once()
	f.store.On("Logout", ctx).Return(nil).Once()
	f.store.On("Name").Return("Rami Levy")

	require.NoError(t, f.service.FillCart(ctx, &usecase.FillCartInput{}))
}

func TestCartService_FillCart_NothingResolvableSkipsLogin(t *testing.T) {
	f := newCartFixture(t, &config.StoreConfig{Name: "Rami Levy", Username: "u", Password: "p"})

	// Empty snapshot: no login, no cart call.
	require.NoError(t, f.service.FillCart(context.Background(), &usecase.FillCartInput{}))
}

func TestCartService_FillCart_LoginFailure(t *testing.T) {
	f := newCartFixture(t, &config.StoreConfig{Name: "Rami Levy", Username: "u", Password: "bad"})
	ctx := context.Background()

	f.snapshot.ReplaceProducts([]entity.Product{
		{ID: 1, Userfields: entity.Userfields{entity.UserfieldMetadata: `{"id":5544}`}},
	})
	f.snapshot.ReplaceShoppingListItems([]entity.ShoppingListItem{
		{ID: 1, ProductID: 1, ShoppingListID: 1, Amount: 1},
	})

	f.store.On("Login", ctx, "u", "bad").Return(errors.New("credentials rejected")).Once()
	f.events.On("Publish", ctx, mock.MatchedBy(func(event service.Event) bool {
		return event.Name == service.EventError
	})).Return(nil).Once()

	err := f.service.FillCart(ctx, &usecase.FillCartInput{})
	require.Error(t, err)
}

func TestCartService_EmptyCart_WithoutStoreConfigIsUnsupported(t *testing.T) {
	f := newCartFixture(t, nil)
	ctx := context.Background()

	f.events.On("Publish", ctx, mock.MatchedBy(func(event service.Event) bool {
		return event.Name == service.EventError
	})).Return(nil).Once()

	err := f.service.EmptyCart(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrCartUnsupported))
}

func TestCartService_EmptyCart_Success(t *testing.T) {
	f := newCartFixture(t, &config.StoreConfig{Name: "Rami Levy", Username: "u", Password: "p"})
	ctx := context.Background()

	f.store.On("Login", ctx, "u", "p").Return(nil).Once()
	f.store.On("EmptyCart", ctx).Return(nil).Once()
	f.store.On("Logout", ctx).Return(nil).Once()

	require.NoError(t, f.service.EmptyCart(ctx))
}
