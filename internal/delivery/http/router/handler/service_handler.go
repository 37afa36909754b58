package handler

import (
	"context"
	"log/slog"
	"net/http"

	"pantrylink/internal/delivery/http/response"
	"pantrylink/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ServiceHandlerParams holds dependencies for ServiceHandler, injected by Fx.
type ServiceHandlerParams struct {
	fx.In

	ListUC    usecase.ListUsecase
	ProductUC usecase.ProductUsecase
	CartUC    usecase.CartUsecase
	SyncUC    usecase.SyncUsecase
	Logger    *slog.Logger
}

// ServiceHandler exposes the command surface of the integration.
type ServiceHandler struct {
	listUC    usecase.ListUsecase
	productUC usecase.ProductUsecase
	cartUC    usecase.CartUsecase
	syncUC    usecase.SyncUsecase
	logger    *slog.Logger
}

// NewServiceHandler is the constructor for ServiceHandler
func NewServiceHandler(params ServiceHandlerParams) *ServiceHandler {
	return &ServiceHandler{
		listUC:    params.ListUC,
		productUC: params.ProductUC,
		cartUC:    params.CartUC,
		syncUC:    params.SyncUC,
		logger:    params.Logger,
	}
}

// AddToList handles adding a product to a shopping list
func (h *ServiceHandler) AddToList(c echo.Context) error {
	var req usecase.ListInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shopping list input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.listUC.AddToList(c.Request().Context(), &req); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Product added to shopping list")
}

// SubtractFromList handles subtracting a product from a shopping list
func (h *ServiceHandler) SubtractFromList(c echo.Context) error {
	var req usecase.ListInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shopping list input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.listUC.SubtractFromList(c.Request().Context(), &req); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Product subtracted from shopping list")
}

// ClearList handles clearing a shopping list
func (h *ServiceHandler) ClearList(c echo.Context) error {
	var req usecase.ClearListInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shopping list input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.listUC.ClearList(c.Request().Context(), &req); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Shopping list cleared")
}

// CompleteItem handles toggling a shopping list item's done flag
func (h *ServiceHandler) CompleteItem(c echo.Context) error {
	var req usecase.CompleteItemInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.listUC.CompleteItem(c.Request().Context(), &req); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Shopping list item updated")
}

// AddProduct handles adding a product by store barcode
func (h *ServiceHandler) AddProduct(c echo.Context) error {
	var req usecase.AddProductInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.productUC.AddProduct(c.Request().Context(), &req); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Product added")
}

// RemoveProduct handles removing a product
func (h *ServiceHandler) RemoveProduct(c echo.Context) error {
	return h.entityRefCommand(c, h.productUC.RemoveProduct, "Product removed")
}

// AddFavorite handles flagging a product as favorite
func (h *ServiceHandler) AddFavorite(c echo.Context) error {
	return h.entityRefCommand(c, h.productUC.AddFavorite, "Product marked as favorite")
}

// RemoveFavorite handles clearing a product's favorite flag
func (h *ServiceHandler) RemoveFavorite(c echo.Context) error {
	return h.entityRefCommand(c, h.productUC.RemoveFavorite, "Product unmarked as favorite")
}

// Sync handles running the full sync pipeline
func (h *ServiceHandler) Sync(c echo.Context) error {
	if err := h.syncUC.Sync(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Sync completed")
}

// FillCart handles pushing a shopping list to the store cart
func (h *ServiceHandler) FillCart(c echo.Context) error {
	var req usecase.FillCartInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.cartUC.FillCart(c.Request().Context(), &req); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Cart filled")
}

// EmptyCart handles emptying the store cart
func (h *ServiceHandler) EmptyCart(c echo.Context) error {
	if err := h.cartUC.EmptyCart(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Cart emptied")
}

func (h *ServiceHandler) entityRefCommand(c echo.Context, op func(ctx context.Context, input *usecase.EntityRefInput) error, message string) error {
	var req usecase.EntityRefInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid entity reference")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := op(c.Request().Context(), &req); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, message)
}
