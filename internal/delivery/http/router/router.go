// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pantrylink/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ServiceHandler *handler.ServiceHandler
	EntityHandler  *handler.EntityHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	serviceHandler *handler.ServiceHandler
	entityHandler  *handler.EntityHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		serviceHandler: params.ServiceHandler,
		entityHandler:  params.EntityHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Command surface
	services := e.Group("/services")
	{
		services.POST("/add_to_list", r.serviceHandler.AddToList)
		services.POST("/subtract_from_list", r.serviceHandler.SubtractFromList)
		services.POST("/clear_list", r.serviceHandler.ClearList)
		services.POST("/complete_item", r.serviceHandler.CompleteItem)
		services.POST("/add_product", r.serviceHandler.AddProduct)
		services.POST("/remove_product", r.serviceHandler.RemoveProduct)
		services.POST("/add_favorite", r.serviceHandler.AddFavorite)
		services.POST("/remove_favorite", r.serviceHandler.RemoveFavorite)
		services.POST("/sync", r.serviceHandler.Sync)
		services.POST("/fill_cart", r.serviceHandler.FillCart)
		services.POST("/empty_cart", r.serviceHandler.EmptyCart)
	}

	// Read surface
	e.GET("/entities", r.entityHandler.Entities)
	e.GET("/entities/:key", r.entityHandler.Entity)
	e.GET("/objects/:category", r.entityHandler.Objects)
	e.GET("/debug", r.entityHandler.Debug)
}
