// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ProductHandler    *handler.ProductHandler
	CategoryHandler   *handler.CategoryHandler
	CartHandler       *handler.CartHandler
	OrderHandler      *handler.OrderHandler
	UserHandler       *handler.UserHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	productHandler    *handler.ProductHandler
	categoryHandler   *handler.CategoryHandler
	cartHandler       *handler.CartHandler
	orderHandler      *handler.OrderHandler
	userHandler       *handler.UserHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		productHandler:    params.ProductHandler,
		categoryHandler:   params.CategoryHandler,
		cartHandler:       params.CartHandler,
		orderHandler:      params.OrderHandler,
		userHandler:       params.UserHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the routes for the storefront. Every route runs
// inside the session middleware; admin groups add the role guard on top.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint, outside the session scope.
	e.GET("/health", handler.HealthCheck)

	root := e.Group("", r.sessionMiddleware.Resolve)

	// Public catalog
	root.GET("/products", r.productHandler.List)
	root.GET("/products/search", r.productHandler.Search)
	root.GET("/products/:id", r.productHandler.Get)
	root.GET("/categories", r.categoryHandler.List)

	// Identity
	authGroup := root.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/logout", r.userHandler.Logout)
		authGroup.GET("/me", r.userHandler.Me)
	}

	// Session cart
	cartGroup := root.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.Get)
		cartGroup.DELETE("", r.cartHandler.Clear)
		cartGroup.POST("/items", r.cartHandler.Add)
		cartGroup.PUT("/items/:productID", r.cartHandler.SetQuantity)
		cartGroup.DELETE("/items/:productID", r.cartHandler.Remove)
		cartGroup.POST("/items/:productID/increase", r.cartHandler.Increase)
		cartGroup.POST("/items/:productID/decrease", r.cartHandler.Decrease)
	}

	// Checkout and customer order self-service
	root.GET("/checkout", r.orderHandler.Quote)
	root.POST("/checkout", r.orderHandler.Place)
	root.GET("/orders/mine", r.orderHandler.MyOrders)
	root.GET("/orders/:id", r.orderHandler.Confirmation)
	root.POST("/orders/:id/cancel", r.orderHandler.Cancel)
	root.GET("/orders/track", r.orderHandler.Track)
	root.GET("/orders/track/:number/slip", r.orderHandler.TrackingSlip)

	// Admin management, guarded by the role middleware
	adminGroup := root.Group("/admin", r.sessionMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/products", r.productHandler.List)
		adminGroup.POST("/products", r.productHandler.Create)
		adminGroup.PUT("/products/:id", r.productHandler.Update)
		adminGroup.DELETE("/products/:id", r.productHandler.Delete)

		adminGroup.POST("/categories", r.categoryHandler.Create)
		adminGroup.PUT("/categories/:id", r.categoryHandler.Update)
		adminGroup.DELETE("/categories/:id", r.categoryHandler.Delete)

		adminGroup.GET("/orders", r.orderHandler.List)
		adminGroup.GET("/orders/:id", r.orderHandler.Get)
		adminGroup.PUT("/orders/:id", r.orderHandler.Update)
		adminGroup.PUT("/orders/:id/status", r.orderHandler.UpdateStatus)
		adminGroup.DELETE("/orders/:id", r.orderHandler.Delete)

		adminGroup.GET("/users", r.userHandler.List)
		adminGroup.GET("/users/:id", r.userHandler.Get)
		adminGroup.POST("/users", r.userHandler.Create)
		adminGroup.PUT("/users/:id", r.userHandler.Update)
		adminGroup.DELETE("/users/:id", r.userHandler.Delete)
	}
}
