// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"agriconnect/config"
	"agriconnect/internal/delivery/http/middleware"
	"agriconnect/internal/delivery/http/router/handler"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config           *config.Config
	AccountHandler   *handler.AccountHandler
	CatalogHandler   *handler.CatalogHandler
	OrderHandler     *handler.OrderHandler
	AdminHandler     *handler.AdminHandler
	RatingHandler    *handler.RatingHandler
	FarmerHandler    *handler.FarmerHandler
	SoilTestHandler  *handler.SoilTestHandler
	FeedbackHandler  *handler.FeedbackHandler
	CommunityHandler *handler.CommunityHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the routes for the configured edition.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params
	auth := p.AuthMiddleware
	login := auth.RequireLogin
	anyAdmin := auth.RequireRole(domainerrors.ErrAdminOnly, entity.RoleAdmin, entity.RoleFieldAdmin)
	orderAdmin := auth.RequireRole(domainerrors.ErrAdminOnly, entity.RoleAdmin)
	fieldAdmin := auth.RequireRole(domainerrors.ErrAdminOnly, entity.RoleFieldAdmin)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Everything else sees the caller, if any
	g := e.Group("", auth.Authenticate)

	// Accounts
	loginLimiter := middleware.NewLoginRateLimiter(p.Config)
	g.POST("/signup", p.AccountHandler.Signup)
	g.POST("/api/signup", p.AccountHandler.APISignup)
	g.POST("/login", p.AccountHandler.Login, loginLimiter)
	g.POST("/api/login", p.AccountHandler.Login, loginLimiter)
	g.GET("/logout", p.AccountHandler.Logout)
	g.POST("/api/logout", p.AccountHandler.APILogout)
	g.GET("/checkout", p.AccountHandler.Checkout)
	g.GET("/api/me", p.AccountHandler.Me, login)
	g.GET("/api/profile", p.AccountHandler.Profile, login)
	g.POST("/api/update-user-details", p.AccountHandler.UpdateDetails, login)

	// Catalog
	g.GET("/api/products", p.CatalogHandler.FarmProducts)
	g.GET("/api/products/:id", p.CatalogHandler.FarmProduct)
	g.GET("/api/home-products", p.CatalogHandler.HomeProducts)
	g.GET("/api/products-by-category", p.CatalogHandler.ProductsByCategory)
	g.GET("/api/product/:id", p.CatalogHandler.ProductPage)
	g.GET("/api/dealers", p.CatalogHandler.Dealers)

	// Orders
	g.POST("/create-razorpay-order", p.OrderHandler.CreatePaymentOrder)
	g.POST("/create-order", p.OrderHandler.CreateOrder, login)
	g.POST("/verify-payment", p.OrderHandler.VerifyPayment)
	g.POST("/api/place-order", p.OrderHandler.PlaceOrder, login)
	g.GET("/api/download-invoice/:id", p.OrderHandler.Invoice, login)
	g.GET("/api/orders/:id/delivery-qr", p.OrderHandler.DeliveryQR, login)

	// Admin console
	g.GET("/api/admin/dashboard", p.AdminHandler.Dashboard, anyAdmin)
	g.GET("/api/admin/orders", p.AdminHandler.ListOrders, orderAdmin)
	g.GET("/api/get-order-items/:id", p.AdminHandler.OrderItems, anyAdmin)
	g.POST("/api/update-order-status", p.AdminHandler.UpdateOrderStatus, anyAdmin)
	g.POST("/api/update-soil-test-status", p.AdminHandler.UpdateSoilTestStatus, anyAdmin)
	g.GET("/api/admin/notifications", p.AdminHandler.Notifications, fieldAdmin)

	// Ratings
	g.POST("/api/submit-rating", p.RatingHandler.SubmitProductRating, login)
	g.POST("/api/farmers/:username/ratings", p.RatingHandler.SubmitFarmerRating, login)
	g.GET("/api/farmers/:username/ratings", p.RatingHandler.FarmerRating)

	if p.Config.Env.Edition != config.EditionAgriConnect {
		return
	}

	g.POST("/api/feedback", p.FeedbackHandler.Submit)
	g.POST("/api/book-soil-test", p.SoilTestHandler.Book, login)

	farmer := g.Group("/api/farmer", auth.RequireRole(domainerrors.ErrFarmerOnly, entity.RoleFarmer))
	{
		farmer.POST("/add-product", p.FarmerHandler.AddProduct)
		farmer.GET("/products", p.FarmerHandler.ListProducts)
		farmer.PUT("/update-product/:id", p.FarmerHandler.UpdateProduct)
		farmer.DELETE("/delete-product/:id", p.FarmerHandler.DeleteProduct)
		farmer.GET("/notifications", p.FarmerHandler.Notifications)
		farmer.PUT("/mark-notification-read/:id", p.FarmerHandler.MarkNotificationRead)
		farmer.DELETE("/clear-notifications", p.FarmerHandler.ClearNotifications)
	}

	community := g.Group("/api/community")
	{
		community.GET("/posts", p.CommunityHandler.ListPosts)
		community.POST("/posts", p.CommunityHandler.CreatePost, login)
		community.POST("/posts/:id/replies", p.CommunityHandler.Reply, login)
		community.DELETE("/posts/:id", p.CommunityHandler.DeletePost, login)
	}
}
