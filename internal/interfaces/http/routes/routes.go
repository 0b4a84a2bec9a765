// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {
	authHandler := handlers.NewAuthHandler(db, cfg, log)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/me", authHandler.Profile)
		}
	}
}

// SetupCatalogRoutes sets up the public catalog: products, services,
// gallery, site settings and the contact form.
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {
	productHandler := handlers.NewProductHandler(db, cfg, log)
	offeringHandler := handlers.NewOfferingHandler(db, log)
	galleryHandler := handlers.NewGalleryHandler(db, log)
	settingsHandler := handlers.NewSettingsHandler(db, log)
	contactHandler := handlers.NewContactHandler(db, cfg, log)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/categories", productHandler.Categories)
		products.GET("/:id", productHandler.Get)
	}

	services := rg.Group("/services")
	{
		services.GET("", offeringHandler.List)
		services.GET("/:id", offeringHandler.Get)
	}

	rg.GET("/gallery", galleryHandler.List)
	rg.GET("/settings", settingsHandler.Get)
	rg.POST("/contact", contactHandler.Submit)
}

// SetupCartRoutes sets up shopping cart routes. The cart works for both
// anonymous sessions and signed-in users, so auth is optional.
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg, log)

	carts := rg.Group("/cart")
	carts.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		carts.GET("", cartHandler.GetCart)
		carts.DELETE("", cartHandler.Clear)
		carts.POST("/items", cartHandler.AddItem)
		carts.PUT("/items/:id", cartHandler.UpdateItem)
		carts.DELETE("/items/:id", cartHandler.RemoveItem)
		carts.POST("/merge", cartHandler.Merge)
	}
}

// SetupCheckoutRoutes sets up order submission routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger, feed *handlers.OrderFeed) {
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, cfg, log, feed)

	co := rg.Group("/checkout")
	co.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		co.POST("", checkoutHandler.Submit)
		co.POST("/resume", checkoutHandler.Resume)
	}
}

// SetupOrderRoutes sets up shopper-facing order routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, log *logrus.Logger, feed *handlers.OrderFeed) {
	orderHandler := handlers.NewOrderHandler(db, cfg, log, feed)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.ListMine)
		orders.GET("/:id", orderHandler.Get)
	}
}

// SetupPaymentRoutes sets up payment routes. The callback is unauthenticated
// because the gateway posts to it server-to-server; its HMAC is the auth.
func SetupPaymentRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {
	paymentHandler := handlers.NewPaymentHandler(db, cfg, log)

	payments := rg.Group("/payment")
	{
		payments.POST("/callback", paymentHandler.Callback)

		protected := payments.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/orders/:id", paymentHandler.Initiate)
		}
	}
}

// SetupAdminRoutes sets up the back office
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, log *logrus.Logger, feed *handlers.OrderFeed) {
	productHandler := handlers.NewProductHandler(db, cfg, log)
	offeringHandler := handlers.NewOfferingHandler(db, log)
	galleryHandler := handlers.NewGalleryHandler(db, log)
	settingsHandler := handlers.NewSettingsHandler(db, log)
	contactHandler := handlers.NewContactHandler(db, cfg, log)
	orderHandler := handlers.NewOrderHandler(db, cfg, log, feed)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		products := admin.Group("/products")
		{
			products.POST("", productHandler.Create)
			products.GET("/export", productHandler.Export)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		services := admin.Group("/services")
		{
			services.POST("", offeringHandler.Create)
			services.PUT("/:id", offeringHandler.Update)
			services.DELETE("/:id", offeringHandler.Delete)
		}

		galleries := admin.Group("/gallery")
		{
			galleries.POST("", galleryHandler.Create)
			galleries.PUT("/:id", galleryHandler.Update)
			galleries.DELETE("/:id", galleryHandler.Delete)
		}

		siteSettings := admin.Group("/settings")
		{
			siteSettings.PUT("", settingsHandler.Update)
			siteSettings.GET("/payment", settingsHandler.GetPayment)
			siteSettings.PUT("/payment", settingsHandler.UpdatePayment)
		}

		contacts := admin.Group("/contact-requests")
		{
			contacts.GET("", contactHandler.List)
			contacts.PUT("/:id/status", contactHandler.UpdateStatus)
			contacts.POST("/:id/notes", contactHandler.AddNote)
			contacts.DELETE("/:id", contactHandler.Delete)
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", orderHandler.ListAll)
			orders.GET("/feed", feed.Serve)
			orders.GET("/:id/invoice", orderHandler.Invoice)
			orders.PUT("/:id/status", orderHandler.UpdateStatus)
		}
	}
}
