package api

import (
	"shop_system/internal/config"     // Application configuration
	"shop_system/internal/domain"     // Role constants
	"shop_system/internal/middleware" // Auth and role middleware

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter assembles the gin engine with all routes under /api/v1
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	r := gin.Default() // Gin router instance

	// CORS policy from configuration
	corsCfg := cors.DefaultConfig()
	if cfg.CORSOrigin == "*" {
		corsCfg.AllowAllOrigins = true // Open policy for development
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSOrigin} // Restricted origin
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization") // Bearer tokens pass through CORS
	r.Use(cors.New(corsCfg))

	// Uploaded product images are served statically
	r.Static("/uploads", cfg.UploadDir)

	// Health probe
	r.GET("/", func(c *gin.Context) {
		c.String(200, "server ok") // Liveness response
	})

	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret)           // Token check
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)        // Catalog mutations
	anyUser := middleware.RequireRoles(domain.RoleUser, domain.RoleAdmin) // Cart and orders

	v1 := r.Group("/api/v1") // Versioned prefix

	// Auth routes (public)
	v1.POST("/auth/sign-up", SignUpHandler(db, cfg.JWTSecret)) // Registration endpoint
	v1.POST("/auth/sign-in", SignInHandler(db, cfg.JWTSecret)) // Login endpoint

	// Category routes; reads public, writes admin-only
	v1.GET("/categories", ListCategoriesHandler(db, rdb))                      // List categories
	v1.GET("/categories/:id", GetCategoryHandler(db))                          // Fetch one category
	v1.POST("/categories", auth, adminOnly, CreateCategoryHandler(db, rdb))    // Create category
	v1.PUT("/categories/:id", auth, adminOnly, UpdateCategoryHandler(db, rdb)) // Update category
	v1.DELETE("/categories/:id", auth, adminOnly, DeleteCategoryHandler(db, rdb)) // Delete category

	// Product routes; reads public, writes admin-only
	v1.GET("/products", ListProductsHandler(db, rdb))                                         // Filtered, paginated listing
	v1.GET("/products/:id", GetProductHandler(db))                                            // Fetch one product
	v1.POST("/products", auth, adminOnly, CreateProductHandler(db, rdb, cfg.UploadDir))       // Create product with image
	v1.PUT("/products/:id", auth, adminOnly, UpdateProductHandler(db, rdb, cfg.UploadDir))    // Update product
	v1.DELETE("/products/:id", auth, adminOnly, DeleteProductHandler(db, rdb))                // Delete product

	// Cart routes (authenticated)
	v1.POST("/cart", auth, anyUser, UpdateCartHandler(db)) // Upsert cart line
	v1.GET("/cart", auth, anyUser, ViewCartHandler(db))    // View cart

	// Order routes (authenticated)
	v1.POST("/orders", auth, anyUser, PlaceOrderHandler(db))              // Place order
	v1.GET("/orders/history", auth, anyUser, GetOrderHistoryHandler(db)) // Order history

	return r
}
