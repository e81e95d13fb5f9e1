package api

import (
	"context"       // Context for Redis operations
	"net/http"      // HTTP status codes
	"os"            // Removing replaced image files
	"path/filepath" // Upload path handling
	"strconv"       // String conversion
	"strings"       // String manipulation
	"time"          // Cache TTL

	"shop_system/internal/domain" // Importing domain models
	"shop_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/google/uuid"       // Unique upload filenames
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Prefix for query-keyed product listing cache entries
const productListCachePrefix = "products:list:"

// Sortable columns for the product listing
var productSortFields = map[string]string{
	"name":      "name",       // Sort by product name
	"price":     "price",      // Sort by unit price
	"stock":     "stock",      // Sort by available stock
	"createdAt": "created_at", // Sort by creation time
}

// Request struct for creating a product (multipart form)
type CreateProductRequest struct {
	Name        string  `form:"name" binding:"required"`            // Name must be provided
	Description string  `form:"description"`                        // Optional description
	Price       float64 `form:"price" binding:"required,gt=0"`      // Price must be positive
	Stock       int     `form:"stock" binding:"gte=0"`              // Stock never negative
	CategoryID  string  `form:"categoryId" binding:"required,uuid"` // Owning category
}

// Request struct for updating a product; all fields optional
type UpdateProductRequest struct {
	Name        *string  `form:"name"`                                // New name, if set
	Description *string  `form:"description"`                         // New description, if set
	Price       *float64 `form:"price" binding:"omitempty,gt=0"`      // New price, if set
	Stock       *int     `form:"stock" binding:"omitempty,gte=0"`     // New stock, if set
	CategoryID  *string  `form:"categoryId" binding:"omitempty,uuid"` // New category, if set
}

// ProductListResponse is the paginated listing payload
type ProductListResponse struct {
	Products   []domain.Product `json:"products"`   // Page of products
	Page       int              `json:"page"`       // Current page, 1-indexed
	Limit      int              `json:"limit"`      // Page size
	Total      int64            `json:"total"`      // Total matching products
	TotalPages int              `json:"totalPages"` // Total pages
}

// saveProductImage stores an uploaded image under the upload directory
// with a UUID filename and returns its public URL path
func saveProductImage(c *gin.Context, uploadDir string) (string, error) {
	file, err := c.FormFile("image") // The uploaded image
	if err != nil {
		return "", err // No file attached
	}
	filename := uuid.NewString() + filepath.Ext(file.Filename) // Unique name keeps uploads from colliding
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
		return "", err // Disk write failed
	}
	return "/uploads/" + filename, nil // Public path served by the static route
}

// CreateProductHandler creates a product with an uploaded image (admin only)
func CreateProductHandler(db *gorm.DB, rdb *redis.Client, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest // Bind multipart form to struct
		if err := c.ShouldBind(&req); err != nil {
			utils.ValidationErrorResponse(c, err) // Field-level validation envelope
			return
		}
		var category domain.Category // The owning category must exist
		if err := db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
			utils.ErrorResponse(c, http.StatusNotFound, "Category not found")
			return
		}
		// Image file is required on creation
		if _, err := c.FormFile("image"); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Image is required")
			return
		}
		// Store the image and record its URL
		imageURL, err := saveProductImage(c, uploadDir)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to store image")
			return
		}
		product := domain.Product{
			Name:        req.Name,        // Product name
			Description: req.Description, // Optional description
			Price:       req.Price,       // Unit price
			Stock:       req.Stock,       // Initial stock
			ImageURL:    imageURL,        // Stored image path
			CategoryID:  req.CategoryID,  // Owning category
		}
		// Attempt to create the product
		if err := db.Create(&product).Error; err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create product")
			return
		}
		// Invalidate every cached listing
		_ = utils.DeleteCacheByPrefix(context.Background(), rdb, productListCachePrefix)
		// Log the mutation
		logrus.WithFields(logrus.Fields{
			"product_id":  product.ID,         // New product ID
			"name":        product.Name,       // Product name
			"category_id": product.CategoryID, // Owning category
		}).Info("Product created")
		utils.SuccessResponse(c, http.StatusCreated, "Product created successfully", product)
	}
}

// ListProductsHandler returns a filtered, sorted, paginated product page.
// Filters: minPrice/maxPrice (inclusive), categoryId (exact), search
// (case-insensitive substring on the name). Defaults: name ascending,
// page 1, limit 10.
func ListProductsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		// Listing cache is keyed by the raw query string
		cacheKey := productListCachePrefix + c.Request.URL.RawQuery
		var resp ProductListResponse // Listing payload
		// Try the cache first
		found, err := utils.GetCache(ctx, rdb, cacheKey, &resp)
		if err == nil && found {
			utils.SuccessResponse(c, http.StatusOK, "Products retrieved successfully", resp)
			return
		}
		query := db.Model(&domain.Product{}).Preload("Category") // Base query
		// Inclusive price range, either bound optional
		if mp := c.Query("minPrice"); mp != "" {
			v, err := strconv.ParseFloat(mp, 64)
			if err != nil {
				utils.ErrorResponse(c, http.StatusBadRequest, "Invalid minPrice")
				return
			}
			query = query.Where("price >= ?", v) // Lower bound
		}
		if mp := c.Query("maxPrice"); mp != "" {
			v, err := strconv.ParseFloat(mp, 64)
			if err != nil {
				utils.ErrorResponse(c, http.StatusBadRequest, "Invalid maxPrice")
				return
			}
			query = query.Where("price <= ?", v) // Upper bound
		}
		// Exact category match
		if cid := c.Query("categoryId"); cid != "" {
			query = query.Where("category_id = ?", cid)
		}
		// Case-insensitive substring match on the name
		if search := c.Query("search"); search != "" {
			query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
		}
		// Sorting, default name ascending
		sortBy := c.DefaultQuery("sortBy", "name")
		column, ok := productSortFields[sortBy] // Whitelisted columns only
		if !ok {
			column = "name" // Fall back to the default
		}
		sortOrder := strings.ToLower(c.DefaultQuery("sortOrder", "asc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "asc" // Fall back to ascending
		}
		page := 1   // Default page, 1-indexed
		limit := 10 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		if l := c.Query("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
				limit = v // Set page size if valid
			}
		}
		offset := (page - 1) * limit // Calculate offset for pagination
		var total int64              // Total matching products
		if err := query.Count(&total).Error; err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to count products")
			return
		}
		var products []domain.Product // Slice to hold the page
		if err := query.Order(column + " " + sortOrder).Offset(offset).Limit(limit).Find(&products).Error; err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}
		resp = ProductListResponse{
			Products:   products,                             // Page of products
			Page:       page,                                 // Current page
			Limit:      limit,                                // Page size
			Total:      total,                                // Total matching products
			TotalPages: (int(total) + limit - 1) / limit,     // Total pages
		}
		// Cache the page for 60 seconds
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		utils.SuccessResponse(c, http.StatusOK, "Products retrieved successfully", resp)
	}
}

// GetProductHandler returns a single product with its category
func GetProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product domain.Product // Fetch product from database
		if err := db.Preload("Category").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			utils.ErrorResponse(c, http.StatusNotFound, "Product not found")
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Product retrieved successfully", product)
	}
}

// UpdateProductHandler updates product fields and optionally replaces the image (admin only)
func UpdateProductHandler(db *gorm.DB, rdb *redis.Client, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProductRequest // Bind multipart form to struct
		if err := c.ShouldBind(&req); err != nil {
			utils.ValidationErrorResponse(c, err) // Field-level validation envelope
			return
		}
		var product domain.Product // Fetch product from database
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			utils.ErrorResponse(c, http.StatusNotFound, "Product not found")
			return
		}
		// Apply only the provided fields
		if req.Name != nil {
			product.Name = *req.Name // New name
		}
		if req.Description != nil {
			product.Description = *req.Description // New description
		}
		if req.Price != nil {
			product.Price = *req.Price // New price; existing OrderItem snapshots keep the old one
		}
		if req.Stock != nil {
			product.Stock = *req.Stock // New stock level
		}
		if req.CategoryID != nil {
			var category domain.Category // The new category must exist
			if err := db.First(&category, "id = ?", *req.CategoryID).Error; err != nil {
				utils.ErrorResponse(c, http.StatusNotFound, "Category not found")
				return
			}
			product.CategoryID = *req.CategoryID // New category
		}
		// Replace the image when a new file is attached
		if _, err := c.FormFile("image"); err == nil {
			imageURL, err := saveProductImage(c, uploadDir)
			if err != nil {
				utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to store image")
				return
			}
			// Remove the previous file from disk
			if old := strings.TrimPrefix(product.ImageURL, "/uploads/"); old != product.ImageURL {
				_ = os.Remove(filepath.Join(uploadDir, old))
			}
			product.ImageURL = imageURL // New image path
		}
		// Persist the changes
		if err := db.Save(&product).Error; err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update product")
			return
		}
		// Invalidate every cached listing
		_ = utils.DeleteCacheByPrefix(context.Background(), rdb, productListCachePrefix)
		utils.SuccessResponse(c, http.StatusOK, "Product updated successfully", product)
	}
}

// DeleteProductHandler deletes a product by ID (admin only)
func DeleteProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product domain.Product // Fetch product from database
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			utils.ErrorResponse(c, http.StatusNotFound, "Product not found")
			return
		}
		// Delete the product
		if err := db.Delete(&product).Error; err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete product")
			return
		}
		// Invalidate every cached listing
		_ = utils.DeleteCacheByPrefix(context.Background(), rdb, productListCachePrefix)
		// Log the mutation
		logrus.WithFields(logrus.Fields{
			"product_id": product.ID,   // Deleted product ID
			"name":       product.Name, // Product name
		}).Info("Product deleted")
		utils.SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
	}
}
