package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"shop_system/internal/domain" // Importing domain models
	"shop_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Cache key for the category list
const categoryListCacheKey = "categories:all"

// Request struct for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"` // Name must be provided
	Description string `json:"description"`             // Optional description
}

// Request struct for updating a category; both fields optional
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`        // New name, if set
	Description *string `json:"description"` // New description, if set
}

// CreateCategoryHandler creates a new category (admin only)
func CreateCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ValidationErrorResponse(c, err) // Field-level validation envelope
			return
		}
		var existing domain.Category // Check for a duplicate name
		if err := db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Category already exists")
			return
		}
		category := domain.Category{Name: req.Name, Description: req.Description}
		// Attempt to create the category
		if err := db.Create(&category).Error; err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create category")
			return
		}
		// Invalidate the cached list
		_ = utils.DeleteCache(context.Background(), rdb, categoryListCacheKey)
		// Log the mutation
		logrus.WithFields(logrus.Fields{
			"category_id": category.ID,   // New category ID
			"name":        category.Name, // Category name
		}).Info("Category created")
		utils.SuccessResponse(c, http.StatusCreated, "Category created successfully", category)
	}
}

// ListCategoriesHandler returns all categories, served from cache when possible
func ListCategoriesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()      // Context for Redis operations
		var categories []domain.Category // Slice to hold categories
		// Try the cache first
		found, err := utils.GetCache(ctx, rdb, categoryListCacheKey, &categories)
		if err == nil && found {
			utils.SuccessResponse(c, http.StatusOK, "Categories fetched successfully", categories)
			return
		}
		// Cache miss, fetch from the database
		if err := db.Order("name asc").Find(&categories).Error; err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch categories")
			return
		}
		// Cache the list for 60 seconds
		_ = utils.SetCache(ctx, rdb, categoryListCacheKey, categories, 60*time.Second)
		utils.SuccessResponse(c, http.StatusOK, "Categories fetched successfully", categories)
	}
}

// GetCategoryHandler returns a single category by ID
func GetCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category domain.Category // Fetch category from database
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			utils.ErrorResponse(c, http.StatusNotFound, "Category not found")
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Category fetched successfully", category)
	}
}

// UpdateCategoryHandler updates a category's name and/or description (admin only)
func UpdateCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateCategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ValidationErrorResponse(c, err) // Field-level validation envelope
			return
		}
		var category domain.Category // Fetch category from database
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			utils.ErrorResponse(c, http.StatusNotFound, "Category not found")
			return
		}
		// Apply only the provided fields
		if req.Name != nil {
			category.Name = *req.Name // New name
		}
		if req.Description != nil {
			category.Description = *req.Description // New description
		}
		// Persist the changes
		if err := db.Save(&category).Error; err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update category")
			return
		}
		// Invalidate the cached list
		_ = utils.DeleteCache(context.Background(), rdb, categoryListCacheKey)
		utils.SuccessResponse(c, http.StatusOK, "Category updated successfully", category)
	}
}

// DeleteCategoryHandler deletes a category by ID (admin only)
func DeleteCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category domain.Category // Fetch category from database
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			utils.ErrorResponse(c, http.StatusNotFound, "Category not found")
			return
		}
		// Delete the category; products cascade at the schema level
		if err := db.Delete(&category).Error; err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete category")
			return
		}
		// Invalidate cached category and product listings
		ctx := context.Background()
		_ = utils.DeleteCache(ctx, rdb, categoryListCacheKey)
		_ = utils.DeleteCacheByPrefix(ctx, rdb, productListCachePrefix)
		// Log the mutation
		logrus.WithFields(logrus.Fields{
			"category_id": category.ID,   // Deleted category ID
			"name":        category.Name, // Category name
		}).Info("Category deleted")
		utils.SuccessResponse(c, http.StatusOK, "Category deleted successfully", nil)
	}
}
