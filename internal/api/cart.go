package api

import (
	"net/http" // HTTP status codes

	"shop_system/internal/domain" // Importing domain models
	"shop_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for the cart upsert; quantity is a pointer so that an
// explicit 0 (remove the line) passes the required check
type UpdateCartRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"` // Target product
	Quantity  *int   `json:"quantity" binding:"required,gte=0"` // New quantity; 0 removes the line
}

// UpdateCartHandler upserts the (user, product) cart line.
// Quantity 0 deletes an existing line and creates nothing otherwise.
// Stock is not checked here; only order placement reserves stock.
func UpdateCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID") // Set by the JWT middleware
		var req UpdateCartRequest       // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ValidationErrorResponse(c, err) // Field-level validation envelope
			return
		}
		quantity := *req.Quantity  // Requested quantity
		var product domain.Product // The product must exist
		if err := db.First(&product, "id = ?", req.ProductID).Error; err != nil {
			utils.ErrorResponse(c, http.StatusNotFound, "Product not found")
			return
		}
		var line domain.CartItem // Existing line for this (user, product) pair
		err := db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&line).Error
		if err == nil {
			// Line exists: 0 removes it, anything else replaces the quantity
			if quantity == 0 {
				if err := db.Delete(&line).Error; err != nil {
					utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update cart")
					return
				}
			} else {
				line.Quantity = quantity // Replace, not accumulate
				if err := db.Save(&line).Error; err != nil {
					utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update cart")
					return
				}
			}
		} else if quantity > 0 {
			// No line yet: create one capturing the current price
			line = domain.CartItem{
				UserID:     userID,        // Owning user
				ProductID:  product.ID,    // Target product
				Quantity:   quantity,      // Requested quantity
				PriceAtAdd: product.Price, // Price snapshot at add time
			}
			if err := db.Create(&line).Error; err != nil {
				utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update cart")
				return
			}
		}
		// Quantity 0 with no existing line falls through as a no-op
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,        // Cart owner
			"product_id": req.ProductID, // Target product
			"quantity":   quantity,      // New quantity
		}).Info("Cart updated") // Log the cart mutation
		utils.SuccessResponse(c, http.StatusOK, "Cart updated", nil)
	}
}

// ViewCartHandler returns the authenticated user's cart lines
func ViewCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID") // Set by the JWT middleware
		var lines []domain.CartItem     // Slice to hold cart lines
		// Fetch lines with their products preloaded
		if err := db.Preload("Product").Where("user_id = ?", userID).Find(&lines).Error; err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Cart retrieved", lines)
	}
}
