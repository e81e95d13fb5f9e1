package api

import (
	"errors"   // Sentinel errors for rollback reasons
	"net/http" // HTTP status codes

	"shop_system/internal/domain" // Importing domain models
	"shop_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Row locking clause
)

// Rollback reasons surfaced to the caller with distinct statuses
var (
	errProductNotFound   = errors.New("product not found")   // Unknown product in the request
	errInsufficientStock = errors.New("insufficient stock")  // Requested quantity exceeds stock
)

// One requested line of an order
type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"` // Target product
	Quantity  int    `json:"quantity" binding:"required,gte=1"` // At least one unit
}

// Request struct for order placement
type PlaceOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"` // At least one item
}

// PlaceOrderHandler places an order inside a single transaction: stock is
// checked and decremented per item in request order, line items snapshot
// the current price, and the first failing item rolls everything back.
// Duplicate product IDs are processed sequentially, so a later occurrence
// sees the stock already decremented by an earlier one.
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID") // Set by the JWT middleware
		var req PlaceOrderRequest       // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ValidationErrorResponse(c, err) // Zero-item lists are rejected here
			return
		}
		var order domain.Order // Created inside the transaction
		// Atomic placement: all decrements and line items commit together or not at all
		err := db.Transaction(func(tx *gorm.DB) error {
			// Placeholder total so line items can reference a valid order ID
			order = domain.Order{UserID: userID, TotalAmount: 0}
			if err := tx.Create(&order).Error; err != nil {
				return err // Return error to rollback
			}
			totalAmount := 0.0 // Accumulated over the line items
			// Process items strictly in request order
			for _, item := range req.Items {
				var product domain.Product // Locked for the rest of the transaction
				// FOR UPDATE serializes concurrent orders on the same product
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					First(&product, "id = ?", item.ProductID).Error; err != nil {
					return errProductNotFound // Abort on the first unknown product
				}
				// Stock check before any write for this line
				if product.Stock < item.Quantity {
					return errInsufficientStock // Abort, no partial commit
				}
				totalAmount += product.Price * float64(item.Quantity) // Accumulate the total
				// Snapshot the price; later product price changes never touch this row
				orderItem := domain.OrderItem{
					OrderID:      order.ID,      // Parent order
					ProductID:    product.ID,    // Ordered product
					Quantity:     item.Quantity, // Ordered quantity
					PriceAtOrder: product.Price, // Price snapshot
				}
				if err := tx.Create(&orderItem).Error; err != nil {
					return err // Return error to rollback
				}
				// Decrement stock and persist
				product.Stock -= item.Quantity
				if err := tx.Save(&product).Error; err != nil {
					return err // Return error to rollback
				}
			}
			// Finalize the order total
			order.TotalAmount = totalAmount
			if err := tx.Save(&order).Error; err != nil {
				return err // Return error to rollback
			}
			return nil // Commit transaction
		})
		// Handle transaction result
		if err != nil {
			// Map the rollback reason to its status
			switch {
			case errors.Is(err, errProductNotFound):
				utils.ErrorResponse(c, http.StatusNotFound, "Product not found")
			case errors.Is(err, errInsufficientStock):
				utils.ErrorResponse(c, http.StatusBadRequest, "Insufficient stock")
			default:
				// Log the unexpected failure with context
				logrus.WithFields(logrus.Fields{
					"user_id": userID,      // Ordering user
					"error":   err.Error(), // Error message
				}).Error("Order placement failed")
				utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to place order")
			}
			return
		}
		// Log the successful placement
		logrus.WithFields(logrus.Fields{
			"user_id":      userID,            // Ordering user
			"order_id":     order.ID,          // New order ID
			"total_amount": order.TotalAmount, // Final total
			"items":        len(req.Items),    // Number of requested lines
		}).Info("Order placed")
		utils.SuccessResponse(c, http.StatusCreated, "Order placed successfully", order)
	}
}

// GetOrderHistoryHandler returns the authenticated user's orders, newest first
func GetOrderHistoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID") // Set by the JWT middleware
		var orders []domain.Order       // Slice to hold orders
		// Fetch orders with line items and their products preloaded
		if err := db.Preload("Items.Product").
			Where("user_id = ?", userID).
			Order("created_at desc").
			Find(&orders).Error; err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch order history")
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Order history retrieved", orders)
	}
}
