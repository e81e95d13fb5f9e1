package api

import (
	"net/http"                    // HTTP status codes
	"shop_system/internal/domain" // Importing domain models
	"shop_system/internal/utils"  // Utility functions
	"strings"                     // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for sign-up
type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`           // Name must be provided
	Email    string `json:"email" binding:"required,email"`    // Valid email required
	Password string `json:"password" binding:"required,min=6"` // Password of at least 6 characters
}

// Request struct for sign-in
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"` // Valid email required
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// SignUpHandler registers a new user and returns a JWT token
func SignUpHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignUpRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return the field-level validation envelope
			utils.ValidationErrorResponse(c, err)
			return
		}
		email := strings.ToLower(req.Email) // Emails compared case-insensitively
		var existing domain.User            // Check for an existing account
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			// Duplicate email, reject the registration
			utils.ErrorResponse(c, http.StatusBadRequest, "User already exists")
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user := domain.User{
			Name:     req.Name,        // Display name
			Email:    email,           // Normalized email
			Password: string(hash),    // Hashed password
			Role:     domain.RoleUser, // New accounts are regular users
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// Unique index may still fire on a racing duplicate
			utils.ErrorResponse(c, http.StatusBadRequest, "User already exists")
			return
		}
		// Issue the bearer token for the new account
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}
		// Log the registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // New user ID
			"email":   email,   // Registered email
		}).Info("User registered")
		// Return success response with the token
		utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", AuthResponse{Token: token})
	}
}

// SignInHandler authenticates a user and returns a JWT token.
// Unknown email and wrong password produce the same message, so the
// response never reveals which of the two failed.
func SignInHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignInRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return the field-level validation envelope
			utils.ValidationErrorResponse(c, err)
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			// Unknown email, same message as a password mismatch
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}
		// Return the token in the response
		utils.SuccessResponse(c, http.StatusOK, "Login successful", AuthResponse{Token: token})
	}
}
