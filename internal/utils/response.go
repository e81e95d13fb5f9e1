package utils

import (
	"errors" // Error unwrapping

	"github.com/gin-gonic/gin"                      // Gin web framework
	"github.com/go-playground/validator/v10"        // Validator used by gin's binding layer
)

// FieldError is one entry of the validation error list
type FieldError struct {
	Field   string `json:"field"`   // Name of the offending field
	Message string `json:"message"` // What is wrong with it
}

// SuccessResponse writes the uniform success envelope
func SuccessResponse(c *gin.Context, status int, message string, data any) {
	body := gin.H{
		"success": true,    // Operation succeeded
		"message": message, // Human-readable summary
	}
	if data != nil {
		body["data"] = data // Optional payload
	}
	c.JSON(status, body)
}

// ErrorResponse writes the uniform error envelope
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,   // Operation failed
		"message": message, // Human-readable reason
	})
}

// AbortWithError writes the error envelope and stops the handler chain
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,   // Operation failed
		"message": message, // Human-readable reason
	})
}

// ValidationErrorResponse maps a binding error to the field-level envelope.
// Non-validator errors (malformed JSON, wrong types) yield an empty list.
func ValidationErrorResponse(c *gin.Context, err error) {
	fields := []FieldError{} // Field-level error list
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		// One entry per failed struct field
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   fe.Field(),              // Offending field
				Message: validationMessage(fe),   // Readable message for the failed rule
			})
		}
	}
	c.JSON(400, gin.H{
		"success": false,               // Operation failed
		"message": "Validation errors", // Fixed summary for validation failures
		"errors":  fields,              // Field-level details
	})
}

// validationMessage renders a readable message for a failed validation tag
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Valid email is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "uuid":
		return "Invalid " + fe.Field()
	default:
		return fe.Field() + " is invalid" // Fallback for uncommon tags
	}
}
