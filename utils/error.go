package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details), zap.Int("status", status))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError writes err using its AppError kind. Infrastructure errors are
// logged in full and reported generically.
func RespondError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	var appErr *AppError
	if errors.As(err, &appErr) {
		GetLogger().Info("request rejected",
			zap.String("path", c.Request.URL.Path),
			zap.String("kind", string(appErr.Kind)),
			zap.String("message", appErr.Message))
		c.JSON(status, ErrorResponse{Message: appErr.Message, Code: string(appErr.Kind)})
		return
	}

	GetLogger().Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(status, ErrorResponse{Message: "Internal Server Error", Details: "An unexpected error occurred. Please try again later."})
}
