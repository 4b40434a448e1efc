// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	apperrors "github.com/attractionops/platform/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message,omitempty"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response using Gin.
// Authorization rejections keep their stable code and details.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var authzErr *authzDomain.AuthorizationError
	if apperrors.As(err, &authzErr) {
		handleAuthorizationError(c, authzErr, logger)
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{
			Error:   "not_found",
			Message: "The requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{
			Error:   "conflict",
			Message: "A conflict occurred with existing data",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorResponse = ErrorResponse{
			Error:   "unauthorized",
			Message: "Authentication is required",
		}

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		errorResponse = ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to access this resource",
		}

	default:
		// For unknown/internal errors, don't expose details to the client
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		}
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// AuthorizationStatus returns the HTTP status for an authorization rejection code:
// 401 for authentication failures, 404 for a missing organization, 403 otherwise.
func AuthorizationStatus(code authzDomain.ErrorCode) int {
	switch code {
	case authzDomain.CodeAuthTokenMissing, authzDomain.CodeAuthTokenInvalid, authzDomain.CodeAuthRequired:
		return http.StatusUnauthorized
	case authzDomain.CodeOrgNotFound:
		return http.StatusNotFound
	default:
		return http.StatusForbidden
	}
}

func handleAuthorizationError(c *gin.Context, authzErr *authzDomain.AuthorizationError, logger *slog.Logger) {
	statusCode := AuthorizationStatus(authzErr.Code)

	errorName := "forbidden"
	switch statusCode {
	case http.StatusUnauthorized:
		errorName = "unauthorized"
	case http.StatusNotFound:
		errorName = "not_found"
	}

	if logger != nil {
		attrs := []any{
			slog.Int("status_code", statusCode),
			slog.String("code", string(authzErr.Code)),
			slog.String("path", c.FullPath()),
		}
		if authzErr.IsConfigurationDefect() {
			logger.Error("route authorization misconfigured", attrs...)
		} else {
			logger.Debug("request rejected", attrs...)
		}
	}

	c.JSON(statusCode, ErrorResponse{
		Error:   errorName,
		Message: authzErr.Message,
		Code:    string(authzErr.Code),
		Details: authzErr.Details,
	})
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	}

	c.JSON(http.StatusBadRequest, errorResponse)
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors using Gin.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	}

	c.JSON(http.StatusUnprocessableEntity, errorResponse)
}
