package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/pkg/apperrors"
	"github.com/yigit/kursverwaltung/internal/pkg/logger"
)

// --- Central Error Handling Middleware/Function ---

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorDetailFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg("Request failed")
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

// ErrorDetailFor maps an error to its HTTP status and error detail
func ErrorDetailFor(err error) (int, *dto.ErrorDetail) {
	var customErr *apperrors.CustomError

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
		if fields := apperrors.FieldErrors(err); fields != nil {
			detail = detail.WithDetails(dto.NewValidationErrorsFromFields(fields).Errors)
		}
		return http.StatusUnprocessableEntity, detail
	case errors.Is(err, apperrors.ErrMissingPrerequisite):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeMissingPrerequisite, err.Error())
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrBadRequest):
		msg := "Invalid request"
		if errors.As(err, &customErr) {
			msg = customErr.Error()
		}
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, msg)
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource conflict")
	case errors.Is(err, apperrors.ErrUpstream):
		return http.StatusBadGateway, dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Record service unavailable")
	default:
		// Handle unknown errors
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// BindingError answers a request whose body could not be decoded
func BindingError(c *gin.Context, err error) {
	detail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format").WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

// Recovery turns panics into a 500 response and logs them
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	})
}
