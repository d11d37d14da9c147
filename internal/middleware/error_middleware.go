package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
	"github.com/yigit/schoolhub/internal/pkg/logger"
	"github.com/yigit/schoolhub/internal/pkg/validation"
)

type errorMapping struct {
	kinds   []error
	status  int
	code    dto.ErrorCode
	message string
}

// Order matters: a bad request that also carries a conflict kind must answer 400.
var errorMappings = []errorMapping{
	{
		kinds:   []error{apperrors.ErrSectionFull},
		status:  http.StatusBadRequest,
		code:    dto.ErrorCodeCapacityExceeded,
		message: "Section is full",
	},
	{
		kinds:   []error{apperrors.ErrValidationFailed},
		status:  http.StatusBadRequest,
		code:    dto.ErrorCodeValidationFailed,
		message: "Validation failed",
	},
	{
		kinds: []error{
			apperrors.ErrBadRequest, apperrors.ErrAdmissionNumberExists,
			apperrors.ErrAcademicYearExists, apperrors.ErrAcademicYearInUse,
		},
		status:  http.StatusBadRequest,
		code:    dto.ErrorCodeBadRequest,
		message: "Bad request",
	},
	{
		kinds:   []error{apperrors.ErrInvalidCredentials},
		status:  http.StatusUnauthorized,
		code:    dto.ErrorCodeInvalidCredentials,
		message: "Invalid credentials",
	},
	{
		kinds:   []error{apperrors.ErrTokenExpired},
		status:  http.StatusUnauthorized,
		code:    dto.ErrorCodeExpiredToken,
		message: "Token expired",
	},
	{
		kinds:   []error{apperrors.ErrTokenInvalid, apperrors.ErrTokenRevoked},
		status:  http.StatusUnauthorized,
		code:    dto.ErrorCodeInvalidToken,
		message: "Invalid token",
	},
	{
		kinds:   []error{apperrors.ErrTokenNotFound},
		status:  http.StatusUnauthorized,
		code:    dto.ErrorCodeTokenNotFound,
		message: "Token not found",
	},
	{
		kinds:   []error{apperrors.ErrUnauthorized},
		status:  http.StatusUnauthorized,
		code:    dto.ErrorCodeUnauthorized,
		message: "Please login to access this resource",
	},
	{
		kinds:   []error{apperrors.ErrAccountDisabled},
		status:  http.StatusForbidden,
		code:    dto.ErrorCodeAccountDisabled,
		message: "This account has been suspended! Try to contact the admin",
	},
	{
		kinds:   []error{apperrors.ErrPermissionDenied},
		status:  http.StatusForbidden,
		code:    dto.ErrorCodeForbidden,
		message: "Permission denied",
	},
	{
		kinds: []error{
			apperrors.ErrResourceNotFound, apperrors.ErrUserNotFound, apperrors.ErrStudentNotFound,
			apperrors.ErrClassNotFound, apperrors.ErrSectionNotFound, apperrors.ErrAcademicYearNotFound,
			apperrors.ErrNotificationNotFound, apperrors.ErrActivityLogNotFound,
		},
		status:  http.StatusNotFound,
		code:    dto.ErrorCodeResourceNotFound,
		message: "Resource not found",
	},
	{
		kinds:   []error{apperrors.ErrEmailAlreadyExists, apperrors.ErrResourceAlreadyExists},
		status:  http.StatusConflict,
		code:    dto.ErrorCodeResourceAlreadyExists,
		message: "Resource already exists",
	},
	{
		kinds:   []error{apperrors.ErrConflict},
		status:  http.StatusConflict,
		code:    dto.ErrorCodeConflict,
		message: "Conflict",
	},
	{
		kinds:   []error{apperrors.ErrTooManyRequests},
		status:  http.StatusTooManyRequests,
		code:    dto.ErrorCodeRateLimited,
		message: "Too many requests, please try again later",
	},
}

// StatusOf returns the HTTP status and error code for err
func StatusOf(err error) (int, dto.ErrorCode, string) {
	for _, m := range errorMappings {
		for _, kind := range m.kinds {
			if errors.Is(err, kind) {
				return m.status, m.code, m.message
			}
		}
	}
	return http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, code, message := StatusOf(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
	} else if msg := apperrors.MessageOf(err); msg != "" {
		message = msg
	}

	detail := dto.NewErrorDetail(code, message)
	if fields := validation.FieldErrors(err); len(fields) > 0 {
		detail = detail.WithDetails(fields)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}
