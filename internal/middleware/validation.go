package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/pkg/validation"
)

// ConfigureValidator makes gin's binding validator report JSON field names
func ConfigureValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.Configure(v)
	}
}

// RespondBindingError writes a 400 for a request that failed to bind or validate
func RespondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, validation.Summary(err)).
			WithDetails(validation.FieldErrors(err))
		if len(verrs) == 1 {
			detail = detail.WithField(verrs[0].Field())
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid request format").WithDetails(err.Error())
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

// BindJSON binds and validates the request body, answering 400 on failure
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondBindingError(c, err)
		return false
	}
	return true
}

// BindQuery binds and validates the query string, answering 400 on failure
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		RespondBindingError(c, err)
		return false
	}
	return true
}
