package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/taskflow-dev/taskflow/pkg/logger"
)

// ValidationMiddleware rejects malformed request payloads before they
// reach a handler. Rules come from the `binding` tags on the DTOs, so
// the middleware and a handler's own ShouldBind fallback enforce the
// same contract.
type ValidationMiddleware struct {
	log *logger.Logger
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{log: logger.NewLogger()}
}

// ValidateRequest binds the JSON body into a fresh instance of model and
// aborts with 400 when decoding or any binding rule fails. The bound
// value is stored under "validated_model" for the handler.
func (m *ValidationMiddleware) ValidateRequest(model interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := newModelInstance(model)

		if err := c.ShouldBindJSON(target); err != nil {
			m.rejectBadRequest(c, "body", err)
			return
		}

		c.Set("validated_model", target)
		c.Next()
	}
}

// ValidateQuery binds query parameters into a fresh instance of model
// and aborts with 400 on failure. The bound value is stored under
// "validated_query" for the handler.
func (m *ValidationMiddleware) ValidateQuery(model interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := newModelInstance(model)

		if err := c.ShouldBindQuery(target); err != nil {
			m.rejectBadRequest(c, "query", err)
			return
		}

		c.Set("validated_query", target)
		c.Next()
	}
}

func (m *ValidationMiddleware) rejectBadRequest(c *gin.Context, source string, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[strings.ToLower(fe.Field())] = bindingErrorMessage(fe)
		}

		m.log.Warn("Request validation failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("source", source),
			zap.Any("details", details))

		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		c.Abort()
		return
	}

	m.log.Warn("Request binding failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("source", source),
		zap.Error(err))

	c.JSON(http.StatusBadRequest, gin.H{
		"error": fmt.Sprintf("invalid request %s: %v", source, err),
	})
	c.Abort()
}

// newModelInstance returns a pointer to a zero value of model's type,
// so each request binds into its own copy.
func newModelInstance(model interface{}) interface{} {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}
	return reflect.New(modelType).Interface()
}

func bindingErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "hexcolor":
		return "must be a hex color like #1a2b3c"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return "invalid value"
	}
}
