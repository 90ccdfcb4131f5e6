package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"socialfeed/internal/core/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var statusByKind = map[apperror.Kind]int{
	apperror.KindValidation:     http.StatusBadRequest,
	apperror.KindAuthentication: http.StatusUnauthorized,
	apperror.KindAuthorization:  http.StatusForbidden,
	apperror.KindNotFound:       http.StatusNotFound,
	apperror.KindConflict:       http.StatusConflict,
	apperror.KindInternal:       http.StatusInternalServerError,
}

// respondError خطای دامنه را به پاسخ HTTP تبدیل می‌کند
func respondError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err)
	}
	status, ok := statusByKind[appErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := gin.H{"error": appErr.Message, "code": appErr.Kind}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	if status == http.StatusInternalServerError {
		// جزئیات خطای داخلی فقط در لاگ
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, body)
}

// respondBindError خطای binding را به خطای اعتبارسنجی فیلدها تبدیل می‌کند
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondError(c, apperror.Validation("invalid input"))
		return
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[jsonFieldName(fe)] = fieldMessage(fe)
	}
	respondError(c, &apperror.AppError{
		Kind:    apperror.KindValidation,
		Message: "invalid input",
		Fields:  fields,
	})
}

func jsonFieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field())
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return "ensure this field has at least " + fe.Param() + " characters"
	case "max":
		return "ensure this field has no more than " + fe.Param() + " characters"
	default:
		return "invalid value"
	}
}
