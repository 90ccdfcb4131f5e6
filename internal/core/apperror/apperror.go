// Package apperror خطاهای دامنه که در مرز HTTP به status code تبدیل می‌شوند.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindAuthentication Kind = "UNAUTHENTICATED"
	KindAuthorization  Kind = "FORBIDDEN"
	KindNotFound       Kind = "NOT_FOUND"
	KindConflict       Kind = "CONFLICT"
	KindInternal       Kind = "INTERNAL_ERROR"
)

// AppError خطای برنامه با نوع مشخص
type AppError struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// FieldValidation خطای اعتبارسنجی برای یک فیلد مشخص
func FieldValidation(field, message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: message,
		Fields:  map[string]string{field: message},
	}
}

func Unauthenticated(message string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message}
}

func NotFound(resource string, id any) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s %v not found", resource, id)}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf نوع خطا را برمی‌گرداند؛ خطاهای ناشناخته Internal حساب می‌شوند
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
