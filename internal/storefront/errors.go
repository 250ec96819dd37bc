package storefront

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidationFailure = errors.New("validation failure")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrStoreFailure      = errors.New("store failure")
	ErrUnauthorized      = errors.New("unauthorized")
)

// ValidationError 带字段错误信息的校验失败
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError 创建校验错误
func NewValidationError(fields map[string]string) *ValidationError {
	if fields == nil {
		fields = map[string]string{}
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidationFailure.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key])
	}
	return ErrValidationFailure.Error() + ": " + strings.Join(parts, "; ")
}

// Is 使 errors.Is(err, ErrValidationFailure) 成立
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailure
}

// FieldErrors 提取字段错误，非校验错误返回 nil
func FieldErrors(err error) map[string]string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
