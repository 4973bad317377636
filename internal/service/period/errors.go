package period

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidType      = errors.New("invalid period type")
	ErrInvalidDate      = errors.New("malformed date")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidCount     = errors.New("invalid number of periods")
)

// ConfigurationError — ошибка вызывающего кода (неверный тип периода, дата и т.п.).
// Повторять запрос бессмысленно.
type ConfigurationError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func newConfigError(field, value string, err error) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Err: err}
}
