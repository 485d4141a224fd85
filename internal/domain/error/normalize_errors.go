package error

import (
	"errors"
	"fmt"
	"strings"
)

// Normalization and adapter sentinel errors.
var (
	// ErrUnknownAdapter is returned when configuration names an adapter
	// that is not in the registry.
	ErrUnknownAdapter = errors.New("unknown adapter")

	// ErrMissingAdapterConfig is returned when the project configuration
	// is absent or does not declare an adapter.
	ErrMissingAdapterConfig = errors.New("missing adapter configuration")

	// ErrAdapterInput is returned when an adapter cannot map its input
	// table to the canonical schema.
	ErrAdapterInput = errors.New("adapter cannot map input table")
)

// NormalizeErrorCode defines error codes for normalization errors.
// Format: ADP-XXYYYY where XX is category and YYYY is specific error.
type NormalizeErrorCode string

const (
	ErrCodeUnknownAdapter       NormalizeErrorCode = "ADP-010001"
	ErrCodeMissingAdapterConfig NormalizeErrorCode = "ADP-010002"
	ErrCodeAdapterInput         NormalizeErrorCode = "ADP-010003"
)

// NormalizeError represents an adapter or normalization error.
type NormalizeError struct {
	Code    NormalizeErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *NormalizeError) Error() string {
	return e.Message
}

// Unwrap returns the underlying sentinel error.
func (e *NormalizeError) Unwrap() error {
	return e.Err
}

// NewUnknownAdapterError reports a configured adapter name with no
// registered implementation, listing every valid name.
func NewUnknownAdapterError(name string, valid []string) *NormalizeError {
	return &NormalizeError{
		Code: ErrCodeUnknownAdapter,
		Message: fmt.Sprintf(
			"unknown adapter %q\nValid adapters: %s\nHint: set `adapter: passthrough` in byod.yaml if your headers are already canonical.",
			name,
			strings.Join(valid, ", "),
		),
		Err: ErrUnknownAdapter,
	}
}

// NewMissingAdapterError reports an absent or adapter-less project
// configuration.
func NewMissingAdapterError(valid []string) *NormalizeError {
	return &NormalizeError{
		Code: ErrCodeMissingAdapterConfig,
		Message: fmt.Sprintf(
			"missing profile/adapter — specify one of {%s} in byod.yaml\nHint: `adapter: passthrough` is the default choice for canonical exports.",
			strings.Join(valid, ", "),
		),
		Err: ErrMissingAdapterConfig,
	}
}

// NewAdapterInputError reports an input table an adapter cannot map.
func NewAdapterInputError(adapter, table, detail string) *NormalizeError {
	return &NormalizeError{
		Code: ErrCodeAdapterInput,
		Message: fmt.Sprintf(
			"adapter %q cannot map table %q: %s",
			adapter, table, detail,
		),
		Err: ErrAdapterInput,
	}
}
