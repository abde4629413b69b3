package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrNetwork ErrorType = iota
	ErrData
	ErrInvalidConfig
	ErrFileOp
	ErrVerify
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrNetwork:
		return "Network"
	case ErrData:
		return "Data"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrFileOp:
		return "FileOp"
	case ErrVerify:
		return "Verify"
	default:
		return "Unknown"
	}
}

// DLError represents an error raised while fetching, downloading or verifying
type DLError struct {
	Type   ErrorType
	Source string
	Err    error
}

// Error implements the error interface
func (e *DLError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Source, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *DLError) Unwrap() error {
	return e.Err
}

// NewNetworkError wraps a transport failure or non-success HTTP status
func NewNetworkError(source string, err error) *DLError {
	return &DLError{Type: ErrNetwork, Source: source, Err: err}
}

// NewDataError wraps a malformed or unexpected response body
func NewDataError(source string, err error) *DLError {
	return &DLError{Type: ErrData, Source: source, Err: err}
}

// IsErrorType reports whether err wraps a DLError of type t
func IsErrorType(err error, t ErrorType) bool {
	var dlErr *DLError
	if errors.As(err, &dlErr) {
		return dlErr.Type == t
	}
	return false
}

// IsNetworkError reports whether err is a NetworkError
func IsNetworkError(err error) bool {
	return IsErrorType(err, ErrNetwork)
}

// IsDataError reports whether err is a DataError
func IsDataError(err error) bool {
	return IsErrorType(err, ErrData)
}
