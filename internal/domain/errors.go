package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrEmptyOrder      = errors.New("order has no products")
	ErrInvalidDistance = errors.New("invalid distance")
	ErrCorruptStore    = errors.New("corrupt order store")
	ErrIO              = errors.New("io failure")
	ErrNotFound        = errors.New("not found")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrUnknownShipping = errors.New("unknown shipping method")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindEmptyOrder      ErrorKind = "empty_order"
	KindInvalidDistance ErrorKind = "invalid_distance"
	KindInvalidProduct  ErrorKind = "invalid_product"
	KindInvalidOrder    ErrorKind = "invalid_order"
	KindUnknownShipping ErrorKind = "unknown_shipping"
	KindCorruptStore    ErrorKind = "corrupt_store"
	KindIO              ErrorKind = "io"
	KindNotFound        ErrorKind = "not_found"
	KindInvalidConfig   ErrorKind = "invalid_config"
	KindInvalidQuery    ErrorKind = "invalid_query"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// KindOf returns the kind of the outermost OpError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}
