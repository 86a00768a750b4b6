// Package errors provides structured error handling for the editor core.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindLifetime indicates a reference-counting contract violation.
	KindLifetime
	// KindAsset indicates an asset lookup or I/O failure.
	KindAsset
	// KindDecode indicates an asset decode failure.
	KindDecode
	// KindConfig indicates a settings load or save failure.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindLifetime:
		return "lifetime"
	case KindAsset:
		return "asset"
	case KindDecode:
		return "decode"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// EditorError represents a structured error in the editor core.
type EditorError struct {
	// Op is the operation that failed (e.g., "asset.Manager.Load").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Asset is the asset path involved, if applicable.
	Asset string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *EditorError) Error() string {
	if e.Asset != "" {
		return fmt.Sprintf("%s [%s] asset=%s: %v", e.Op, e.Kind, e.Asset, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *EditorError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "scene.Node.Dispose").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// LifetimeError reports misuse of a reference-counted handle, such as
// releasing a handle more times than it was retained.
type LifetimeError struct {
	// Op is the handle operation that detected the misuse.
	Op string
	// Type is the managed type's name.
	Type string
	// Count is the strong count observed after the faulty operation.
	Count int32
}

func (e *LifetimeError) Error() string {
	return fmt.Sprintf("%s: %s strong count reached %d", e.Op, e.Type, e.Count)
}

// ErrorHandler receives errors reported by the editor core.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *EditorError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
