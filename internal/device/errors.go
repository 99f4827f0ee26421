package device

import (
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
)

// Error types for device session operations

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNotConnected indicates an operation was attempted before a
	// successful Connect (or after a failed one)
	ErrTypeNotConnected ErrorType = iota
	// ErrTypeNetwork indicates a transport-level error (reset, write failure, short read)
	ErrTypeNetwork
	// ErrTypeTimeout indicates an I/O deadline expired
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the controller refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDecode indicates a malformed status reply (wrong length or bad checksum)
	ErrTypeDecode
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNotConnected:
		return "Not Connected"
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDecode:
		return "Decode Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// SessionError represents an error that occurred during controller communication
type SessionError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	Err        error     // Underlying error (if any)
	DeviceAddr string    // Controller address (for context)
	Retryable  bool      // Whether the caller may reasonably retry
}

// Error implements the error interface
func (e *SessionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewNotConnectedError creates the error returned by every command issued on
// a session without an open stream. Recoverable by calling Connect first.
func NewNotConnectedError(addr string) *SessionError {
	return &SessionError{
		Type:       ErrTypeNotConnected,
		Message:    "session is not connected, call Connect first",
		DeviceAddr: addr,
		Retryable:  false,
	}
}

// NewDecodeError creates a decode error wrapping a protocol parse failure
func NewDecodeError(message string, err error) *SessionError {
	return &SessionError{
		Type:      ErrTypeDecode,
		Message:   message,
		Err:       err,
		Retryable: false,
	}
}

// ClassifyNetworkError analyzes a transport error and returns a more
// specific session error
func ClassifyNetworkError(message string, err error, addr string) *SessionError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &SessionError{
			Type:       ErrTypeTimeout,
			Message:    message,
			Err:        err,
			DeviceAddr: addr,
			Retryable:  true,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &SessionError{
			Type:       ErrTypeConnectionRefused,
			Message:    message,
			Err:        err,
			DeviceAddr: addr,
			Retryable:  true,
		}
	}

	return &SessionError{
		Type:       ErrTypeNetwork,
		Message:    message,
		Err:        err,
		DeviceAddr: addr,
		Retryable:  true,
	}
}

// IsNotConnected checks if an error is a not-connected error
func IsNotConnected(err error) bool {
	var sessErr *SessionError
	if errors.As(err, &sessErr) {
		return sessErr.Type == ErrTypeNotConnected
	}
	return false
}

// IsNetworkError checks if an error is a transport error (including timeout
// and connection refused)
func IsNetworkError(err error) bool {
	var sessErr *SessionError
	if errors.As(err, &sessErr) {
		return sessErr.Type == ErrTypeNetwork ||
			sessErr.Type == ErrTypeTimeout ||
			sessErr.Type == ErrTypeConnectionRefused
	}
	return false
}

// IsDecodeError checks if an error is a decode error
func IsDecodeError(err error) bool {
	var sessErr *SessionError
	if errors.As(err, &sessErr) {
		return sessErr.Type == ErrTypeDecode
	}
	return false
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var sessErr *SessionError
	if errors.As(err, &sessErr) {
		return sessErr.Retryable
	}
	return false
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	var sessErr *SessionError
	if !errors.As(err, &sessErr) {
		return err.Error()
	}

	switch sessErr.Type {
	case ErrTypeNotConnected:
		return "Not connected to controller"
	case ErrTypeTimeout:
		return "Controller not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Controller refused connection - check address and port"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeDecode:
		return "Controller sent a malformed status reply"
	default:
		return sessErr.Message
	}
}
