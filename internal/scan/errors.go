package scan

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of scan failure
type ErrorType int

const (
	// ErrTypeOpen indicates the capture handle could not be opened
	ErrTypeOpen ErrorType = iota
	// ErrTypeFilter indicates the capture filter could not be installed
	ErrTypeFilter
	// ErrTypeTransmit indicates an irrecoverable transmit failure
	ErrTypeTransmit
	// ErrTypeInterface indicates the scan interface is unusable
	ErrTypeInterface
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeOpen:
		return "Capture Open Error"
	case ErrTypeFilter:
		return "Capture Filter Error"
	case ErrTypeTransmit:
		return "Transmit Error"
	case ErrTypeInterface:
		return "Interface Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ScanError represents a capture-level failure. It is fatal to the scan;
// per-frame problems never become a ScanError.
type ScanError struct {
	Type      ErrorType
	Message   string
	Interface string
	Err       error
}

// Error implements the error interface
func (e *ScanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ScanError) Unwrap() error {
	return e.Err
}

// NewOpenError creates a capture open error
func NewOpenError(iface string, err error) *ScanError {
	return &ScanError{
		Type:      ErrTypeOpen,
		Message:   fmt.Sprintf("could not open capture on %s", iface),
		Interface: iface,
		Err:       err,
	}
}

// NewTransmitError creates an irrecoverable transmit error
func NewTransmitError(iface string, err error) *ScanError {
	return &ScanError{
		Type:      ErrTypeTransmit,
		Message:   fmt.Sprintf("transmit failed on %s", iface),
		Interface: iface,
		Err:       err,
	}
}

// IsCaptureError checks if an error is a capture-level scan failure
func IsCaptureError(err error) bool {
	var scanErr *ScanError
	return errors.As(err, &scanErr)
}
