package descriptor

import "fmt"

// MissingMarkerError is returned when the descriptor has no injection point.
type MissingMarkerError struct {
	Path   string
	Marker string
}

// Error implements the error interface for MissingMarkerError.
func (e *MissingMarkerError) Error() string {
	return fmt.Sprintf("missing inject string: %q in: %s", e.Marker, e.Path)
}

// IOError wraps a read or write failure on one of the merge files.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

// Error implements the error interface for IOError.
func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// EncodingError reports a charset name that cannot be decoded or encoded.
type EncodingError struct {
	Path     string
	Encoding string
	Err      error
}

// Error implements the error interface for EncodingError.
func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unsupported encoding %q for %s: %v", e.Encoding, e.Path, e.Err)
	}
	return fmt.Sprintf("unsupported encoding %q for %s", e.Encoding, e.Path)
}

// Unwrap returns the underlying charset error, if any.
func (e *EncodingError) Unwrap() error {
	return e.Err
}
