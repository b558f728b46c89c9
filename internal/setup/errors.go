package setup

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue/token"
)

// Error codes for setup loading failures.
const (
	ErrCodeRead    = "SETUP_READ"    // file could not be read
	ErrCodeFormat  = "SETUP_FORMAT"  // unknown file extension
	ErrCodeParse   = "SETUP_PARSE"   // YAML or CUE syntax error, unknown field
	ErrCodeSchema  = "SETUP_SCHEMA"  // value violates the CUE schema
	ErrCodeInvalid = "SETUP_INVALID" // schema-valid but inconsistent setup
)

// LoadError describes why a setup file was rejected.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsLoadError reports whether err is a LoadError.
func IsLoadError(err error) bool {
	var e *LoadError
	return errors.As(err, &e)
}

// ErrorCode returns the code of a LoadError, or "" for other errors.
func ErrorCode(err error) string {
	var e *LoadError
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func newLoadError(code, format string, args ...any) *LoadError {
	return &LoadError{Code: code, Message: fmt.Sprintf(format, args...)}
}
