package table

import (
	"errors"
	"fmt"
)

// Error codes for requests rejected before they reach the engine.
const (
	ErrCodeNotSeated  = "NOT_SEATED"
	ErrCodeOutOfTurn  = "OUT_OF_TURN"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodePersist    = "PERSIST_FAILED"
	ErrCodeTableSetup = "INVALID_SETUP"
)

// TableError is a request rejected by the table.
type TableError struct {
	Code    string
	GameID  string
	Message string
	Err     error
}

func (e *TableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("game %s: %s: %s: %v", e.GameID, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("game %s: %s: %s", e.GameID, e.Code, e.Message)
}

func (e *TableError) Unwrap() error { return e.Err }

// IsTableError reports whether err is a TableError.
func IsTableError(err error) bool {
	var e *TableError
	return errors.As(err, &e)
}

// ErrorCode returns the code of a TableError, or "" for other errors.
func ErrorCode(err error) string {
	var e *TableError
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
