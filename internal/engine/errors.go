package engine

import (
	"errors"
	"fmt"
)

// ValidationError reports an action that was rejected because it is
// malformed or breaks a rule. The game is left unchanged.
type ValidationError struct {
	// Code identifies the rejection reason.
	Code ValidationErrorCode

	// Message is a human-readable description.
	Message string
}

// ValidationErrorCode categorizes rejected actions.
type ValidationErrorCode string

const (
	ErrCodeInvalidAction      ValidationErrorCode = "INVALID_ACTION"
	ErrCodeWrongDecision      ValidationErrorCode = "WRONG_DECISION"
	ErrCodeWrongPlayer        ValidationErrorCode = "WRONG_PLAYER"
	ErrCodeInvalidTile        ValidationErrorCode = "INVALID_TILE"
	ErrCodeTileNotInRack      ValidationErrorCode = "TILE_NOT_IN_RACK"
	ErrCodeTileNotPlayable    ValidationErrorCode = "TILE_NOT_PLAYABLE"
	ErrCodeInvalidChain       ValidationErrorCode = "INVALID_CHAIN"
	ErrCodeInvalidAmount      ValidationErrorCode = "INVALID_AMOUNT"
	ErrCodeInsufficientShares ValidationErrorCode = "INSUFFICIENT_SHARES"
	ErrCodeInsufficientCash   ValidationErrorCode = "INSUFFICIENT_CASH"
	ErrCodePurchaseLimit      ValidationErrorCode = "PURCHASE_LIMIT"
	ErrCodeCannotEndGame      ValidationErrorCode = "CANNOT_END_GAME"
	ErrCodeGameOver           ValidationErrorCode = "GAME_OVER"
	ErrCodeInvalidSetup       ValidationErrorCode = "INVALID_SETUP"
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(code ValidationErrorCode, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a ValidationError.
// Uses errors.As to handle wrapped errors.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidationCode returns the code of a ValidationError, or "" for any other error.
func ValidationCode(err error) ValidationErrorCode {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}

// InternalError reports a broken engine invariant. It is never caused by
// player input and indicates a bug.
type InternalError struct {
	Invariant string
	Message   string
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s: %s", e.Invariant, e.Message)
}

func newInternalError(invariant, format string, args ...any) *InternalError {
	return &InternalError{Invariant: invariant, Message: fmt.Sprintf(format, args...)}
}

// IsInternalError reports whether err is an InternalError.
func IsInternalError(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}
