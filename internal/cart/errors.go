package cart

import (
	"errors"
	"fmt"

	"github.com/roach88/nerocart/internal/codec"
)

// ErrorCode categorizes cart errors.
type ErrorCode string

const (
	// ErrCodePersistFailed indicates the backend rejected a write. The cart in
	// memory is ahead of the persisted copy and may not survive a reload.
	ErrCodePersistFailed ErrorCode = "PERSIST_FAILED"

	// ErrCodeEmptyCart indicates an order was requested for an empty cart.
	ErrCodeEmptyCart ErrorCode = "EMPTY_CART"

	// ErrCodeInvalidItem indicates a product that cannot be stored
	// (empty id, negative price or a quantity above codec.MaxQty).
	ErrCodeInvalidItem ErrorCode = "INVALID_ITEM"
)

// Error is a cart error with a category code.
type Error struct {
	Code    ErrorCode
	Message string

	// Key is the storage key involved (persist errors only).
	Key string

	// Err is the underlying error, if any.
	Err error
}

// ErrEmptyCart is returned when an order message is requested for an
// empty cart. Its Message is suitable for showing to the user.
var ErrEmptyCart = &Error{Code: ErrCodeEmptyCart, Message: "Your cart is empty."}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newPersistError(key string, err error) *Error {
	return &Error{
		Code:    ErrCodePersistFailed,
		Message: "cart was not saved and may not survive a reload",
		Key:     key,
		Err:     err,
	}
}

func newInvalidItemError(msg string) *Error {
	return &Error{Code: ErrCodeInvalidItem, Message: msg}
}

func newQuantityLimitError(id string) *Error {
	return newInvalidItemError(fmt.Sprintf("quantity of %q would exceed %d", id, codec.MaxQty))
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsPersistError returns true if err is a persistence write failure.
// Uses errors.As to handle wrapped errors.
func IsPersistError(err error) bool {
	return hasCode(err, ErrCodePersistFailed)
}

// IsEmptyCartError returns true if err reports an order on an empty cart.
func IsEmptyCartError(err error) bool {
	return hasCode(err, ErrCodeEmptyCart)
}

// IsInvalidItemError returns true if err reports an unstorable product.
func IsInvalidItemError(err error) bool {
	return hasCode(err, ErrCodeInvalidItem)
}
