package service

import (
	"errors"
	"fmt"
)

// ErrorKind 错误分类，HTTP 层按分类映射状态码
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindNotFound    ErrorKind = "not_found"
	KindConflict    ErrorKind = "conflict"
	KindAuth        ErrorKind = "auth"
	KindForbidden   ErrorKind = "forbidden"
	KindBlocked     ErrorKind = "blocked"
	KindTransaction ErrorKind = "transaction"
)

// Error 业务错误
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrInvalidQuantity    = newError(KindValidation, "invalid_quantity", "quantity must be a positive integer")
	ErrInvalidStatus      = newError(KindValidation, "invalid_status", "order status is not recognised")
	ErrInvalidGuestCart   = newError(KindValidation, "invalid_guest_cart", "guest cart payload is invalid")
	ErrInvalidCredentials = newError(KindAuth, "invalid_credentials", "email or password is incorrect")
	ErrUnauthorized       = newError(KindAuth, "unauthorized", "authentication required")
	ErrForbidden          = newError(KindForbidden, "forbidden", "permission denied")
	ErrBlockedAccount     = newError(KindBlocked, "account_blocked", "your account has been blocked, please contact the administrator")
	ErrUserNotFound       = newError(KindNotFound, "user_not_found", "user not found")
	ErrProductNotFound    = newError(KindValidation, "product_not_found", "user or product does not exist")
	ErrCartItemNotFound   = newError(KindNotFound, "cart_item_not_found", "cart item not found")
	ErrOrderNotFound      = newError(KindNotFound, "order_not_found", "order not found")
	ErrEmptyCart          = newError(KindConflict, "empty_cart", "cart is empty")
	ErrProductUnavailable = newError(KindConflict, "product_unavailable", "a product in the cart is no longer available")
	ErrInvalidTransition  = newError(KindConflict, "invalid_transition", "order status transition is not allowed")
	ErrTransactionFailure = newError(KindTransaction, "transaction_failure", "operation failed, nothing was changed")
)

// KindOf 返回错误分类，非业务错误返回空
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return ""
}

// wrapStorageError 业务错误原样返回，其余存储错误统一归为 ErrTransactionFailure 并保留原因
func wrapStorageError(err error) error {
	if err == nil {
		return nil
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransactionFailure, err)
}
