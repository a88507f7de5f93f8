package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrSupplierNotFound   = errors.New("supplier not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInconsistentState  = errors.New("inconsistent installment state")
	ErrNoInstallments     = errors.New("order has no installments")
	ErrNotFinanced        = errors.New("order is not financed")
	ErrOverpayment        = errors.New("payment exceeds outstanding balance")
	ErrScheduleExists     = errors.New("installment schedule already generated")
	ErrUnknownOrderStatus = errors.New("unknown fulfillment status")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeClientNotFound     = "CLIENT_NOT_FOUND"
	ErrCodeSupplierNotFound   = "SUPPLIER_NOT_FOUND"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeInconsistentState  = "INCONSISTENT_STATE"
	ErrCodeNoInstallments     = "NO_INSTALLMENTS"
	ErrCodeNotFinanced        = "NOT_FINANCED"
	ErrCodeOverpayment        = "OVERPAYMENT"
	ErrCodeScheduleExists     = "SCHEDULE_EXISTS"
	ErrCodeUnknownOrderStatus = "UNKNOWN_ORDER_STATUS"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeCacheError         = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapOrderNotFound(orderID string) *BusinessError {
	return NewBusinessError(
		ErrCodeOrderNotFound,
		fmt.Sprintf("Order with ID %s not found", orderID),
		ErrOrderNotFound,
	)
}

func WrapClientNotFound(clientID string) *BusinessError {
	return NewBusinessError(
		ErrCodeClientNotFound,
		fmt.Sprintf("Client with ID %s not found", clientID),
		ErrClientNotFound,
	)
}

func WrapSupplierNotFound(supplierID string) *BusinessError {
	return NewBusinessError(
		ErrCodeSupplierNotFound,
		fmt.Sprintf("Supplier with ID %s not found", supplierID),
		ErrSupplierNotFound,
	)
}

func WrapInvalidInput(detail string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInput,
		detail,
		ErrInvalidInput,
	)
}

func WrapInconsistentState(detail string) *BusinessError {
	return NewBusinessError(
		ErrCodeInconsistentState,
		detail,
		ErrInconsistentState,
	)
}

func WrapNoInstallments(orderID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNoInstallments,
		fmt.Sprintf("Order with ID %s has no installment schedule", orderID),
		ErrNoInstallments,
	)
}

func WrapNotFinanced(orderID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFinanced,
		fmt.Sprintf("Order with ID %s is not a financed order", orderID),
		ErrNotFinanced,
	)
}

func WrapOverpayment(orderID, remainder string) *BusinessError {
	return NewBusinessError(
		ErrCodeOverpayment,
		fmt.Sprintf("Payment on order %s left an unabsorbed remainder of %s", orderID, remainder),
		ErrOverpayment,
	)
}

func WrapUnknownOrderStatus(status string) *BusinessError {
	return NewBusinessError(
		ErrCodeUnknownOrderStatus,
		fmt.Sprintf("Unknown fulfillment status %q", status),
		ErrUnknownOrderStatus,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
