package errs

import (
	"errors"
	"fmt"
)

var (
	ErrCrossTenantReference         = errors.New("cross-tenant reference")
	ErrInvalidStatusTransition      = errors.New("invalid status transition")
	ErrInvalidQuantityOrPrice       = errors.New("invalid quantity or price")
	ErrInvalidPrice                 = errors.New("invalid price")
	ErrDuplicateCode                = errors.New("duplicate code")
	ErrMissingRequiredDeliveryField = errors.New("missing required delivery field")
	ErrEntityInUse                  = errors.New("entity is in use")
	ErrOrderHasDelivery             = errors.New("order has a delivery")
	ErrConcurrencyConflict          = errors.New("concurrency conflict")
)

// CrossTenantReferenceError is returned when an operation is handed an entity
// that belongs to a tenant other than the acting one.
type CrossTenantReferenceError struct {
	ParamName string
	ID        any
}

func NewCrossTenantReferenceError(paramName string, id any) *CrossTenantReferenceError {
	return &CrossTenantReferenceError{ParamName: paramName, ID: id}
}

func (e *CrossTenantReferenceError) Error() string {
	return fmt.Sprintf("%s: %s %s belongs to another tenant", ErrCrossTenantReference, e.ParamName, sanitize(e.ID))
}

func (e *CrossTenantReferenceError) Unwrap() error {
	return ErrCrossTenantReference
}

// StatusTransitionError is returned when a requested status change is not an
// edge of the order status machine.
type StatusTransitionError struct {
	From  string
	To    string
	Cause error
}

func NewStatusTransitionError(from, to string) *StatusTransitionError {
	return &StatusTransitionError{From: from, To: to}
}

func NewStatusTransitionErrorWithCause(from, to string, cause error) *StatusTransitionError {
	return &StatusTransitionError{From: from, To: to, Cause: cause}
}

func (e *StatusTransitionError) Error() string {
	return withCause(fmt.Sprintf("%s: %s -> %s", ErrInvalidStatusTransition, e.From, e.To), e.Cause)
}

// Unwrap exposes the cause alongside the sentinel so callers can match either.
func (e *StatusTransitionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidStatusTransition}
	}
	return []error{ErrInvalidStatusTransition, e.Cause}
}

// InvalidQuantityOrPriceError is returned for item quantities below one and
// quoted prices that are not strictly positive.
type InvalidQuantityOrPriceError struct {
	ParamName string
	Value     any
}

func NewInvalidQuantityOrPriceError(paramName string, value any) *InvalidQuantityOrPriceError {
	return &InvalidQuantityOrPriceError{ParamName: paramName, Value: value}
}

func (e *InvalidQuantityOrPriceError) Error() string {
	return fmt.Sprintf("%s: %s is %s", ErrInvalidQuantityOrPrice, e.ParamName, sanitize(e.Value))
}

func (e *InvalidQuantityOrPriceError) Unwrap() error {
	return ErrInvalidQuantityOrPrice
}

// InvalidPriceError is returned for catalog prices that are not strictly positive.
type InvalidPriceError struct {
	Value any
}

func NewInvalidPriceError(value any) *InvalidPriceError {
	return &InvalidPriceError{Value: value}
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("%s: %s must be greater than 0", ErrInvalidPrice, sanitize(e.Value))
}

func (e *InvalidPriceError) Unwrap() error {
	return ErrInvalidPrice
}

// DuplicateCodeError is returned when a catalog code is already taken within a tenant.
type DuplicateCodeError struct {
	Entity string
	Code   string
	Cause  error
}

func NewDuplicateCodeError(entity, code string) *DuplicateCodeError {
	return &DuplicateCodeError{Entity: entity, Code: code}
}

func NewDuplicateCodeErrorWithCause(entity, code string, cause error) *DuplicateCodeError {
	return &DuplicateCodeError{Entity: entity, Code: code, Cause: cause}
}

func (e *DuplicateCodeError) Error() string {
	return withCause(fmt.Sprintf("%s: %s code %q already exists", ErrDuplicateCode, e.Entity, e.Code), e.Cause)
}

func (e *DuplicateCodeError) Unwrap() error {
	return ErrDuplicateCode
}

type MissingRequiredDeliveryFieldError struct {
	Field string
}

func NewMissingRequiredDeliveryFieldError(field string) *MissingRequiredDeliveryFieldError {
	return &MissingRequiredDeliveryFieldError{Field: field}
}

func (e *MissingRequiredDeliveryFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequiredDeliveryField, e.Field)
}

func (e *MissingRequiredDeliveryFieldError) Unwrap() error {
	return ErrMissingRequiredDeliveryField
}

// OrderHasDeliveryError is returned when deleting an order whose delivery
// record still exists.
type OrderHasDeliveryError struct {
	OrderID any
}

func NewOrderHasDeliveryError(orderID any) *OrderHasDeliveryError {
	return &OrderHasDeliveryError{OrderID: orderID}
}

func (e *OrderHasDeliveryError) Error() string {
	return fmt.Sprintf("%s: order %s must have its delivery deleted first", ErrOrderHasDelivery, sanitize(e.OrderID))
}

func (e *OrderHasDeliveryError) Unwrap() error {
	return ErrOrderHasDelivery
}

// EntityInUseError is returned when deleting a catalog entity that orders still reference.
type EntityInUseError struct {
	Entity     string
	ID         any
	References int
}

func NewEntityInUseError(entity string, id any, references int) *EntityInUseError {
	return &EntityInUseError{Entity: entity, ID: id, References: references}
}

func (e *EntityInUseError) Error() string {
	return fmt.Sprintf("%s: %s %s is referenced by %d order(s)", ErrEntityInUse, e.Entity, sanitize(e.ID), e.References)
}

func (e *EntityInUseError) Unwrap() error {
	return ErrEntityInUse
}

// ConcurrencyConflictError is returned when an optimistic version check fails.
// Callers are expected to reload and retry.
type ConcurrencyConflictError struct {
	Entity  string
	ID      any
	Version int
}

func NewConcurrencyConflictError(entity string, id any, version int) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Entity: entity, ID: id, Version: version}
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s was modified after version %d", ErrConcurrencyConflict, e.Entity, sanitize(e.ID), e.Version)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}
