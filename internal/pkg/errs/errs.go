package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValueIsRequired is the sentinel for missing required values.
	ErrValueIsRequired = errors.New("value is required")

	// ErrValueIsInvalid is the sentinel for values that fail a client-side precondition.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrAuthRequired is the sentinel for a missing or rejected credential.
	ErrAuthRequired = errors.New("authentication required")

	// ErrIntegrationExhausted is the sentinel for a negotiation in which every
	// known endpoint/payload shape rejected the request.
	ErrIntegrationExhausted = errors.New("integration exhausted")

	// ErrOrderBusy is the sentinel for an order that already has an action in flight.
	ErrOrderBusy = errors.New("order is busy")

	// ErrObjectNotFound is the sentinel for lookups of objects that do not exist.
	ErrObjectNotFound = errors.New("object not found")
)

// ObjectNotFoundError indicates an object could not be found by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the given parameter and id.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsRequiredError indicates a required value was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the given parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value failed a client-side precondition.
// Validation failures never reach the network.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the given parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// AuthRequiredError indicates the server rejected the credential during an
// operation. It terminates the whole negotiation: retrying other request
// shapes cannot fix a missing or invalid credential.
type AuthRequiredError struct {
	Operation string
	Cause     error
}

// NewAuthRequiredError creates an AuthRequiredError for the given operation.
func NewAuthRequiredError(operation string) *AuthRequiredError {
	return &AuthRequiredError{Operation: operation}
}

// NewAuthRequiredErrorWithCause creates an AuthRequiredError wrapping a cause.
func NewAuthRequiredErrorWithCause(operation string, cause error) *AuthRequiredError {
	return &AuthRequiredError{Operation: operation, Cause: cause}
}

func (e *AuthRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrAuthRequired, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrAuthRequired, e.Operation)
}

func (e *AuthRequiredError) Unwrap() error {
	return ErrAuthRequired
}

// IntegrationExhaustedError indicates every candidate for an operation was
// tried and none succeeded. Detail holds the last observed failure, already
// truncated to a displayable length by the negotiator.
type IntegrationExhaustedError struct {
	Operation string
	Detail    string
	Cause     error
}

// NewIntegrationExhaustedError creates an IntegrationExhaustedError with the
// last observed failure detail.
func NewIntegrationExhaustedError(operation string, detail string) *IntegrationExhaustedError {
	return &IntegrationExhaustedError{Operation: operation, Detail: detail}
}

// NewIntegrationExhaustedErrorWithCause creates an IntegrationExhaustedError wrapping a cause.
func NewIntegrationExhaustedErrorWithCause(operation string, detail string, cause error) *IntegrationExhaustedError {
	return &IntegrationExhaustedError{Operation: operation, Detail: detail, Cause: cause}
}

func (e *IntegrationExhaustedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (last error: %s)", ErrIntegrationExhausted, e.Operation, e.Detail)
	}
	return fmt.Sprintf("%s: %s", ErrIntegrationExhausted, e.Operation)
}

func (e *IntegrationExhaustedError) Unwrap() error {
	return ErrIntegrationExhausted
}

// OrderBusyError indicates an action was requested for an order that already
// has another action in flight. The new action is rejected before any network
// call is made.
type OrderBusyError struct {
	OrderID string
	Action  string
}

// NewOrderBusyError creates an OrderBusyError for the given order and the
// action kind currently in flight.
func NewOrderBusyError(orderID string, action string) *OrderBusyError {
	return &OrderBusyError{OrderID: orderID, Action: action}
}

func (e *OrderBusyError) Error() string {
	return fmt.Sprintf("%s: order %s has %s in flight", ErrOrderBusy, e.OrderID, e.Action)
}

func (e *OrderBusyError) Unwrap() error {
	return ErrOrderBusy
}
