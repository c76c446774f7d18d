package receipt

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is wrapped by InvalidReceiptError when a required key
	// was absent from the submitted receipt.
	ErrMissingField = errors.New("missing field")

	// ErrDuplicateID is returned when a store already holds an ID.
	ErrDuplicateID = errors.New("duplicate receipt id")
)

// MalformedRequestError indicates the request body could not be decoded into
// a Receipt at all.
type MalformedRequestError struct {
	Err error
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("malformed receipt: %v", e.Err)
}

func (e *MalformedRequestError) Unwrap() error {
	return e.Err
}

// NotFoundError indicates no receipt was ever stored under ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("receipt not found: %s", e.ID)
}

// InvalidReceiptError indicates a stored receipt could not be scored. Rule
// names the scoring rule and Field the offending receipt field.
type InvalidReceiptError struct {
	Rule  string
	Field string
	Err   error
}

func (e *InvalidReceiptError) Error() string {
	return fmt.Sprintf("rule %s: field %s: %v", e.Rule, e.Field, e.Err)
}

func (e *InvalidReceiptError) Unwrap() error {
	return e.Err
}
