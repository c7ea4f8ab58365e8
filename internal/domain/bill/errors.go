package bill

import (
	"errors"
	"strings"
)

var ErrNoBill = errors.New("no bill found")

const (
	FieldAccount             = "account"
	FieldCurrency            = "currency"
	FieldAmount              = "amount"
	FieldReference           = "reference"
	FieldUnstructuredMessage = "unstructured_message"
	FieldCreditor            = "creditor"
	FieldDebtor              = "debtor"
)

type ValidationMessage struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports bill data the payer or creditor supplied wrongly,
// as opposed to a failure inside the renderer.
type ValidationError struct {
	Messages []ValidationMessage
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		parts = append(parts, m.Field+": "+m.Message)
	}
	return "invalid bill: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	e.Messages = append(e.Messages, ValidationMessage{Field: field, Message: msg})
}

func (e *ValidationError) orNil() error {
	if len(e.Messages) == 0 {
		return nil
	}
	return e
}

func newValidationError(field, msg string) *ValidationError {
	e := &ValidationError{}
	e.add(field, msg)
	return e
}

func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
