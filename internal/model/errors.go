package model

import "fmt"

// LineError reports invalid line input at the call that introduced it
type LineError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *LineError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("invalid line: %s %s (value=%v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("invalid line: %s %s", e.Field, e.Message)
}

// NewLineError creates a new line error
func NewLineError(field string, value interface{}, message string) *LineError {
	return &LineError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// PartyError reports malformed party input
type PartyError struct {
	Field   string
	Message string
}

func (e *PartyError) Error() string {
	return fmt.Sprintf("invalid party: %s %s", e.Field, e.Message)
}

// NewPartyError creates a new party error
func NewPartyError(field, message string) *PartyError {
	return &PartyError{
		Field:   field,
		Message: message,
	}
}
