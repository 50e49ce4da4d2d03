package validator

import "fmt"

// SchemaNotFoundError reports a missing XSD resource. It is fatal: no
// validation stage runs without the schema.
type SchemaNotFoundError struct {
	Path string
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("XSD not found: %s", e.Path)
}

// SchematronExecutionError reports that the external schematron process
// failed to run or produced output that could not be parsed. It is distinct
// from a genuine rule violation, which lands in the report as a Finding.
type SchematronExecutionError struct {
	Message string
	Cause   error
}

func (e *SchematronExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schematron: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("schematron: %s", e.Message)
}

func (e *SchematronExecutionError) Unwrap() error {
	return e.Cause
}
