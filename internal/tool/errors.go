package tool

import "fmt"

// MissingFieldError is returned when a required argument is absent. It is
// the usual outcome of a tool call whose arguments could not be parsed.
type MissingFieldError struct {
	Tool  ID
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("parametro obrigatorio ausente: %s", e.Field)
}

// InvalidArgumentsError is returned when arguments cannot be decoded into
// the tool's request type.
type InvalidArgumentsError struct {
	Tool  ID
	Cause error
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("argumentos invalidos para %s: %v", e.Tool, e.Cause)
}

func (e *InvalidArgumentsError) Unwrap() error { return e.Cause }
