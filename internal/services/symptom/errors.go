// File: internal/services/symptom/errors.go
package symptom

import "fmt"

type ErrorType string

const (
	ErrTypeValidation ErrorType = "VALIDATION" // unusable input (empty name)
	ErrTypeGeneration ErrorType = "GENERATION" // retries exhausted upstream
	ErrTypeShape      ErrorType = "SHAPE"      // generated text failed parsing or schema checks
)

type SymptomError struct {
	Type      ErrorType
	Operation string
	Symptom   string
	Message   string
	Cause     error
}

func (e *SymptomError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Symptom %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Symptom %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *SymptomError) Unwrap() error {
	return e.Cause
}

func NewValidationError(operation, msg string) *SymptomError {
	return &SymptomError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewGenerationError(symptom string, cause error) *SymptomError {
	return &SymptomError{
		Type:      ErrTypeGeneration,
		Operation: "generate",
		Symptom:   symptom,
		Message:   "generation failed after all retries",
		Cause:     cause,
	}
}

func NewShapeError(symptom, msg string, cause error) *SymptomError {
	return &SymptomError{
		Type:      ErrTypeShape,
		Operation: "parse",
		Symptom:   symptom,
		Message:   msg,
		Cause:     cause,
	}
}
