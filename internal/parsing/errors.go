package parsing

import "fmt"

// EmptyInputError indicates the extracted text is too short to be a CV.
type EmptyInputError struct {
	Length int
	Min    int
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("CV text is too short or empty (%d chars, need at least %d)", e.Length, e.Min)
}

// APICallError represents an error from the Gemini API
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// JSONShapeError indicates a model response that could not be repaired
// into a record of the expected shape.
type JSONShapeError struct {
	Message string
	Cause   error
}

func (e *JSONShapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("response shape invalid: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("response shape invalid: %s", e.Message)
}

func (e *JSONShapeError) Unwrap() error {
	return e.Cause
}
