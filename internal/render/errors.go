package render

import "fmt"

// RenderError indicates document generation failed.
type RenderError struct {
	Format string
	Cause  error
}

func (e *RenderError) Error() string {
	if e.Format == "pdf" {
		return fmt.Sprintf("failed to render pdf document: %v (if the content exceeds the page, retry with the word format)", e.Cause)
	}
	return fmt.Sprintf("failed to render %s document: %v", e.Format, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
