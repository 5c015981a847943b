package extract

import "fmt"

// FileFormatError indicates the input file has an unsupported extension.
type FileFormatError struct {
	Path string
	Ext  string
}

func (e *FileFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q for %s (supported: .pdf, .docx)", e.Ext, e.Path)
}

// ExtractionError indicates a supported file could not be read or decoded.
type ExtractionError struct {
	Path  string
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Path, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
