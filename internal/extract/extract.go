// Package extract reads raw text out of candidate CV files.
//
// Supported formats:
//   - .pdf        — page-by-page plain text extraction
//   - .docx, .doc — word/document.xml text runs, paragraph per line
package extract

import (
	"path/filepath"
	"strings"
)

// Extract returns the raw text of the document at path. The format is
// chosen from the file extension, case-insensitively. Unsupported
// extensions return a FileFormatError before the file is opened.
func Extract(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".docx", ".doc":
		// Legacy .doc uploads are frequently docx files with the wrong
		// extension; a genuine OLE .doc fails as an ExtractionError.
		return extractDOCX(path)
	default:
		return "", &FileFormatError{Path: path, Ext: filepath.Ext(path)}
	}
}
