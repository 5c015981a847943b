// Package render turns an anonymized CV record into a styled PDF or
// DOCX document.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jmartel/cv-anonymizer/internal/types"
)

// Options selects the template, the output format and where supporting
// assets (logos) live.
type Options struct {
	Style     string
	Format    string
	AssetsDir string
}

// Render writes the record to outputPath and returns the path actually
// written. The extension is corrected to match the format, so asking
// for "cv.pdf" in word format produces "cv.docx".
func Render(rec *types.Record, outputPath string, opts Options) (string, error) {
	style := ResolveStyle(opts.Style)
	doc := BuildDocument(rec, style)

	base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	switch strings.ToLower(opts.Format) {
	case "word", "docx":
		outputPath = base + ".docx"
		if err := renderDOCX(doc, style, opts.AssetsDir, outputPath); err != nil {
			return "", &RenderError{Format: "word", Cause: err}
		}
	case "", "pdf":
		outputPath = base + ".pdf"
		if err := renderPDF(doc, style, opts.AssetsDir, outputPath); err != nil {
			return "", &RenderError{Format: "pdf", Cause: err}
		}
	default:
		return "", fmt.Errorf("unsupported output format %q (supported: pdf, word)", opts.Format)
	}
	return outputPath, nil
}
