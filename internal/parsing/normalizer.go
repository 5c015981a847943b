// Package parsing turns raw CV text into a structured record. The
// primary path asks the model for JSON and repairs what comes back; the
// fallback path is pure keyword matching and cannot fail.
package parsing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmartel/cv-anonymizer/internal/llm"
	"github.com/jmartel/cv-anonymizer/internal/prompts"
	"github.com/jmartel/cv-anonymizer/internal/types"
)

// MinInputLength is the minimum extracted text length accepted as a CV.
const MinInputLength = 50

// Normalizer converts raw CV text into a structured record.
type Normalizer struct {
	client  llm.Client
	tier    llm.ModelTier
	verbose bool
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithTier overrides the model tier used for extraction.
func WithTier(tier llm.ModelTier) Option {
	return func(n *Normalizer) {
		n.tier = tier
	}
}

// WithVerbose enables raw response dumps for debugging.
func WithVerbose(verbose bool) Option {
	return func(n *Normalizer) {
		n.verbose = verbose
	}
}

// NewNormalizer builds a Normalizer. The client may be nil, in which
// case every Normalize call uses the fallback extractor.
func NewNormalizer(client llm.Client, opts ...Option) *Normalizer {
	n := &Normalizer{
		client: client,
		tier:   llm.TierStandard,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize extracts a structured record from raw CV text.
//
// Text shorter than MinInputLength is rejected before any model call.
// Model or shape failures are absorbed: the reason is printed and the
// fallback extractor provides the result, so a usable record always
// comes back from non-trivial input.
func (n *Normalizer) Normalize(ctx context.Context, text string) (*types.Record, error) {
	if len(text) < MinInputLength {
		return nil, &EmptyInputError{Length: len(text), Min: MinInputLength}
	}

	if n.client == nil {
		fmt.Println("Warning: no model configured, using keyword extraction")
		return n.finish(FallbackExtract(text), text), nil
	}

	rec, err := n.modelExtract(ctx, text)
	if err != nil {
		fmt.Printf("Warning: model extraction failed (%v), using keyword extraction\n", err)
		rec = FallbackExtract(text)
	}
	return n.finish(rec, text), nil
}

func (n *Normalizer) modelExtract(ctx context.Context, text string) (*types.Record, error) {
	template, err := prompts.Get("extraction.json", "extract-cv-record")
	if err != nil {
		return nil, &APICallError{Message: "loading extraction prompt", Cause: err}
	}
	prompt := prompts.Format(template, map[string]string{"CVText": text})

	raw, err := n.client.GenerateJSON(ctx, prompt, n.tier)
	if err != nil {
		return nil, &APICallError{Message: "generating structured CV", Cause: err}
	}

	if n.verbose {
		dumpRawResponse(raw)
	}

	return DecodeRecord(raw)
}

// finish applies cross-cutting defaults shared by both extraction paths.
func (n *Normalizer) finish(rec *types.Record, text string) *types.Record {
	if rec.ProfessionalTitle == "" {
		if title := InferTitle(text); title != "" {
			rec.ProfessionalTitle = title
		} else {
			rec.ProfessionalTitle = DefaultTitle
		}
	}
	rec.EnsureDefaults()
	return rec
}

// dumpRawResponse writes the raw model response to the temp directory
// so a bad extraction can be inspected after the fact.
func dumpRawResponse(raw string) {
	path := filepath.Join(os.TempDir(), "cv_anonymizer_response.json")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		return
	}
	fmt.Printf("[VERBOSE] Raw model response saved to %s\n", path)
}
