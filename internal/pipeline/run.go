// Package pipeline provides the high-level orchestration for the CV anonymization process.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jmartel/cv-anonymizer/internal/anonymize"
	"github.com/jmartel/cv-anonymizer/internal/db"
	"github.com/jmartel/cv-anonymizer/internal/extract"
	"github.com/jmartel/cv-anonymizer/internal/llm"
	"github.com/jmartel/cv-anonymizer/internal/observability"
	"github.com/jmartel/cv-anonymizer/internal/parsing"
	"github.com/jmartel/cv-anonymizer/internal/render"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Percent  int    `json:"percent"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for running the pipeline
type Options struct {
	InputPath   string
	OutputPath  string
	Style       string
	Format      string
	APIKey      string
	DatabaseURL string
	AssetsDir   string
	Verbose     bool
	OnProgress  ProgressCallback
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, runID uuid.UUID, step, category, message string, percent int, content any) {
	if opts.OnProgress == nil {
		return
	}
	event := ProgressEvent{
		Step:     step,
		Category: category,
		Message:  message,
		Percent:  percent,
		Content:  content,
	}
	if runID != uuid.Nil {
		event.RunID = runID.String()
	}
	opts.OnProgress(event)
}

// defaultOutputPath builds a timestamped name next to the current
// directory when the caller gave none. The renderer corrects the
// extension to the requested format.
func defaultOutputPath() string {
	return fmt.Sprintf("cv_anonyme_%s.pdf", time.Now().Format("20060102_150405"))
}

// Run executes the full anonymization pipeline on a single document and
// returns the path of the file actually written.
func Run(ctx context.Context, opts Options) (string, error) {

	// Initialize database connection if configured
	var database *db.DB
	var runID uuid.UUID
	if opts.DatabaseURL != "" {
		conn, err := db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
		} else if err := conn.Migrate(ctx); err != nil {
			conn.Close()
			fmt.Printf("Warning: Failed to run database migrations: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
		} else {
			database = conn
			defer database.Close()
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	if database != nil {
		var err error
		runID, err = database.CreateRun(ctx, filepath.Base(opts.InputPath), opts.Style, opts.Format)
		if err != nil {
			fmt.Printf("Warning: Failed to create database run: %v\n", err)
			runID = uuid.Nil
		} else if opts.Verbose {
			fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
		}
	}

	// fail marks the run before returning so the database never keeps a
	// run stuck in 'running'
	fail := func(err error) (string, error) {
		if database != nil && runID != uuid.Nil {
			_ = database.CompleteRun(ctx, runID, db.StatusFailed, "")
		}
		return "", err
	}

	// Step 1: Extract raw text
	fmt.Printf("Step 1/5: Extracting text from %s...\n", opts.InputPath)
	text, err := extract.Extract(opts.InputPath)
	if err != nil {
		return fail(fmt.Errorf("text extraction failed: %w", err))
	}
	if opts.Verbose {
		observability.NewPrinter(os.Stdout).PrintExtractedText(text)
	}
	emitProgress(&opts, runID, db.StepRawText, db.CategoryExtraction,
		fmt.Sprintf("Extracted %d characters from %s", len(text), filepath.Base(opts.InputPath)), 10, nil)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveTextArtifact(ctx, runID, db.StepRawText, db.CategoryExtraction, text)
	}

	// Step 2: Normalize into a structured record
	fmt.Printf("Step 2/5: Extracting structured record...\n")
	var client llm.Client
	if opts.APIKey != "" {
		geminiClient, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize model client: %v\n", err)
		} else {
			client = geminiClient
			defer geminiClient.Close()
		}
	}
	normalizer := parsing.NewNormalizer(client, parsing.WithVerbose(opts.Verbose))
	record, err := normalizer.Normalize(ctx, text)
	if err != nil {
		return fail(fmt.Errorf("normalizing record failed: %w", err))
	}
	if opts.Verbose {
		observability.NewPrinter(os.Stdout).PrintRecord(record)
	}
	emitProgress(&opts, runID, db.StepParsedRecord, db.CategoryParsing,
		fmt.Sprintf("Parsed record: %s, %d experiences", record.ProfessionalTitle, len(record.Experiences)), 30, record)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepParsedRecord, db.CategoryParsing, record)
	}

	// Step 3: Anonymize identity fields
	fmt.Printf("Step 3/5: Anonymizing identity fields...\n")
	anonymized := anonymize.Anonymize(record)
	if opts.Verbose {
		observability.NewPrinter(os.Stdout).PrintAnonymization(record)
	}
	emitProgress(&opts, runID, db.StepAnonymizedRecord, db.CategoryAnonymization,
		"Removed name, email, phone, address and photo", 60, anonymized)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepAnonymizedRecord, db.CategoryAnonymization, anonymized)
	}

	// Step 4: Render the output document
	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = defaultOutputPath()
		if opts.Verbose {
			fmt.Printf("[VERBOSE] No output path given, using %s\n", outputPath)
		}
	}
	format := opts.Format
	if format == "" {
		format = "pdf"
	}
	fmt.Printf("Step 4/5: Rendering %s document...\n", format)
	written, err := render.Render(anonymized, outputPath, render.Options{
		Style:     opts.Style,
		Format:    opts.Format,
		AssetsDir: opts.AssetsDir,
	})
	if err != nil {
		return fail(fmt.Errorf("rendering document failed: %w", err))
	}
	emitProgress(&opts, runID, db.StepOutput, db.CategoryRendering,
		fmt.Sprintf("Rendered %s", written), 80, nil)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveTextArtifact(ctx, runID, db.StepOutput, db.CategoryRendering, written)
	}

	// Step 5: Finalize
	fmt.Printf("Step 5/5: Finalizing...\n")
	if database != nil && runID != uuid.Nil {
		_ = database.CompleteRun(ctx, runID, db.StatusCompleted, written)
	}
	emitProgress(&opts, runID, db.StepOutput, db.CategoryRendering, "Done", 100, nil)

	fmt.Printf("Done! Anonymized CV written to %s\n", written)
	return written, nil
}
