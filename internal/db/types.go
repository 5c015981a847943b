package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a single conversion run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	InputName   string     `json:"input_name"`
	Style       string     `json:"style"`
	Format      string     `json:"format"`
	Status      string     `json:"status"`
	OutputPath  string     `json:"output_path,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Run status values
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Artifact step constants for known artifact types
const (
	StepRawText          = "raw_text"
	StepParsedRecord     = "parsed_record"
	StepAnonymizedRecord = "anonymized_record"
	StepOutput           = "output"
)

// Artifact category constants
const (
	CategoryExtraction    = "extraction"
	CategoryParsing       = "parsing"
	CategoryAnonymization = "anonymization"
	CategoryRendering     = "rendering"
)
