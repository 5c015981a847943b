package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactStepConstants(t *testing.T) {
	// Verify step constants are defined
	steps := []string{
		StepRawText,
		StepParsedRecord,
		StepAnonymizedRecord,
		StepOutput,
	}

	for _, step := range steps {
		assert.NotEmpty(t, step, "step constant should not be empty")
	}
}

func TestCategoryConstants(t *testing.T) {
	categories := []string{
		CategoryExtraction,
		CategoryParsing,
		CategoryAnonymization,
		CategoryRendering,
	}

	for _, category := range categories {
		assert.NotEmpty(t, category, "category constant should not be empty")
	}
}

func TestRunType(t *testing.T) {
	// Verify Run struct can be instantiated
	run := Run{
		InputName: "cv_dupont.pdf",
		Style:     "advanced",
		Format:    "pdf",
		Status:    StatusRunning,
	}

	assert.Equal(t, "cv_dupont.pdf", run.InputName)
	assert.Equal(t, "advanced", run.Style)
	assert.Equal(t, StatusRunning, run.Status)
	assert.Nil(t, run.CompletedAt)
}
