// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmartel/cv-anonymizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtractedText outputs basic statistics about the raw text pulled
// out of the source document.
func (p *Printer) PrintExtractedText(text string) {
	lines := strings.Count(text, "\n") + 1
	words := len(strings.Fields(text))

	preview := strings.TrimSpace(text)
	if len(preview) > 120 {
		preview = preview[:117] + "..."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Characters: %d\n", len(text)))
	sb.WriteString(fmt.Sprintf("Words:      %d\n", words))
	sb.WriteString(fmt.Sprintf("Lines:      %d\n\n", lines))
	sb.WriteString(preview)

	p.printBox("EXTRACTED TEXT", sb.String())
}

// PrintRecord outputs a human-readable summary of the structured CV.
func (p *Printer) PrintRecord(record *types.Record) {
	if record == nil {
		return
	}

	var sb strings.Builder

	title := record.ProfessionalTitle
	if title == "" {
		title = "(none)"
	}
	sb.WriteString(fmt.Sprintf("Title:    %s\n", title))
	sb.WriteString(fmt.Sprintf("Sections: %d diplomas, %d certifications\n",
		len(record.Diplomas), len(record.Certifications)))
	sb.WriteString(fmt.Sprintf("          %d skill groups, %d languages, %d experiences\n",
		len(record.SkillGroups), len(record.Languages), len(record.Experiences)))

	if len(record.Experiences) > 0 {
		sb.WriteString("\nExperiences:\n")
		count := min(len(record.Experiences), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := record.Experiences[i]
			sb.WriteString(fmt.Sprintf("  • %s — %s (%s)\n", exp.Company, exp.Role, exp.Period))
		}
		if len(record.Experiences) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Experiences)-maxItemsToShow))
		}
	}

	if len(record.SkillGroups) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(record.SkillGroups), 3)
		for i := 0; i < count; i++ {
			group := record.SkillGroups[i]
			skills := strings.Join(group.Skills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", group.Category, skills))
		}
		if len(record.SkillGroups) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.SkillGroups)-3))
		}
	}

	p.printBox("STRUCTURED CV", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnonymization outputs which identity fields were present before
// anonymization cleared them.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAnonymization(before *types.Record) {
	if before == nil {
		return
	}

	fields := []struct {
		label string
		value string
	}{
		{"name", before.Name},
		{"email", before.Email},
		{"phone", before.Phone},
		{"address", before.Address},
		{"photo", before.Photo},
	}

	var cleared []string
	for _, f := range fields {
		if f.value != "" {
			cleared = append(cleared, f.label)
		}
	}

	if len(cleared) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO IDENTITY FIELDS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Cleared %d identity fields:\n\n", len(cleared)))
	for _, label := range cleared {
		sb.WriteString(fmt.Sprintf("  • %s\n", label))
	}

	p.printBox("ANONYMIZATION", strings.TrimSuffix(sb.String(), "\n"))
}
