// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/interview-prep/internal/types"
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

// PrintJobAnalysis outputs a human-readable summary of the analyzed job description.
func (p *Printer) PrintJobAnalysis(analysis *types.JobAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:    %s\n", analysis.CompanyName))
	sb.WriteString(fmt.Sprintf("Role:       %s\n", analysis.JobTitle))
	if analysis.Seniority != "" {
		sb.WriteString(fmt.Sprintf("Seniority:  %s\n", analysis.Seniority))
	}
	if analysis.Industry != "" {
		sb.WriteString(fmt.Sprintf("Industry:   %s\n", analysis.Industry))
	}
	if analysis.Domain != "" {
		sb.WriteString(fmt.Sprintf("Domain:     %s\n", analysis.Domain))
	}

	if len(analysis.Skills) > 0 {
		sb.WriteString("\nKey Skills:\n")
		count := min(len(analysis.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", analysis.Skills[i]))
		}
		if len(analysis.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(analysis.Skills)-maxItemsToShow))
		}
	}

	p.printBox("JOB ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResultSummary outputs per-category question counts for a result set.
func (p *Printer) PrintResultSummary(results *types.ResultSet) {
	if results == nil || results.Count() == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total questions: %d\n\n", results.Count()))

	for _, category := range types.Categories() {
		questions := results.Get(category)
		if len(questions) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-18s %d\n", CategoryLabel(category)+":", len(questions)))
	}

	p.printBox("GENERATED QUESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestions outputs the first questions of a category with difficulty tags.
func (p *Printer) PrintQuestions(category types.Category, questions []types.Question) {
	if len(questions) == 0 {
		return
	}

	var sb strings.Builder

	count := min(len(questions), maxItemsToShow)
	for i := 0; i < count; i++ {
		q := questions[i]
		text := q.Question
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, text))
		if q.Difficulty != "" {
			sb.WriteString(fmt.Sprintf("    Difficulty: %s\n", q.Difficulty))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(questions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more questions", len(questions)-maxItemsToShow))
	}

	p.printBox(strings.ToUpper(CategoryLabel(category)), sb.String())
}

// CategoryLabel returns the display name for a category.
func CategoryLabel(category types.Category) string {
	return strings.ReplaceAll(string(category), "_", " ")
}
