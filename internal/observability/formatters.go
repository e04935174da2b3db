// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/yaswanth-142004/EZ-Search/internal/crawling"
	"github.com/yaswanth-142004/EZ-Search/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
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
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintInterviewContext outputs the job context of a run.
func (p *Printer) PrintInterviewContext(ic types.InterviewContext) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", ic.CompanyName))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", ic.JobRole))
	sb.WriteString(fmt.Sprintf("Details:  %s", ic.JobDescription))
	p.printBox("INTERVIEW CONTEXT", sb.String())
}

// PrintSourceReports outputs the per-source harvest outcome.
func (p *Printer) PrintSourceReports(reports []crawling.SourceReport) {
	if len(reports) == 0 {
		return
	}

	var sb strings.Builder
	for _, r := range reports {
		mark := "✓"
		if r.Status != crawling.SourceOK {
			mark = "✗"
		}
		line := fmt.Sprintf("%s %3d  %s", mark, r.Questions, r.URL)
		if r.Rendered {
			line += " (rendered)"
		}
		sb.WriteString(line + "\n")
	}
	p.printBox("HARVEST SOURCES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestionSet outputs the first harvested questions and the per-type totals.
func (p *Printer) PrintQuestionSet(qs types.QuestionSet) {
	counts := qs.CountByType()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %d  (DSA: %d, HR: %d)\n",
		len(qs), counts[types.QuestionTypeDSA], counts[types.QuestionTypeHR]))
	if len(qs) > 0 {
		sb.WriteString("\n")
	}
	count := min(len(qs), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", qs[i].Type, qs[i].Question))
	}
	if len(qs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(qs)-maxItemsToShow))
	}

	p.printBox("HARVESTED QUESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCuratedResult outputs how the curated result was produced.
func (p *Printer) PrintCuratedResult(r *types.CuratedResult) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Result: %s\n", r.Kind))
	if r.Reason != "" {
		sb.WriteString(fmt.Sprintf("Reason: %s\n", r.Reason))
	}
	if len(r.SchemaViolations) > 0 {
		sb.WriteString(fmt.Sprintf("\nSchema notes (%d):\n", len(r.SchemaViolations)))
		count := min(len(r.SchemaViolations), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", r.SchemaViolations[i]))
		}
	}

	p.printBox("CURATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDSAQuestions outputs a company's DSA table entry.
func (p *Printer) PrintDSAQuestions(company string, questions []types.DSAQuestion) {
	var sb strings.Builder
	for i, q := range questions {
		line := fmt.Sprintf("%2d. %s", i+1, q.Name())
		if q.Difficulty != "" {
			line += fmt.Sprintf(" (%s)", q.Difficulty)
		}
		sb.WriteString(line + "\n")
		if len(q.Subtopics) > 0 {
			sb.WriteString(fmt.Sprintf("    %s\n", strings.Join(q.Subtopics, ", ")))
		}
	}
	if len(questions) == 0 {
		sb.WriteString("(no questions)")
	}

	p.printBox(fmt.Sprintf("DSA QUESTIONS: %s", strings.ToUpper(company)), strings.TrimSuffix(sb.String(), "\n"))
}

// WriteJSON writes v as 4-space indented JSON followed by a newline.
func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}
