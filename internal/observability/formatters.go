// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-roadmap/internal/types"
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

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintUserProfile outputs a human-readable summary of the structured profile.
func (p *Printer) PrintUserProfile(profile *types.UserProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target role: %s\n", profile.TargetRole))
	sb.WriteString(fmt.Sprintf("Experience:  %d years\n", profile.YearsOfExperience))
	sb.WriteString("\n")
	sb.WriteString(formatList("Current skills", profile.CurrentSkills))
	if profile.Constraints != nil {
		if profile.Constraints.TimeBudget != "" {
			sb.WriteString(fmt.Sprintf("Time budget: %s\n", profile.Constraints.TimeBudget))
		}
		if profile.Constraints.LearningBudget != "" {
			sb.WriteString(fmt.Sprintf("Learning budget: %s\n", profile.Constraints.LearningBudget))
		}
	}

	p.printBox("User Profile", sb.String())
}

// PrintMarketAnalysis outputs a human-readable summary of the analysis.
func (p *Printer) PrintMarketAnalysis(analysis *types.MarketAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(formatList("Market requires", analysis.RequiredSkillsFound))
	sb.WriteString(formatList("Critical gaps", analysis.CriticalSkillGaps))
	if analysis.AverageSalaryRange != "" {
		sb.WriteString(fmt.Sprintf("Salary range: %s\n", analysis.AverageSalaryRange))
	}
	if analysis.Degraded {
		sb.WriteString("Mode: degraded (no live market data)\n")
	} else {
		sb.WriteString(fmt.Sprintf("Sources: %d\n", len(analysis.MarketSources)))
	}

	p.printBox("Market Analysis", sb.String())
}

// formatList renders up to maxItemsToShow items with a truncation marker.
func formatList(label string, items []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(items)))
	for i, item := range items {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  - %s\n", item))
	}
	return sb.String()
}
