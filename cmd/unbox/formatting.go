package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/arthur-debert/unbox/pkg/types"
)

var (
	satisfiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	changedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	nameStyle      = lipgloss.NewStyle().Bold(true)
	detailStyle    = lipgloss.NewStyle().Faint(true)
)

// styled applies a lipgloss style only when stdout is a terminal.
func styled(style lipgloss.Style, s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return style.Render(s)
}

func outcomeLabel(o types.Outcome) string {
	switch o {
	case types.OutcomeSatisfied:
		return styled(satisfiedStyle, "satisfied")
	case types.OutcomeChanged:
		return styled(changedStyle, "changed")
	default:
		return styled(failedStyle, "failed")
	}
}

// renderResult formats one state's terminal result as a single line plus
// indented change details.
func renderResult(name string, result *types.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s  %s", styled(nameStyle, name), outcomeLabel(result.Outcome), result.Message)

	if dirs := result.Changes.DirectoriesCreated; len(dirs) > 0 {
		fmt.Fprintf(&b, "\n  %s", styled(detailStyle, "directories created: "+strings.Join(dirs, ", ")))
	}
	if files := result.Changes.ExtractedFiles; len(files) > 0 {
		fmt.Fprintf(&b, "\n  %s", styled(detailStyle, fmt.Sprintf("extracted %d entries", len(files))))
	}
	if out := result.Changes.CommandOutput; out != nil {
		fmt.Fprintf(&b, "\n  %s", styled(detailStyle, fmt.Sprintf("exit code %d", out.ExitCode)))
		if trimmed := strings.TrimSpace(out.Stderr); trimmed != "" {
			fmt.Fprintf(&b, "\n  %s", styled(detailStyle, trimmed))
		}
	}
	return b.String()
}

func renderSummary(total, changed, failed int) string {
	summary := fmt.Sprintf("%d states: %d changed, %d failed", total, changed, failed)
	if failed > 0 {
		return styled(failedStyle, summary)
	}
	return styled(detailStyle, summary)
}
