package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/ghgcalc/internal/emissions"
	"github.com/rshade/ghgcalc/internal/engine"
)

// Summary box layout.
const (
	summaryBoxWidth  = 60
	boxPaddingWidth  = 4
	scopeLabelFormat = "%-9s %s"
)

// boxBorderColor returns the Lip Gloss color used for summary box borders.
func boxBorderColor() lipgloss.Color { return lipgloss.Color("240") }

// boxTitleColor returns the Lip Gloss color used for summary box titles.
func boxTitleColor() lipgloss.Color { return lipgloss.Color("39") }

// colorError returns the color used for the failed-calculation count.
func colorError() lipgloss.Color { return lipgloss.Color("196") }

// isWriterTerminal reports whether w is a terminal file.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// RenderSummary writes the emission summary: a styled box on a terminal,
// plain lines otherwise.
func RenderSummary(w io.Writer, report engine.Report, opts engine.RenderOptions) error {
	if isWriterTerminal(w) {
		return renderStyledSummary(w, report, opts)
	}
	return renderPlainSummary(w, report, opts)
}

func summaryLines(report engine.Report, opts engine.RenderOptions) []string {
	f := opts.NumberFormatter()
	s := report.Summary
	lines := make([]string, 0, len(emissions.Scopes())+3)
	for _, scope := range emissions.Scopes() {
		lines = append(lines, fmt.Sprintf(scopeLabelFormat, scopeLabel(scope)+":",
			f.Emissions(s.ScopeTotal(scope), opts.Precision)))
	}
	lines = append(lines, fmt.Sprintf(scopeLabelFormat, "Total:", f.Emissions(s.TotalEmissions, opts.Precision)))
	return lines
}

func scopeLabel(scope emissions.Scope) string {
	switch scope {
	case emissions.Scope1:
		return "Scope 1"
	case emissions.Scope2:
		return "Scope 2"
	case emissions.Scope3:
		return "Scope 3"
	default:
		return string(scope)
	}
}

func renderStyledSummary(w io.Writer, report engine.Report, opts engine.RenderOptions) error {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(boxTitleColor())

	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(boxBorderColor()).
		Padding(0, 1).
		Width(summaryBoxWidth)

	var content strings.Builder
	content.WriteString(titleStyle.Render("EMISSIONS SUMMARY"))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", summaryBoxWidth-boxPaddingWidth))
	content.WriteString("\n\n")
	content.WriteString(strings.Join(summaryLines(report, opts), "\n"))
	content.WriteString("\n")

	s := report.Summary
	counts := fmt.Sprintf("%d calculated", s.CalculationCount)
	if s.ErrorCount > 0 {
		counts += ", " + lipgloss.NewStyle().Foreground(colorError()).Render(fmt.Sprintf("%d failed", s.ErrorCount))
	}
	content.WriteString("\n" + counts)

	if !report.Equivalencies.IsEmpty {
		eqStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("246"))
		content.WriteString("\n\n" + eqStyle.Render(report.Equivalencies.DisplayText))
	}

	_, err := fmt.Fprintln(w, borderStyle.Render(content.String()))
	return err
}

func renderPlainSummary(w io.Writer, report engine.Report, opts engine.RenderOptions) error {
	if _, err := fmt.Fprintln(w, "\nEMISSIONS SUMMARY"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "================="); err != nil {
		return err
	}
	for _, line := range summaryLines(report, opts) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if !report.Equivalencies.IsEmpty {
		if _, err := fmt.Fprintln(w, report.Equivalencies.DisplayText); err != nil {
			return err
		}
	}
	return nil
}
