package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/madstone-tech/loko/internal/core/usecases"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// Compile-time interface check
var _ usecases.ProgressReporter = (*ProgressReporter)(nil)

// ProgressReporter implements usecases.ProgressReporter for console output
// during plan enumeration, styled via lipgloss.
type ProgressReporter struct{}

// NewProgressReporter creates a new ProgressReporter.
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{}
}

// ReportProgress reports one emitted RenderedItem's progress as
// "[ 20%] message" when total is positive, or message alone otherwise.
func (r *ProgressReporter) ReportProgress(step string, current int, total int, message string) {
	if total > 0 {
		percent := (current * 100) / total
		fmt.Printf("  %s %s\n", mutedStyle.Render(fmt.Sprintf("[%3d%%]", percent)), message)
	} else {
		fmt.Printf("  %s\n", message)
	}
}

// ReportError reports a terminal resolution error.
func (r *ProgressReporter) ReportError(err error) {
	fmt.Println(errorStyle.Render("✗ Error: " + err.Error()))
}

// ReportSuccess reports a completed operation.
func (r *ProgressReporter) ReportSuccess(message string) {
	fmt.Println(successStyle.Render("✓ " + message))
}

// ReportInfo reports a non-fatal diagnostic, e.g. a collected Warning.
func (r *ProgressReporter) ReportInfo(message string) {
	fmt.Println(mutedStyle.Render("ℹ " + message))
}
