package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Notifier receives progress as the pipeline runs. StepStarted is not
// called for skipped steps.
type Notifier interface {
	StepStarted(name string)
	StepFinished(res StepResult)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) StepStarted(string) {}
func (NopNotifier) StepFinished(StepResult) {}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// WriterNotifier prints one line per finished step.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) StepStarted(string) {}

func (n WriterNotifier) StepFinished(res StepResult) {
	switch {
	case res.State == StateFailed:
		fmt.Fprintf(n.W, "%s %s: %v\n", failStyle.Render("✗"), res.Name, res.Err)
	case res.Skipped:
		fmt.Fprintf(n.W, "%s %s (%s)\n", skipStyle.Render("-"), res.Name, res.Reason)
	default:
		fmt.Fprintf(n.W, "%s %s\n", okStyle.Render("✓"), res.Name)
	}
}
