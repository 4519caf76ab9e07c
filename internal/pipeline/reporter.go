package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Reporter receives task progress events.
type Reporter interface {
	TaskStarted(title string)
	TaskSkipped(title string)
	TaskSucceeded(title string, elapsed time.Duration)
	TaskFailed(title string, err error)
}

// NopReporter ignores all events.
type NopReporter struct{}

func (NopReporter) TaskStarted(string)                  {}
func (NopReporter) TaskSkipped(string)                  {}
func (NopReporter) TaskSucceeded(string, time.Duration) {}
func (NopReporter) TaskFailed(string, error)            {}

var (
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	skipStyle    = lipgloss.NewStyle().Faint(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// clearLine returns the cursor to column 0 and erases the line.
const clearLine = "\r\x1b[2K"

// TerminalReporter prints one line per task. When Interactive is set, the
// running line is rewritten in place with the task's final status.
type TerminalReporter struct {
	Out         io.Writer
	Interactive bool
}

// NewTerminalReporter returns a reporter writing to w. It is interactive
// only when w is a terminal.
func NewTerminalReporter(w io.Writer) *TerminalReporter {
	interactive := false
	if f, ok := w.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &TerminalReporter{Out: w, Interactive: interactive}
}

func (r *TerminalReporter) TaskStarted(title string) {
	if r.Interactive {
		fmt.Fprintf(r.Out, "%s %s", runningStyle.Render("…"), title)
		return
	}
	fmt.Fprintf(r.Out, "[started] %s\n", title)
}

func (r *TerminalReporter) TaskSkipped(title string) {
	if r.Interactive {
		fmt.Fprintf(r.Out, "%s %s\n", skipStyle.Render("↓"), skipStyle.Render(title+" [skipped]"))
		return
	}
	fmt.Fprintf(r.Out, "[skipped] %s\n", title)
}

func (r *TerminalReporter) TaskSucceeded(title string, elapsed time.Duration) {
	if r.Interactive {
		fmt.Fprintf(r.Out, "%s%s %s %s\n", clearLine, doneStyle.Render("✔"), title, skipStyle.Render(elapsed.Round(time.Millisecond).String()))
		return
	}
	fmt.Fprintf(r.Out, "[completed] %s\n", title)
}

func (r *TerminalReporter) TaskFailed(title string, err error) {
	if r.Interactive {
		fmt.Fprintf(r.Out, "%s%s %s\n  %s\n", clearLine, failStyle.Render("✖"), title, failStyle.Render("→ "+err.Error()))
		return
	}
	fmt.Fprintf(r.Out, "[failed] %s: %v\n", title, err)
}
