package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Kind selects how a question is asked and how its answer is parsed.
type Kind int

const (
	// Input asks for free text. An empty reply yields Default.
	Input Kind = iota
	// Confirm asks a yes/no question. An empty reply yields DefaultYes.
	Confirm
)

// Question is one entry in a prompt sequence.
type Question struct {
	Name       string
	Message    string
	Kind       Kind
	Default    string // Input only
	DefaultYes bool   // Confirm only
}

// Answers maps question names to their answers: string for Input, bool for
// Confirm.
type Answers map[string]any

// String returns the Input answer for name, or "" if there is none.
func (a Answers) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Bool returns the Confirm answer for name, or false if there is none.
func (a Answers) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Asker asks a list of questions in order.
type Asker interface {
	Ask(ctx context.Context, questions []Question) (Answers, error)
}

var (
	markStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	messageStyle = lipgloss.NewStyle().Bold(true)
	hintStyle    = lipgloss.NewStyle().Faint(true)
)

// Terminal is an Asker reading replies line by line from r and writing
// questions to w.
type Terminal struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewTerminal returns a Terminal over r and w.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{reader: bufio.NewReader(r), w: w}
}

// Ask asks each question and waits for a reply with no timeout. If ctx is
// cancelled while waiting, Ask returns ctx.Err().
func (t *Terminal) Ask(ctx context.Context, questions []Question) (Answers, error) {
	answers := make(Answers, len(questions))
	for _, q := range questions {
		v, err := t.ask(ctx, q)
		if err != nil {
			return nil, err
		}
		answers[q.Name] = v
	}
	return answers, nil
}

func (t *Terminal) ask(ctx context.Context, q Question) (any, error) {
	for {
		fmt.Fprintf(t.w, "%s %s %s ", markStyle.Render("?"), messageStyle.Render(q.Message), hintStyle.Render(hint(q)))

		line, err := t.readLine(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading answer for %q: %w", q.Name, err)
		}

		switch q.Kind {
		case Confirm:
			if v, ok := parseConfirm(line, q.DefaultYes); ok {
				return v, nil
			}
			fmt.Fprintln(t.w, hintStyle.Render("Please answer y or n."))
		default:
			if line == "" {
				return q.Default, nil
			}
			return line, nil
		}
	}
}

type readResult struct {
	line string
	err  error
}

// readLine reads one line, trimmed. The read runs on its own goroutine so a
// cancelled context can abandon it; the goroutine ends when input arrives or
// the process exits.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	ch := make(chan readResult, 1)
	go func() {
		line, err := t.reader.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		// A final line without a newline is still an answer.
		if r.err != nil && !(errors.Is(r.err, io.EOF) && r.line != "") {
			return "", r.err
		}
		return strings.TrimSpace(r.line), nil
	}
}

func hint(q Question) string {
	if q.Kind == Confirm {
		if q.DefaultYes {
			return "(Y/n)"
		}
		return "(y/N)"
	}
	if q.Default != "" {
		return "(" + q.Default + ")"
	}
	return ""
}

func parseConfirm(line string, def bool) (bool, bool) {
	switch strings.ToLower(line) {
	case "":
		return def, true
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}
