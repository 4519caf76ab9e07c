package prompt

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestTerminalAsk(t *testing.T) {
	questions := []Question{
		{Name: "projectName", Message: "What is the name of the project?", Kind: Input, Default: "farm-stack-app"},
		{Name: "disableGit", Message: "Disable git repo?", Kind: Confirm},
		{Name: "disableInstall", Message: "Don't install dependencies automatically?", Kind: Confirm},
	}

	tests := []struct {
		name    string
		input   string
		project string
		git     bool
		install bool
	}{
		{"all defaults", "\n\n\n", "farm-stack-app", false, false},
		{"explicit answers", "demo\ny\nno\n", "demo", true, false},
		{"uppercase yes", "  my-app  \nYES\nY\n", "my-app", true, true},
		{"last line without newline", "demo\nn\ny", "demo", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			term := NewTerminal(strings.NewReader(tt.input), &out)

			answers, err := term.Ask(context.Background(), questions)
			if err != nil {
				t.Fatalf("Ask: %v", err)
			}
			if got := answers.String("projectName"); got != tt.project {
				t.Errorf("projectName = %q, want %q", got, tt.project)
			}
			if got := answers.Bool("disableGit"); got != tt.git {
				t.Errorf("disableGit = %v, want %v", got, tt.git)
			}
			if got := answers.Bool("disableInstall"); got != tt.install {
				t.Errorf("disableInstall = %v, want %v", got, tt.install)
			}
			if !strings.Contains(out.String(), "Disable git repo?") {
				t.Errorf("question text not written, got %q", out.String())
			}
		})
	}
}

func TestTerminalAskRepeatsInvalidConfirm(t *testing.T) {
	var out strings.Builder
	term := NewTerminal(strings.NewReader("maybe\ny\n"), &out)

	answers, err := term.Ask(context.Background(), []Question{{Name: "ok", Message: "Continue?", Kind: Confirm}})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !answers.Bool("ok") {
		t.Error("expected true after re-ask")
	}
	if strings.Count(out.String(), "Continue?") != 2 {
		t.Errorf("expected question to be asked twice, got %q", out.String())
	}
}

func TestTerminalAskEOF(t *testing.T) {
	term := NewTerminal(strings.NewReader(""), io.Discard)
	_, err := term.Ask(context.Background(), []Question{{Name: "name", Message: "Name?"}})
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestTerminalAskCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	term := NewTerminal(r, io.Discard)
	_, err := term.Ask(ctx, []Question{{Name: "name", Message: "Name?"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAnswersAccessors(t *testing.T) {
	a := Answers{"s": "text", "b": true}
	if a.String("s") != "text" || a.String("b") != "" || a.String("missing") != "" {
		t.Error("String accessor mismatch")
	}
	if !a.Bool("b") || a.Bool("s") || a.Bool("missing") {
		t.Error("Bool accessor mismatch")
	}
}
