package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/farm-stack/create-farm-app/internal/branding"
	"github.com/farm-stack/create-farm-app/internal/options"
	"github.com/farm-stack/create-farm-app/internal/pipeline"
	"github.com/farm-stack/create-farm-app/internal/scaffold"
)

var (
	errorLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true).Render("ERROR")
	doneLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true).Render("DONE")
)

func reportDone(w io.Writer) {
	fmt.Fprintf(w, "%s Project ready\n", doneLabel)
}

// reportError prints err in the form matching its kind.
func reportError(w io.Writer, err error) {
	var (
		argErr  *options.ArgumentError
		tmplErr *scaffold.TemplateError
		taskErr *pipeline.TaskError
	)

	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(w, "Aborted.")
	case errors.As(err, &argErr):
		fmt.Fprintf(w, "%s %v\nRun '%s --help' for usage.\n", errorLabel, argErr.Err, branding.CLIName())
	case errors.As(err, &tmplErr):
		fmt.Fprintf(w, "%s Cannot access template directory %s\n", errorLabel, tmplErr.Path)
	case errors.As(err, &taskErr):
		fmt.Fprintf(w, "%s %s: %v\n", errorLabel, taskErr.Title, taskErr.Err)
	default:
		fmt.Fprintf(w, "%s %v\n", errorLabel, err)
	}
}
