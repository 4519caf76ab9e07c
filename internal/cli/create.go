package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/farm-stack/create-farm-app/internal/logging"
	"github.com/farm-stack/create-farm-app/internal/options"
	"github.com/farm-stack/create-farm-app/internal/pipeline"
	"github.com/farm-stack/create-farm-app/internal/project"
	"github.com/farm-stack/create-farm-app/internal/prompt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCreate resolves options and runs the setup pipeline.
func runCreate(ctx context.Context, cmd *cobra.Command, args []string, e *env) error {
	opts, err := options.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return cmd.Help()
	}
	if err != nil {
		return err
	}
	logging.SetVerbose(opts.Verbose)

	settings, err := e.loadSettings()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	asker := e.asker
	if asker == nil {
		asker = prompt.NewTerminal(e.stdin, e.stdout)
	}
	opts, err = options.Prompt(ctx, opts, asker)
	if err != nil {
		return err
	}

	cwd, err := e.getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}
	templateDir, err := e.locateTemplate(settings.TemplateDir)
	if err != nil {
		return fmt.Errorf("locating template: %w", err)
	}
	opts, err = options.Resolve(opts, cwd, templateDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, opts.TargetDirectory)

	deps := e.deps
	deps.Settings = settings
	if deps.Reporter == nil {
		deps.Reporter = pipeline.NewTerminalReporter(e.stdout)
	}

	if _, err := project.Create(ctx, opts, deps); err != nil {
		return err
	}

	reportDone(e.stdout)
	return nil
}
