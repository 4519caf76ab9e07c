package project

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/farm-stack/create-farm-app/internal/config"
	"github.com/farm-stack/create-farm-app/internal/logging"
	"github.com/farm-stack/create-farm-app/internal/options"
	"github.com/farm-stack/create-farm-app/internal/pipeline"
	"github.com/farm-stack/create-farm-app/internal/scaffold"
	"github.com/farm-stack/create-farm-app/internal/shell"
	"github.com/spf13/afero"
)

// Task titles, in run order.
const (
	TitleCopy     = "Copy project files"
	TitleFrontend = "Initialize frontend app"
	TitleBackend  = "Initialize backend app"
	TitleGit      = "Initialize git repo"
)

var (
	// ErrTemplateUnavailable means the template tree could not be read. No
	// task was attempted.
	ErrTemplateUnavailable = scaffold.ErrTemplateUnavailable

	ErrCopyFailed         = errors.New("failed to copy project files")
	ErrFrontendInitFailed = errors.New("failed to initialize frontend app")
	ErrBackendInitFailed  = errors.New("failed to install backend dependencies")
	ErrGitInitFailed      = errors.New("failed to initialize git repo")
)

// Deps are the collaborators a run uses. Zero fields get production
// defaults.
type Deps struct {
	Fs       afero.Fs
	Copier   scaffold.Copier
	Runner   shell.Runner
	Reporter pipeline.Reporter
	Settings *config.Settings
}

func (d Deps) withDefaults() Deps {
	if d.Fs == nil {
		d.Fs = afero.NewOsFs()
	}
	if d.Copier == nil {
		d.Copier = scaffold.NewTreeCopier(d.Fs)
	}
	if d.Runner == nil {
		d.Runner = &shell.ExecRunner{}
	}
	if d.Settings == nil {
		d.Settings = config.Defaults()
	}
	return d
}

// Create checks that the template is readable and then runs the setup tasks.
// A template failure is returned before any task is built. Otherwise the
// returned error is the pipeline result's error.
func Create(ctx context.Context, opts *options.Options, deps Deps) (*pipeline.Result, error) {
	deps = deps.withDefaults()

	if err := scaffold.CheckTemplate(deps.Fs, opts.TemplateDirectory); err != nil {
		return nil, err
	}

	logging.Debug("Creating project",
		"name", opts.ProjectName,
		"target", opts.TargetDirectory,
		"template", opts.TemplateDirectory,
		"git", !opts.DisableGit,
		"install", !opts.DisableInstall)

	res := pipeline.New(deps.Reporter).Run(ctx, Tasks(opts, deps))
	if res.Err != nil {
		return res, res.Err
	}
	logging.Info("Project created", "target", opts.TargetDirectory)
	return res, nil
}

// Tasks builds the setup tasks for opts, always the same four in the same
// order.
func Tasks(opts *options.Options, deps Deps) []pipeline.Task {
	deps = deps.withDefaults()
	s := deps.Settings

	return []pipeline.Task{
		{
			Title: TitleCopy,
			Run: func(context.Context) error {
				if err := deps.Copier.CopyTree(opts.TemplateDirectory, opts.TargetDirectory); err != nil {
					return fmt.Errorf("%w: %w", ErrCopyFailed, err)
				}
				return nil
			},
		},
		{
			Title: TitleFrontend,
			Run:   commandTask(deps.Runner, opts, s.Frontend, ErrFrontendInitFailed),
		},
		{
			Title:   TitleBackend,
			Enabled: func() bool { return !opts.DisableInstall },
			Run:     commandTask(deps.Runner, opts, s.Backend, ErrBackendInitFailed),
		},
		{
			Title:   TitleGit,
			Enabled: func() bool { return !opts.DisableGit },
			Run:     commandTask(deps.Runner, opts, s.Git, ErrGitInitFailed),
		},
	}
}

// Command returns the invocation for cs inside the target directory.
func Command(opts *options.Options, cs config.CommandSettings) shell.Command {
	return shell.Command{
		Name: cs.Command,
		Args: cs.Args,
		Dir:  filepath.Join(opts.TargetDirectory, cs.Dir),
	}
}

func commandTask(runner shell.Runner, opts *options.Options, cs config.CommandSettings, failure error) func(context.Context) error {
	return func(ctx context.Context) error {
		cmd := Command(opts, cs)
		res := runner.Run(ctx, cmd)
		if !res.Failed {
			return nil
		}
		if res.Err != nil {
			return fmt.Errorf("%w: %s: %w", failure, cmd, res.Err)
		}
		return fmt.Errorf("%w: %s: %s", failure, cmd, res.Reason())
	}
}
