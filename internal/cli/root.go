package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/farm-stack/create-farm-app/internal/branding"
	"github.com/farm-stack/create-farm-app/internal/config"
	"github.com/farm-stack/create-farm-app/internal/doctor"
	"github.com/farm-stack/create-farm-app/internal/options"
	"github.com/farm-stack/create-farm-app/internal/project"
	"github.com/farm-stack/create-farm-app/internal/prompt"
	"github.com/farm-stack/create-farm-app/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// env holds everything the root command touches outside the process, so
// tests can replace it.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	getwd          func() (string, error)
	loadSettings   func() (*config.Settings, error)
	locateTemplate func(override string) (string, error)

	// asker defaults to a terminal on stdin/stdout.
	asker  prompt.Asker
	deps   project.Deps
	doctor doctor.Deps
}

func defaultEnv() *env {
	return &env{
		stdin:          os.Stdin,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		getwd:          os.Getwd,
		loadSettings:   config.LoadDefault,
		locateTemplate: scaffold.LocateDefaultTemplate,
	}
}

func newRootCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   branding.CLIName() + " [flags]",
		Short: branding.Description(),
		Long: branding.DisplayName() + ` project generator.

Copies the bundled template into ./<name>, initializes the frontend app,
installs the backend dependencies and initializes a git repository. Anything
not given on the command line is asked interactively unless --yes is set.

Settings are read from ` + config.FilePath() + ` and ` + branding.EnvPrefix() + `_* environment
variables, for example ` + branding.EnvVar("git_command") + `=hg.`,
		Example: `  ` + branding.CLIName() + ` --name my-app
  ` + branding.CLIName() + ` --name my-app --yes --no-git`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd.Context(), cmd, args, e)
		},
	}
	// Registered for help output and so cobra can tell flag values from
	// subcommand names; parsing itself happens in options.Parse.
	cmd.Flags().AddFlagSet(options.FlagSet(&options.Options{}))
	cmd.SetIn(e.stdin)
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)

	cmd.AddCommand(newVersionCmd(), newDoctorCmd(e))
	return cmd
}

// Execute runs the root command with build info injected via ldflags. Errors
// are reported before they are returned; pass the error to ExitCode for the
// process status.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := defaultEnv()
	err := newRootCmd(e).ExecuteContext(ctx)
	if err != nil {
		reportError(e.stderr, err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	var argErr *options.ArgumentError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &argErr):
		return ExitUsage
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitFailure
	}
}
