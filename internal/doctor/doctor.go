package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/farm-stack/create-farm-app/internal/config"
	"github.com/farm-stack/create-farm-app/internal/logging"
	"github.com/farm-stack/create-farm-app/internal/scaffold"
	"github.com/farm-stack/create-farm-app/internal/shell"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// ErrProblemsFound is returned when at least one check is missing or failed.
var ErrProblemsFound = errors.New("environment check found problems")

// Status is the outcome of a single check.
type Status int

const (
	OK Status = iota
	Warn
	Missing
	Fail
)

func (s Status) label() string {
	switch s {
	case OK:
		return "[ OK ]"
	case Warn:
		return "[WARN]"
	case Missing:
		return "[MISS]"
	default:
		return "[FAIL]"
	}
}

// Check is one line of the report.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Deps are the collaborators the checks use. Zero fields get production
// defaults.
type Deps struct {
	Fs       afero.Fs
	Runner   shell.Runner
	LookPath func(string) (string, error)
}

func (d Deps) withDefaults() Deps {
	if d.Fs == nil {
		d.Fs = afero.NewOsFs()
	}
	if d.Runner == nil {
		d.Runner = &shell.ExecRunner{}
	}
	if d.LookPath == nil {
		d.LookPath = exec.LookPath
	}
	return d
}

// Tool is a configured command and the setup task it serves.
type Tool struct {
	Role     string
	Settings config.CommandSettings
}

// Tools lists the tools in s in task order.
func Tools(s *config.Settings) []Tool {
	return []Tool{
		{"frontend", s.Frontend},
		{"backend", s.Backend},
		{"git", s.Git},
	}
}

// Run checks templateDir and every tool in s, printing one line per check to
// w. A non-nil configErr is reported as a failed config check; s should then
// hold the settings the tools are checked against instead. It returns
// ErrProblemsFound when anything is missing or failed; version warnings alone
// are not an error.
func Run(ctx context.Context, w io.Writer, templateDir string, s *config.Settings, configErr error, deps Deps) ([]Check, error) {
	deps = deps.withDefaults()

	var checks []Check
	report := func(c Check) {
		checks = append(checks, c)
		fmt.Fprintf(w, "  %s %s: %s\n", c.Status.label(), c.Name, c.Detail)
	}

	fmt.Fprintln(w, "Environment check:")

	if configErr != nil {
		report(Check{Name: "config", Status: Fail, Detail: configErr.Error()})
	} else {
		report(Check{Name: "config", Status: OK, Detail: "valid"})
	}

	if err := scaffold.CheckTemplate(deps.Fs, templateDir); err != nil {
		report(Check{Name: "template", Status: Missing, Detail: err.Error()})
	} else {
		report(Check{Name: "template", Status: OK, Detail: templateDir})
	}

	// Probes are independent; results are printed in task order.
	tools := Tools(s)
	results := make([]Check, len(tools))
	g, gctx := errgroup.WithContext(ctx)
	for i, tool := range tools {
		g.Go(func() error {
			results[i] = checkTool(gctx, tool.Role, tool.Settings, deps)
			return nil
		})
	}
	_ = g.Wait()
	for _, c := range results {
		report(c)
	}

	for _, c := range checks {
		if c.Status == Missing || c.Status == Fail {
			return checks, ErrProblemsFound
		}
	}
	return checks, nil
}

func checkTool(ctx context.Context, role string, cs config.CommandSettings, deps Deps) Check {
	name := fmt.Sprintf("%s (%s)", role, cs.Command)

	path, err := deps.LookPath(cs.Command)
	if err != nil {
		return Check{Name: name, Status: Missing, Detail: "not found on PATH"}
	}
	if cs.MinVersion == "" {
		return Check{Name: name, Status: OK, Detail: path}
	}

	res := deps.Runner.Run(ctx, shell.Command{Name: cs.Command, Args: []string{"--version"}})
	if res.Failed {
		return Check{Name: name, Status: Fail, Detail: "--version: " + res.Reason()}
	}
	version, ok := ExtractVersion(res.Stdout + "\n" + res.Stderr)
	if !ok {
		logging.Debug("No version in output", "command", cs.Command, "stdout", res.Stdout)
		return Check{Name: name, Status: Warn, Detail: "could not determine version"}
	}

	ok, err = AtLeast(version, cs.MinVersion)
	switch {
	case err != nil:
		return Check{Name: name, Status: Warn, Detail: err.Error()}
	case !ok:
		return Check{Name: name, Status: Warn, Detail: fmt.Sprintf("%s is older than %s", version, cs.MinVersion)}
	default:
		return Check{Name: name, Status: OK, Detail: fmt.Sprintf("%s (>= %s)", version, cs.MinVersion)}
	}
}
