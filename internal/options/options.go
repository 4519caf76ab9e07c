package options

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/farm-stack/create-farm-app/internal/branding"
	"github.com/spf13/pflag"
)

// Options is the resolved input to a scaffold run. It is not modified after
// Resolve returns.
type Options struct {
	ProjectName       string
	TargetDirectory   string
	TemplateDirectory string
	SkipPrompts       bool
	DisableGit        bool
	DisableInstall    bool
	Verbose           bool

	// NameExplicit records that --name carried a value, so a prompt answer
	// does not replace it.
	NameExplicit bool
}

// ArgumentError reports a command line that could not be parsed.
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string { return "invalid arguments: " + e.Err.Error() }
func (e *ArgumentError) Unwrap() error { return e.Err }

func argumentErrorf(format string, a ...any) error {
	return &ArgumentError{Err: fmt.Errorf(format, a...)}
}

// FlagSet returns a flag set with every recognized flag bound to o. It backs
// both Parse and the help text.
func FlagSet(o *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet(branding.CLIName(), pflag.ContinueOnError)
	fs.SortFlags = false
	fs.StringVar(&o.ProjectName, "name", "", "Project name, also the new directory's name (default \""+branding.DefaultProjectName()+"\")")
	fs.BoolVar(&o.DisableGit, "no-git", false, "Skip git repository initialization")
	fs.BoolVarP(&o.DisableInstall, "no-install", "i", false, "Skip backend dependency installation")
	fs.BoolVarP(&o.SkipPrompts, "yes", "y", false, "Skip all prompts and accept defaults")
	fs.BoolVarP(&o.Verbose, "verbose", "v", false, "Log resolved paths and command output")
	return fs
}

// Parse reads args (without the program name) into a partially populated
// Options. Directories are left empty. It returns pflag.ErrHelp when -h or
// --help is given, and an *ArgumentError for anything it does not recognize.
func Parse(args []string) (*Options, error) {
	o := &Options{}
	fs := FlagSet(o)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, &ArgumentError{Err: err}
	}
	if fs.NArg() > 0 {
		return nil, argumentErrorf("unexpected argument %q", fs.Arg(0))
	}

	if o.ProjectName == "" {
		o.ProjectName = branding.DefaultProjectName()
	} else {
		o.NameExplicit = true
	}
	if err := ValidateName(o.ProjectName); err != nil {
		return nil, &ArgumentError{Err: err}
	}
	return o, nil
}

// ValidateName checks that name can be used as a single directory name.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("project name must not be empty")
	case name == "." || name == "..":
		return fmt.Errorf("invalid project name %q", name)
	case strings.ContainsAny(name, `/\`) || filepath.Base(name) != name:
		return fmt.Errorf("invalid project name %q: must not contain path separators", name)
	}
	return nil
}

// Resolve derives TargetDirectory from cwd and ProjectName, unless it is
// already set, and records templateDir. cwd must be absolute.
func Resolve(o *Options, cwd, templateDir string) (*Options, error) {
	if !filepath.IsAbs(cwd) {
		return nil, fmt.Errorf("working directory %q is not absolute", cwd)
	}
	if templateDir == "" {
		return nil, fmt.Errorf("template directory is not set")
	}

	r := *o
	if r.TargetDirectory == "" {
		r.TargetDirectory = filepath.Join(cwd, r.ProjectName)
	} else if !filepath.IsAbs(r.TargetDirectory) {
		r.TargetDirectory = filepath.Join(cwd, r.TargetDirectory)
	}
	r.TemplateDirectory = filepath.Clean(templateDir)
	return &r, nil
}
