package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// TemplateDirName is the template tree's directory name, a sibling of the
// directory holding the executable.
const TemplateDirName = "template"

// ErrTemplateUnavailable is returned when the template tree cannot be read.
var ErrTemplateUnavailable = errors.New("template directory unavailable")

// TemplateError names the template path that failed the readability check.
type TemplateError struct {
	Path string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("cannot access template directory %s: %v", e.Path, e.Err)
}

// Is reports ErrTemplateUnavailable so callers can match with errors.Is.
func (e *TemplateError) Is(target error) bool { return target == ErrTemplateUnavailable }

func (e *TemplateError) Unwrap() error { return e.Err }

// LocateTemplate returns the absolute template path. A non-empty override
// wins; otherwise the path is <dir of executable>/../template, following
// symlinks to the executable first.
func LocateTemplate(executable, override string) (string, error) {
	if override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("resolving template override %s: %w", override, err)
		}
		return abs, nil
	}

	if resolved, err := filepath.EvalSymlinks(executable); err == nil {
		executable = resolved
	}
	abs, err := filepath.Abs(executable)
	if err != nil {
		return "", fmt.Errorf("resolving executable path %s: %w", executable, err)
	}
	return filepath.Join(filepath.Dir(abs), "..", TemplateDirName), nil
}

// LocateDefaultTemplate is LocateTemplate for the running executable.
func LocateDefaultTemplate(override string) (string, error) {
	if override != "" {
		return LocateTemplate("", override)
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("finding executable: %w", err)
	}
	return LocateTemplate(exe, "")
}

// CheckTemplate verifies that dir is a readable directory on fsys. Any
// failure is a *TemplateError matching ErrTemplateUnavailable.
func CheckTemplate(fsys afero.Fs, dir string) error {
	info, err := fsys.Stat(dir)
	if err != nil {
		return &TemplateError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &TemplateError{Path: dir, Err: errors.New("not a directory")}
	}

	f, err := fsys.Open(dir)
	if err != nil {
		return &TemplateError{Path: dir, Err: err}
	}
	defer f.Close()

	// Listing needs read permission on the directory itself.
	if _, err := f.Readdirnames(1); err != nil && !isEOF(err) {
		return &TemplateError{Path: dir, Err: err}
	}
	return nil
}
