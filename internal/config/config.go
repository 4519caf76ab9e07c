package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/farm-stack/create-farm-app/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyTemplateDir     = "template_dir"
	KeyFrontendCommand = "frontend.command"
	KeyFrontendArgs    = "frontend.args"
	KeyFrontendMinVer  = "frontend.min_version"
	KeyBackendCommand  = "backend.command"
	KeyBackendArgs     = "backend.args"
	KeyBackendDir      = "backend.dir"
	KeyBackendMinVer   = "backend.min_version"
	KeyGitCommand      = "git.command"
	KeyGitArgs         = "git.args"
	KeyGitMinVer       = "git.min_version"
)

// CommandSettings describes one external command run by a setup task.
type CommandSettings struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
	// Dir is relative to the target directory. Empty means the target itself.
	Dir string `json:"dir,omitempty"`
	// MinVersion is the oldest tool version doctor accepts. Empty disables
	// the check.
	MinVersion string `json:"min_version,omitempty"`
}

// Settings is the resolved configuration for a run.
type Settings struct {
	TemplateDir string          `json:"template_dir"`
	Frontend    CommandSettings `json:"frontend"`
	Backend     CommandSettings `json:"backend"`
	Git         CommandSettings `json:"git"`
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		Frontend: CommandSettings{
			Command:    "yarn",
			Args:       []string{"create", "react-app", "frontend", "--template", "sammy-libraries"},
			MinVersion: "1.22.0",
		},
		Backend: CommandSettings{
			Command: "pipenv",
			Args:    []string{"install", "-r", "requirements.txt"},
			Dir:     "backend",
		},
		Git: CommandSettings{
			Command:    "git",
			Args:       []string{"init"},
			MinVersion: "2.0.0",
		},
	}
}

// Dir returns the path to the config directory (~/.create-farm-app/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load reads settings from the file at path and the environment, on top of
// Defaults. A missing file is not an error. The result is validated against
// the embedded schema.
func Load(path string) (*Settings, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	s := fromViper(v)
	if err := Check(s); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// LoadDefault loads settings from FilePath().
func LoadDefault() (*Settings, error) {
	return Load(FilePath())
}

func newViper() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyTemplateDir, d.TemplateDir)
	v.SetDefault(KeyFrontendCommand, d.Frontend.Command)
	v.SetDefault(KeyFrontendArgs, d.Frontend.Args)
	v.SetDefault(KeyFrontendMinVer, d.Frontend.MinVersion)
	v.SetDefault(KeyBackendCommand, d.Backend.Command)
	v.SetDefault(KeyBackendArgs, d.Backend.Args)
	v.SetDefault(KeyBackendDir, d.Backend.Dir)
	v.SetDefault(KeyBackendMinVer, d.Backend.MinVersion)
	v.SetDefault(KeyGitCommand, d.Git.Command)
	v.SetDefault(KeyGitArgs, d.Git.Args)
	v.SetDefault(KeyGitMinVer, d.Git.MinVersion)

	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) *Settings {
	return &Settings{
		TemplateDir: v.GetString(KeyTemplateDir),
		Frontend: CommandSettings{
			Command:    v.GetString(KeyFrontendCommand),
			Args:       v.GetStringSlice(KeyFrontendArgs),
			MinVersion: v.GetString(KeyFrontendMinVer),
		},
		Backend: CommandSettings{
			Command:    v.GetString(KeyBackendCommand),
			Args:       v.GetStringSlice(KeyBackendArgs),
			Dir:        v.GetString(KeyBackendDir),
			MinVersion: v.GetString(KeyBackendMinVer),
		},
		Git: CommandSettings{
			Command:    v.GetString(KeyGitCommand),
			Args:       v.GetStringSlice(KeyGitArgs),
			MinVersion: v.GetString(KeyGitMinVer),
		},
	}
}
