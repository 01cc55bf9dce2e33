package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	filtrationerrors "github.com/958877748/Filtration/pkg/errors"
)

const (
	// DirName is the per-user directory holding settings and the clipboard.
	DirName = ".filtration"
	// SettingsFileName is the settings file inside DirName.
	SettingsFileName = "config.yaml"
	// ClipboardFileName is the default clipboard file inside DirName.
	ClipboardFileName = "clipboard.filter"
	// RecentFileName is the default recent-scripts list inside DirName.
	RecentFileName = "recent.json"
)

// Settings is the application settings file.
type Settings struct {
	ScriptDirectory string      `yaml:"script_directory"`
	ClipboardPath   string      `yaml:"clipboard_path" validate:"required"`
	RecentPath      string      `yaml:"recent_path" validate:"required"`
	RecentLimit     int         `yaml:"recent_limit" validate:"gte=0,lte=100"`
	Log             LogSettings `yaml:"log"`
	Git             GitSettings `yaml:"git"`
}

// LogSettings configures the zerolog logger.
type LogSettings struct {
	Level         string `yaml:"level" validate:"oneof=debug info warn error"`
	HumanReadable bool   `yaml:"human_readable"`
}

// GitSettings configures the commit-on-save store decorator.
type GitSettings struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name" validate:"required_if=AutoCommit true"`
	AuthorEmail string `yaml:"author_email" validate:"omitempty,email"`
}

// DefaultDir returns ~/.filtration.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DirName), nil
}

// DefaultSettingsPath returns ~/.filtration/config.yaml.
func DefaultSettingsPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings(dir string) *Settings {
	return &Settings{
		ClipboardPath: filepath.Join(dir, ClipboardFileName),
		RecentPath:    filepath.Join(dir, RecentFileName),
		RecentLimit:   20,
		Log: LogSettings{
			Level: "warn",
		},
		Git: GitSettings{
			AuthorName:  "Filtration",
			AuthorEmail: "filtration@example.com",
		},
	}
}

// LoadSettings reads the settings file at path on top of the defaults. A
// missing file yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, filtrationerrors.NewParseError(path, 0, err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, filtrationerrors.NewParseError(path, extractLine(err), err)
	}

	settings.ScriptDirectory, err = expandHome(settings.ScriptDirectory)
	if err != nil {
		return nil, filtrationerrors.NewParseError(path, 0, err)
	}
	settings.ClipboardPath, err = expandHome(settings.ClipboardPath)
	if err != nil {
		return nil, filtrationerrors.NewParseError(path, 0, err)
	}
	settings.RecentPath, err = expandHome(settings.RecentPath)
	if err != nil {
		return nil, filtrationerrors.NewParseError(path, 0, err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// ValidateSettings performs struct validation on settings.
func ValidateSettings(settings *Settings) error {
	if settings == nil {
		return filtrationerrors.NewValidationError("settings", "settings are nil", nil)
	}
	if err := validatorInstance().Struct(settings); err != nil {
		return convertValidationError(err)
	}
	return nil
}

// ResolveScriptPath joins a relative script path onto ScriptDirectory.
func (s *Settings) ResolveScriptPath(path string) string {
	if s == nil || s.ScriptDirectory == "" || filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return filepath.Join(s.ScriptDirectory, path)
}

func expandHome(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
