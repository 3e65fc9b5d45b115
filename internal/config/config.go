package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"wavnorm.click/internal/fs"
)

// FileLoggingConfig controls rotated file logging
type FileLoggingConfig struct {
	Enabled    bool   `json:"enabled"`
	Filename   string `json:"filename"`     // log file path (empty = XDG state path)
	MaxSizeMB  int    `json:"max_size_mb"`  // max file size before rotation
	MaxBackups int    `json:"max_backups"`  // rotated files to keep
	MaxAgeDays int    `json:"max_age_days"` // max age before deletion
	Compress   bool   `json:"compress"`     // compress rotated files
}

// HistoryConfig controls the decode history database
type HistoryConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"` // database path (empty = XDG cache path)
}

// Config represents wavnorm configuration
type Config struct {
	Volume      float64            `json:"volume"`    // playback volume (0.0 to 1.0)
	LogLevel    string             `json:"log_level"` // debug, info, warn, error
	FileLogging *FileLoggingConfig `json:"file_logging,omitempty"`
	History     *HistoryConfig     `json:"history,omitempty"`
}

// Manager handles loading, validating, and resolving configuration
type Manager struct {
	fs  afero.Fs
	xdg *XDGDirs
}

// NewManager creates a configuration manager backed by the OS filesystem
func NewManager() *Manager {
	return NewManagerWithFilesystem(fs.NewDefaultFactory().Production())
}

// NewManagerWithFilesystem creates a configuration manager over the given
// filesystem, used by tests with an in-memory filesystem
func NewManagerWithFilesystem(filesystem afero.Fs) *Manager {
	slog.Debug("creating new config manager")
	return &Manager{
		fs:  filesystem,
		xdg: NewXDGDirs(),
	}
}

// DefaultConfig returns the built-in defaults
func (m *Manager) DefaultConfig() *Config {
	return &Config{
		Volume:   1.0,
		LogLevel: "warn",
		FileLogging: &FileLoggingConfig{
			Enabled:    false,
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
			Compress:   true,
		},
		History: &HistoryConfig{
			Enabled: true,
		},
	}
}

// LoadConfig discovers a config file through the XDG search paths, falling
// back to defaults when none exists.
func (m *Manager) LoadConfig() (*Config, error) {
	configPaths := m.xdg.ConfigPaths("config.json")
	slog.Debug("searching for config file", "paths", configPaths)

	for _, configPath := range configPaths {
		if _, err := m.fs.Stat(configPath); err == nil {
			slog.Debug("found config file", "path", configPath)
			return m.LoadFromFile(configPath)
		}
	}

	slog.Debug("no config file found, using defaults")
	return m.DefaultConfig(), nil
}

// LoadFromFile loads configuration from a specific file
func (m *Manager) LoadFromFile(filePath string) (*Config, error) {
	data, err := afero.ReadFile(m.fs, filePath)
	if err != nil {
		slog.Error("failed to read config file", "file_path", filePath, "error", err)
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := m.DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		slog.Error("failed to parse config JSON", "file_path", filePath, "error", err)
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := m.ValidateConfig(config); err != nil {
		slog.Error("config validation failed", "file_path", filePath, "error", err)
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	slog.Debug("config loaded",
		"file_path", filePath,
		"volume", config.Volume,
		"log_level", config.LogLevel)

	return config, nil
}

// SaveToFile writes the configuration as indented JSON
func (m *Manager) SaveToFile(config *Config, filePath string) error {
	if err := m.ValidateConfig(config); err != nil {
		return fmt.Errorf("cannot save invalid config: %w", err)
	}

	if err := m.fs.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(m.fs, filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	slog.Info("config saved", "file_path", filePath)
	return nil
}

// ValidateConfig checks configuration values
func (m *Manager) ValidateConfig(config *Config) error {
	var problems []string

	if config.Volume < 0.0 || config.Volume > 1.0 {
		problems = append(problems, fmt.Sprintf("volume must be between 0.0 and 1.0, got %f", config.Volume))
	}

	if config.LogLevel != "" {
		switch strings.ToLower(config.LogLevel) {
		case "debug", "info", "warn", "error":
		default:
			problems = append(problems, fmt.Sprintf("invalid log level %q", config.LogLevel))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ApplyEnvironmentOverrides returns a copy of the config with WAVNORM_*
// environment variables applied on top.
func (m *Manager) ApplyEnvironmentOverrides(config *Config) *Config {
	result := *config

	if level := os.Getenv("WAVNORM_LOG_LEVEL"); level != "" {
		slog.Debug("applying log level override", "value", level)
		result.LogLevel = level
	}

	if volumeStr := os.Getenv("WAVNORM_VOLUME"); volumeStr != "" {
		if volume, err := strconv.ParseFloat(volumeStr, 64); err == nil && volume >= 0 && volume <= 1 {
			slog.Debug("applying volume override", "value", volume)
			result.Volume = volume
		} else {
			slog.Warn("ignoring invalid WAVNORM_VOLUME", "value", volumeStr)
		}
	}

	if historyStr := os.Getenv("WAVNORM_HISTORY"); historyStr != "" {
		if enabled, err := strconv.ParseBool(historyStr); err == nil {
			history := HistoryConfig{Enabled: enabled}
			if result.History != nil {
				history.Path = result.History.Path
			}
			result.History = &history
		} else {
			slog.Warn("ignoring invalid WAVNORM_HISTORY", "value", historyStr)
		}
	}

	return &result
}

// ResolveLogFilePath returns the effective log file location, defaulting
// to the XDG state directory.
func (m *Manager) ResolveLogFilePath(filename string) string {
	if filename != "" {
		return filename
	}
	return filepath.Join(m.xdg.StatePath(), "wavnorm.log")
}

// ResolveHistoryPath returns the effective history database location,
// defaulting to the XDG cache directory.
func (m *Manager) ResolveHistoryPath(path string) string {
	if path != "" {
		return path
	}
	return filepath.Join(m.xdg.CachePath(), "history.db")
}
