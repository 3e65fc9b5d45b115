package config

import (
	"log/slog"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appDir = "wavnorm"

// XDGDirs provides XDG Base Directory compliant paths for wavnorm
type XDGDirs struct{}

// NewXDGDirs creates a new XDG directory manager
func NewXDGDirs() *XDGDirs {
	return &XDGDirs{}
}

// ConfigPaths returns candidate config file locations in search order:
// user config dir first, then system config dirs.
func (x *XDGDirs) ConfigPaths(filename string) []string {
	paths := []string{filepath.Join(xdg.ConfigHome, appDir, filename)}

	for _, configDir := range xdg.ConfigDirs {
		paths = append(paths, filepath.Join(configDir, appDir, filename))
	}

	slog.Debug("generated config search paths",
		"filename", filename,
		"total_paths", len(paths))

	return paths
}

// CachePath returns the cache directory for wavnorm
func (x *XDGDirs) CachePath() string {
	return filepath.Join(xdg.CacheHome, appDir)
}

// StatePath returns the state directory for wavnorm, used for logs
func (x *XDGDirs) StatePath() string {
	return filepath.Join(xdg.StateHome, appDir)
}
