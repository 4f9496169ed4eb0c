// Package paths provides centralized path handling for unbox.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvCacheDir overrides the XDG cache directory for unbox
	EnvCacheDir = "UNBOX_CACHE_DIR"

	// EnvConfigDir overrides the XDG config directory for unbox
	EnvConfigDir = "UNBOX_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for unbox
	EnvStateDir = "UNBOX_STATE_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name for unbox-specific files
	AppDirName = "unbox"

	// ConfigFileName is the name of the runtime configuration file
	ConfigFileName = "unbox.toml"

	// ArchivesDir is the cache subdirectory holding downloaded archives
	ArchivesDir = "archives"

	// LogFileName is the name of the log file
	LogFileName = "unbox.log"
)

// Paths provides centralized path management for unbox
type Paths interface {
	CacheDir() string
	ArchiveCacheDir() string
	ConfigDir() string
	ConfigFilePath() string
	StateDir() string
	LogFilePath() string
}

type paths struct {
	cacheDir  string
	configDir string
	stateDir  string
}

// New creates a Paths instance, honoring the UNBOX_* environment overrides
// and falling back to the XDG base directories.
func New() Paths {
	p := &paths{}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		p.cacheDir = dir
	} else {
		p.cacheDir = filepath.Join(xdg.CacheHome, AppDirName)
	}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = dir
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = dir
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p
}

func (p *paths) CacheDir() string {
	return p.cacheDir
}

// ArchiveCacheDir is the default cache root for downloaded archives. It is
// the reconciler's durable handoff between repeated invocations.
func (p *paths) ArchiveCacheDir() string {
	return filepath.Join(p.cacheDir, ArchivesDir)
}

func (p *paths) ConfigDir() string {
	return p.configDir
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

func (p *paths) StateDir() string {
	return p.stateDir
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}
