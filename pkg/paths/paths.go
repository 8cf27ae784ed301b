// Package paths provides centralized path handling for dotsmith.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/dotsmith-cli/dotsmith/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for dotfiles location
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvDataDir overrides the XDG data directory for dotsmith
	EnvDataDir = "DOTSMITH_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for dotsmith
	EnvConfigDir = "DOTSMITH_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for dotsmith
	EnvCacheDir = "DOTSMITH_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files.
// The dotfiles repository layout (configs/, profiles/, backups/) must stay
// consistent across installations; user-tunable names live in pkg/config.
const (
	// AppDirName is the directory name for dotsmith-specific files
	AppDirName = "dotsmith"

	// DefaultDotfilesDir is the default directory name for the dotfiles repo
	DefaultDotfilesDir = "dotfiles"

	// ConfigsDirName is the subdirectory holding managed config sources
	ConfigsDirName = "configs"

	// ProfilesDirName is the subdirectory holding profile documents
	ProfilesDirName = "profiles"

	// BackupsDirName is the subdirectory holding backup sessions
	BackupsDirName = "backups"

	// SettingsFile is the name of the optional repo-level settings file
	SettingsFile = "dotsmith.toml"

	// LogFileName is the name of the log file
	LogFileName = "dotsmith.log"
)

// Paths provides centralized path management for dotsmith
type Paths interface {
	DotfilesRoot() string
	UsedFallback() bool
	ConfigsDir() string
	ProfilesDir() string
	BackupsDir() string
	SettingsPath() string
	DataDir() string
	ConfigDir() string
	CacheDir() string
	StateDir() string
	LogFilePath() string
}

type paths struct {
	dotfilesRoot string
	xdgData      string
	xdgConfig    string
	xdgCache     string
	xdgState     string

	// usedFallback indicates the default ~/dotfiles location was assumed
	usedFallback bool
}

// New creates a new Paths instance with the given dotfiles root.
// If dotfilesRoot is empty, it is resolved from DOTFILES_ROOT, falling
// back to ~/dotfiles.
func New(dotfilesRoot string) (Paths, error) {
	p := &paths{}

	if dotfilesRoot == "" {
		root, usedFallback, err := findDotfilesRoot()
		if err != nil {
			return nil, err
		}
		p.dotfilesRoot = root
		p.usedFallback = usedFallback
	} else {
		p.dotfilesRoot = ExpandHome(dotfilesRoot)
	}

	absRoot, err := filepath.Abs(p.dotfilesRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for dotfiles root")
	}
	p.dotfilesRoot = absRoot

	p.setupXDGDirs()

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = ExpandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		p.xdgCache = ExpandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, AppDirName)
	}

	// XDG state home, with the usual ~/.local/state fallback
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AppDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", AppDirName)
	}
}

// findDotfilesRoot determines the dotfiles root using the following priority:
// 1. DOTFILES_ROOT environment variable (if set)
// 2. ~/dotfiles (fallback, flagged so callers can warn)
func findDotfilesRoot() (string, bool, error) {
	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		return ExpandHome(root), false, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to determine home directory")
	}

	return filepath.Join(homeDir, DefaultDotfilesDir), true, nil
}

// ExpandHome expands a leading ~ to the user's home directory.
// Paths like ~other are returned unchanged.
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		return path
	}

	return path
}

// DotfilesRoot returns the root directory for the dotfiles repository
func (p *paths) DotfilesRoot() string {
	return p.dotfilesRoot
}

// UsedFallback reports whether the default ~/dotfiles location was assumed
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// ConfigsDir returns the configuration store directory
func (p *paths) ConfigsDir() string {
	return filepath.Join(p.dotfilesRoot, ConfigsDirName)
}

// ProfilesDir returns the directory holding profile documents
func (p *paths) ProfilesDir() string {
	return filepath.Join(p.dotfilesRoot, ProfilesDirName)
}

// BackupsDir returns the directory holding backup sessions
func (p *paths) BackupsDir() string {
	return filepath.Join(p.dotfilesRoot, BackupsDirName)
}

// SettingsPath returns the path of the optional repo-level settings file
func (p *paths) SettingsPath() string {
	return filepath.Join(p.dotfilesRoot, SettingsFile)
}

// DataDir returns the XDG data directory for dotsmith
func (p *paths) DataDir() string {
	return p.xdgData
}

// ConfigDir returns the XDG config directory for dotsmith
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// CacheDir returns the XDG cache directory for dotsmith
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// StateDir returns the XDG state directory for dotsmith
func (p *paths) StateDir() string {
	return p.xdgState
}

// LogFilePath returns the path to the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}
