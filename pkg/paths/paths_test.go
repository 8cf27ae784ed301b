package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithExplicitRoot(t *testing.T) {
	p, err := New("/opt/dotfiles")
	require.NoError(t, err)

	assert.Equal(t, "/opt/dotfiles", p.DotfilesRoot())
	assert.False(t, p.UsedFallback())
	assert.Equal(t, "/opt/dotfiles/configs", p.ConfigsDir())
	assert.Equal(t, "/opt/dotfiles/profiles", p.ProfilesDir())
	assert.Equal(t, "/opt/dotfiles/backups", p.BackupsDir())
	assert.Equal(t, "/opt/dotfiles/dotsmith.toml", p.SettingsPath())
}

func TestNewFromEnvironment(t *testing.T) {
	t.Setenv(EnvDotfilesRoot, "/srv/dotfiles")

	p, err := New("")
	require.NoError(t, err)

	assert.Equal(t, "/srv/dotfiles", p.DotfilesRoot())
	assert.False(t, p.UsedFallback())
}

func TestNewFallsBackToHomeDotfiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvDotfilesRoot, "")

	p, err := New("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "dotfiles"), p.DotfilesRoot())
	assert.True(t, p.UsedFallback())
}

func TestXDGEnvOverrides(t *testing.T) {
	t.Setenv(EnvDataDir, "/custom/data")
	t.Setenv(EnvConfigDir, "/custom/config")
	t.Setenv(EnvCacheDir, "/custom/cache")
	t.Setenv("XDG_STATE_HOME", "/custom/state")

	p, err := New("/opt/dotfiles")
	require.NoError(t, err)

	assert.Equal(t, "/custom/data", p.DataDir())
	assert.Equal(t, "/custom/config", p.ConfigDir())
	assert.Equal(t, "/custom/cache", p.CacheDir())
	assert.Equal(t, "/custom/state/dotsmith", p.StateDir())
	assert.Equal(t, "/custom/state/dotsmith/dotsmith.log", p.LogFilePath())
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"bare tilde", "~", home},
		{"tilde slash", "~/.zshrc", filepath.Join(home, ".zshrc")},
		{"nested", "~/.config/nvim", filepath.Join(home, ".config", "nvim")},
		{"no tilde", "/etc/hosts", "/etc/hosts"},
		{"other user untouched", "~root/.bashrc", "~root/.bashrc"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.path))
		})
	}
}
