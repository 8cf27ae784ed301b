package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotsmith-cli/dotsmith/pkg/ui"
)

// setupDotfiles builds a minimal dotfiles root with a configs store and
// a linux/macos base profile mapping zshrc into the test home.
func setupDotfiles(t *testing.T) (root, home string) {
	t.Helper()

	home = t.TempDir()
	root = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DOTFILES_ROOT", root)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "configs"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "profiles"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "configs", "zshrc"), []byte("export EDITOR=nvim\n"), 0644))

	profile := "os: linux\nconfig_paths:\n  zshrc: ~/.zshrc\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "profiles", "linux.yml"), []byte(profile), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "profiles", "macos.yml"),
		[]byte("os: macos\nconfig_paths:\n  zshrc: ~/.zshrc\n"), 0644))

	return root, home
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDeployCmd(t *testing.T) {
	root, home := setupDotfiles(t)

	out, err := runCommand(t, "deploy")
	require.NoError(t, err, out)

	link, err := os.Readlink(filepath.Join(home, ".zshrc"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "configs", "zshrc"), link)
}

func TestDeployCmdIdempotent(t *testing.T) {
	_, home := setupDotfiles(t)

	_, err := runCommand(t, "deploy")
	require.NoError(t, err)
	out, err := runCommand(t, "deploy")
	require.NoError(t, err, out)

	info, err := os.Lstat(filepath.Join(home, ".zshrc"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}

func TestDeployCmdConflictRequiresForce(t *testing.T) {
	_, home := setupDotfiles(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".zshrc"), []byte("old"), 0644))

	_, err := runCommand(t, "deploy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicting")

	// The pre-existing file must be untouched.
	data, err := os.ReadFile(filepath.Join(home, ".zshrc"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestDeployCmdForceBacksUpConflicts(t *testing.T) {
	root, home := setupDotfiles(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".zshrc"), []byte("old"), 0644))

	out, err := runCommand(t, "deploy", "--force")
	require.NoError(t, err, out)

	// Target is now a symlink into the store.
	link, err := os.Readlink(filepath.Join(home, ".zshrc"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "configs", "zshrc"), link)

	// The old file landed in a backup session with a manifest.
	sessions, err := os.ReadDir(filepath.Join(root, "backups"))
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	sessionDir := filepath.Join(root, "backups", sessions[0].Name())
	data, err := os.ReadFile(filepath.Join(sessionDir, "zshrc"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	manifest, err := os.ReadFile(filepath.Join(sessionDir, "backup_log.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "Type: file")
}

func TestDeployCmdNoBackup(t *testing.T) {
	root, home := setupDotfiles(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".zshrc"), []byte("old"), 0644))

	_, err := runCommand(t, "deploy", "--force", "--no-backup")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "backups"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeployCmdDryRun(t *testing.T) {
	_, home := setupDotfiles(t)

	out, err := runCommand(t, "deploy", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "DRY RUN")

	_, err = os.Lstat(filepath.Join(home, ".zshrc"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeployCmdOverlayOverridesTarget(t *testing.T) {
	root, home := setupDotfiles(t)
	overlay := "os: linux\nconfig_paths:\n  zshrc: ~/.config/zsh/zshrc\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "profiles", "work.yml"), []byte(overlay), 0644))

	out, err := runCommand(t, "deploy", "-p", "work")
	require.NoError(t, err, out)

	link, err := os.Readlink(filepath.Join(home, ".config", "zsh", "zshrc"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "configs", "zshrc"), link)
}

func TestDeployCmdMissingBaseProfileFatal(t *testing.T) {
	root, _ := setupDotfiles(t)
	require.NoError(t, os.Remove(filepath.Join(root, "profiles", "linux.yml")))
	require.NoError(t, os.Remove(filepath.Join(root, "profiles", "macos.yml")))

	_, err := runCommand(t, "deploy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile not found")
}

func TestStatusCmd(t *testing.T) {
	_, home := setupDotfiles(t)

	// Clean home: no conflicts, exit zero.
	out, err := runCommand(t, "status")
	require.NoError(t, err, out)
	assert.Contains(t, out, "clean")

	// Plant a conflicting file: non-zero exit.
	require.NoError(t, os.WriteFile(filepath.Join(home, ".zshrc"), []byte("old"), 0644))
	_, err = runCommand(t, "status")
	require.Error(t, err)
}

func TestStatusCmdCleanAfterDeploy(t *testing.T) {
	setupDotfiles(t)

	_, err := runCommand(t, "deploy")
	require.NoError(t, err)

	out, err := runCommand(t, "status")
	require.NoError(t, err, out)
}

func TestInfoCmd(t *testing.T) {
	out, err := runCommand(t, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "OS")
}

func TestGenConfigCmd(t *testing.T) {
	out, err := runCommand(t, "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "[profiles]")
	assert.Contains(t, out, "overlay")
}

func TestGenConfigCmdWrite(t *testing.T) {
	root, _ := setupDotfiles(t)

	_, err := runCommand(t, "genconfig", "-w")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "dotsmith.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[deploy]")

	// Refuses to clobber an existing file.
	_, err = runCommand(t, "genconfig", "-w")
	require.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dotsmith version")
}

func TestNoSubcommandIsAnError(t *testing.T) {
	setupDotfiles(t)

	_, err := runCommand(t)
	require.Error(t, err)
}

func TestReportResultsDeclarationOrder(t *testing.T) {
	var out bytes.Buffer
	r := ui.NewRenderer(&out)

	order := []string{"git", "ripgrep", "docker", "tmux"}
	results := map[string]bool{"git": true, "ripgrep": false, "docker": true, "tmux": false}

	failed := reportResults(r, order, results, "installed %s", "failed to install %s")
	assert.Equal(t, 2, failed)

	// Lines come out in declaration order regardless of map iteration.
	var positions []int
	for _, name := range order {
		positions = append(positions, strings.Index(out.String(), name))
	}
	assert.IsIncreasing(t, positions)
	assert.Contains(t, out.String(), "failed to install ripgrep")
}

func TestProfileFileName(t *testing.T) {
	assert.Equal(t, "personal.yml", profileFileName("personal"))
	assert.Equal(t, "work.yaml", profileFileName("work.yaml"))
	assert.Equal(t, "linux.yml", profileFileName("linux.yml"))
}
