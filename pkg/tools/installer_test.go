package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and fails commands matching failOn
type fakeRunner struct {
	commands []string
	failOn   string
}

func (f *fakeRunner) Run(name string, args ...string) (string, error) {
	cmd := strings.Join(append([]string{name}, args...), " ")
	f.commands = append(f.commands, cmd)
	if f.failOn != "" && strings.Contains(cmd, f.failOn) {
		return "boom", fmt.Errorf("exit status 1")
	}
	return "", nil
}

// fakeCloner creates the target directory instead of cloning
type fakeCloner struct {
	cloned []string
	fail   bool
}

func (f *fakeCloner) Clone(url, path string) error {
	f.cloned = append(f.cloned, url)
	if f.fail {
		return fmt.Errorf("remote unreachable")
	}
	return os.MkdirAll(path, 0755)
}

func TestInstallPackageCommands(t *testing.T) {
	tests := []struct {
		packageManager string
		wantCommand    string
	}{
		{"brew", "brew install ripgrep"},
		{"apt", "sudo apt install -y ripgrep"},
		{"pacman", "sudo pacman -S --noconfirm ripgrep"},
	}

	for _, tt := range tests {
		t.Run(tt.packageManager, func(t *testing.T) {
			runner := &fakeRunner{}
			installer := NewInstaller(tt.packageManager, "linux").WithRunner(runner)

			assert.True(t, installer.InstallPackage("ripgrep"))
			require.Len(t, runner.commands, 1)
			assert.Equal(t, tt.wantCommand, runner.commands[0])
		})
	}
}

func TestInstallPackageUnsupportedManager(t *testing.T) {
	runner := &fakeRunner{}
	installer := NewInstaller("yum", "linux").WithRunner(runner)

	assert.False(t, installer.InstallPackage("ripgrep"))
	assert.Empty(t, runner.commands)
}

func TestInstallPackagesContinuesOnFailure(t *testing.T) {
	runner := &fakeRunner{failOn: "docker"}
	installer := NewInstaller("brew", "macos").WithRunner(runner)

	results := installer.InstallPackages([]string{"git", "docker", "ripgrep"})

	assert.True(t, results["git"])
	assert.False(t, results["docker"])
	assert.True(t, results["ripgrep"])
	assert.Len(t, runner.commands, 3)
}

func TestInstallOhMyZshSkipsWhenPresent(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".oh-my-zsh"), 0755))

	runner := &fakeRunner{}
	installer := NewInstaller("brew", "macos").WithRunner(runner).WithHome(home)

	assert.True(t, installer.InstallOhMyZsh())
	assert.Empty(t, runner.commands)
}

func TestInstallOhMyZshRunsInstaller(t *testing.T) {
	runner := &fakeRunner{}
	installer := NewInstaller("brew", "macos").WithRunner(runner).WithHome(t.TempDir())

	assert.True(t, installer.InstallOhMyZsh())
	require.Len(t, runner.commands, 1)
	assert.Contains(t, runner.commands[0], "ohmyzsh/master/tools/install.sh")
}

func TestInstallOhMyPosh(t *testing.T) {
	t.Run("brew delegates to package install", func(t *testing.T) {
		runner := &fakeRunner{}
		installer := NewInstaller("brew", "macos").WithRunner(runner)

		assert.True(t, installer.InstallOhMyPosh())
		require.Len(t, runner.commands, 1)
		assert.Equal(t, "brew install oh-my-posh", runner.commands[0])
	})

	t.Run("linux uses install script", func(t *testing.T) {
		runner := &fakeRunner{}
		installer := NewInstaller("apt", "linux").WithRunner(runner)

		assert.True(t, installer.InstallOhMyPosh())
		require.Len(t, runner.commands, 1)
		assert.Contains(t, runner.commands[0], "ohmyposh.dev/install.sh")
	})
}

func TestPluginTargetDir(t *testing.T) {
	assert.Equal(t, "/home/u/.oh-my-zsh/custom/plugins/zsh-autosuggestions",
		PluginTargetDir("/home/u", "zsh-autosuggestions"))
	assert.Equal(t, "/home/u/.oh-my-zsh/custom/themes/powerlevel10k",
		PluginTargetDir("/home/u", "powerlevel10k"))
}

func TestInstallZshPlugin(t *testing.T) {
	t.Run("clones known plugin", func(t *testing.T) {
		home := t.TempDir()
		cloner := &fakeCloner{}
		installer := NewInstaller("brew", "macos").WithCloner(cloner).WithHome(home)

		assert.True(t, installer.InstallZshPlugin("zsh-autosuggestions"))
		require.Len(t, cloner.cloned, 1)
		assert.Equal(t, "https://github.com/zsh-users/zsh-autosuggestions", cloner.cloned[0])
		assert.DirExists(t, PluginTargetDir(home, "zsh-autosuggestions"))
	})

	t.Run("unknown plugin fails", func(t *testing.T) {
		cloner := &fakeCloner{}
		installer := NewInstaller("brew", "macos").WithCloner(cloner).WithHome(t.TempDir())

		assert.False(t, installer.InstallZshPlugin("mystery-plugin"))
		assert.Empty(t, cloner.cloned)
	})

	t.Run("already installed is a no-op success", func(t *testing.T) {
		home := t.TempDir()
		require.NoError(t, os.MkdirAll(PluginTargetDir(home, "powerlevel10k"), 0755))

		cloner := &fakeCloner{}
		installer := NewInstaller("brew", "macos").WithCloner(cloner).WithHome(home)

		assert.True(t, installer.InstallZshPlugin("powerlevel10k"))
		assert.Empty(t, cloner.cloned)
	})

	t.Run("clone failure reports false", func(t *testing.T) {
		cloner := &fakeCloner{fail: true}
		installer := NewInstaller("brew", "macos").WithCloner(cloner).WithHome(t.TempDir())

		assert.False(t, installer.InstallZshPlugin("zsh-syntax-highlighting"))
	})
}
