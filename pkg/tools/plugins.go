package tools

import (
	"io"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"

	"github.com/dotsmith-cli/dotsmith/pkg/logging"
)

// pluginRepos maps supported zsh plugin names to their upstream repos
var pluginRepos = map[string]string{
	"zsh-autosuggestions":     "https://github.com/zsh-users/zsh-autosuggestions",
	"zsh-syntax-highlighting": "https://github.com/zsh-users/zsh-syntax-highlighting",
	"powerlevel10k":           "https://github.com/romkatv/powerlevel10k",
}

// Cloner clones a git repository into a directory
type Cloner interface {
	Clone(url, path string) error
}

type gitCloner struct{}

func newGitCloner() Cloner {
	return &gitCloner{}
}

func (gitCloner) Clone(url, path string) error {
	_, err := git.PlainClone(path, false, &git.CloneOptions{
		URL:      url,
		Depth:    1,
		Progress: io.Discard,
	})
	return err
}

// PluginTargetDir returns where a plugin is installed under Oh My Zsh.
// powerlevel10k is a theme and lives under custom/themes.
func PluginTargetDir(home, plugin string) string {
	if plugin == "powerlevel10k" {
		return filepath.Join(home, ".oh-my-zsh", "custom", "themes", "powerlevel10k")
	}
	return filepath.Join(home, ".oh-my-zsh", "custom", "plugins", plugin)
}

// InstallZshPlugin clones a supported zsh plugin into the Oh My Zsh
// custom directory. Already-present plugins are a no-op success;
// unknown plugin names fail.
func (i *Installer) InstallZshPlugin(plugin string) bool {
	logger := logging.GetLogger("tools")

	url, known := pluginRepos[plugin]
	if !known {
		logger.Warn().Str("plugin", plugin).Msg("unknown zsh plugin")
		return false
	}

	target := PluginTargetDir(i.home, plugin)
	if _, err := os.Stat(target); err == nil {
		logger.Info().Str("plugin", plugin).Msg("plugin already installed")
		return true
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		logger.Error().Err(err).Str("plugin", plugin).Msg("failed to create plugin directory")
		return false
	}

	if err := i.cloner.Clone(url, target); err != nil {
		logger.Error().Err(err).Str("plugin", plugin).Str("url", url).Msg("plugin clone failed")
		return false
	}

	logger.Info().Str("plugin", plugin).Msg("plugin installed")
	return true
}

// InstallZshPlugins installs each plugin and returns per-plugin success
func (i *Installer) InstallZshPlugins(plugins []string) map[string]bool {
	results := make(map[string]bool, len(plugins))
	for _, plugin := range plugins {
		results[plugin] = i.InstallZshPlugin(plugin)
	}
	return results
}
