// Package tools installs the external programs a profile asks for:
// system packages via the detected package manager, and zsh plugins
// and themes cloned from their upstream repositories. It is a
// side-effecting collaborator behind narrow interfaces; the
// reconciliation engine never depends on it.
package tools

import (
	"os"
	"path/filepath"

	"github.com/dotsmith-cli/dotsmith/pkg/logging"
)

// Installer installs packages and shell tooling for one device
type Installer struct {
	runner         Runner
	cloner         Cloner
	packageManager string
	osType         string
	home           string
}

// NewInstaller creates an Installer for the given package manager and
// OS, executing on the host by default.
func NewInstaller(packageManager, osType string) *Installer {
	home, _ := os.UserHomeDir()
	return &Installer{
		runner:         NewExecRunner(),
		cloner:         newGitCloner(),
		packageManager: packageManager,
		osType:         osType,
		home:           home,
	}
}

// WithRunner substitutes the command runner
func (i *Installer) WithRunner(r Runner) *Installer {
	i.runner = r
	return i
}

// WithCloner substitutes the repository cloner
func (i *Installer) WithCloner(c Cloner) *Installer {
	i.cloner = c
	return i
}

// WithHome substitutes the home directory used for shell tooling
func (i *Installer) WithHome(dir string) *Installer {
	i.home = dir
	return i
}

// InstallPackage installs a single package using the system package
// manager, reporting success as a boolean.
func (i *Installer) InstallPackage(pkg string) bool {
	logger := logging.GetLogger("tools")

	var output string
	var err error

	switch i.packageManager {
	case "brew":
		output, err = i.runner.Run("brew", "install", pkg)
	case "apt":
		output, err = i.runner.Run("sudo", "apt", "install", "-y", pkg)
	case "pacman":
		output, err = i.runner.Run("sudo", "pacman", "-S", "--noconfirm", pkg)
	default:
		logger.Warn().Str("packageManager", i.packageManager).Msg("unsupported package manager")
		return false
	}

	if err != nil {
		logger.Error().Err(err).Str("package", pkg).Str("output", output).Msg("package installation failed")
		return false
	}

	logger.Info().Str("package", pkg).Msg("package installed")
	return true
}

// InstallPackages installs each package in order and returns a
// per-package success map. One failure never stops the rest.
func (i *Installer) InstallPackages(pkgs []string) map[string]bool {
	results := make(map[string]bool, len(pkgs))
	for _, pkg := range pkgs {
		results[pkg] = i.InstallPackage(pkg)
	}
	return results
}

// InstallOhMyZsh bootstraps Oh My Zsh via its upstream install script,
// skipping when it is already present.
func (i *Installer) InstallOhMyZsh() bool {
	logger := logging.GetLogger("tools")

	if _, err := os.Stat(filepath.Join(i.home, ".oh-my-zsh")); err == nil {
		logger.Info().Msg("Oh My Zsh already installed")
		return true
	}

	script := "https://raw.githubusercontent.com/ohmyzsh/ohmyzsh/master/tools/install.sh"
	_, err := i.runner.Run("sh", "-c",
		`RUNZSH=no CHSH=no sh -c "$(curl -fsSL `+script+`)"`)
	if err != nil {
		logger.Error().Err(err).Msg("Oh My Zsh installation failed")
		return false
	}

	logger.Info().Msg("Oh My Zsh installed")
	return true
}

// InstallOhMyPosh installs Oh My Posh, via brew where available and
// the upstream install script elsewhere.
func (i *Installer) InstallOhMyPosh() bool {
	if i.packageManager == "brew" {
		return i.InstallPackage("oh-my-posh")
	}

	_, err := i.runner.Run("sh", "-c", "curl -s https://ohmyposh.dev/install.sh | bash -s")
	if err != nil {
		logger := logging.GetLogger("tools")
		logger.Error().Err(err).Msg("Oh My Posh installation failed")
		return false
	}
	return true
}
