// Package device identifies the running system (OS, architecture,
// Linux distribution, available package manager) so the right
// base profile can be selected. It only supplies inputs to the engine;
// no reconciliation invariant depends on it.
package device

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/dotsmith-cli/dotsmith/pkg/logging"
)

// Info describes the detected system
type Info struct {
	OS             string // "macos" or "linux"
	Architecture   string // normalized, e.g. "x86_64", "arm64"
	Distro         string // Linux distro family, empty on macOS
	PackageManager string // "brew", "apt", "pacman", or empty
	Hostname       string
}

// Detect inspects the running system
func Detect() *Info {
	logger := logging.GetLogger("device")

	info := &Info{
		OS:           normalizeOS(runtime.GOOS),
		Architecture: normalizeArch(runtime.GOARCH),
	}

	if info.OS == "linux" {
		info.Distro = detectDistro()
	}
	info.PackageManager = detectPackageManager(info.OS, info.Distro)

	if hostname, err := os.Hostname(); err == nil {
		info.Hostname = hostname
	}

	logger.Debug().
		Str("os", info.OS).
		Str("arch", info.Architecture).
		Str("distro", info.Distro).
		Str("packageManager", info.PackageManager).
		Msg("device detected")

	return info
}

// ProfileName returns the base profile filename for this device
func (i *Info) ProfileName() string {
	return i.OS + ".yml"
}

// Supported reports whether dotsmith can run on this device, with a
// human-readable explanation either way.
func (i *Info) Supported() (bool, string) {
	if i.OS != "macos" && i.OS != "linux" {
		return false, fmt.Sprintf("unsupported OS: %s", i.OS)
	}
	if i.OS == "linux" && i.Distro != "ubuntu" && i.Distro != "arch" {
		return false, fmt.Sprintf("unsupported Linux distro: %s", i.Distro)
	}
	if i.Architecture != "x86_64" && i.Architecture != "arm64" {
		return false, fmt.Sprintf("unsupported architecture: %s", i.Architecture)
	}
	if i.PackageManager == "" {
		return false, "no supported package manager found"
	}
	return true, "system is supported"
}

func normalizeOS(goos string) string {
	if goos == "darwin" {
		return "macos"
	}
	return goos
}

func normalizeArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "arm64"
	default:
		return goarch
	}
}

// normalizeDistro folds derivatives into the family profiles exist for
func normalizeDistro(id string) string {
	switch id {
	case "ubuntu", "debian", "pop":
		return "ubuntu"
	case "arch", "manjaro", "endeavouros":
		return "arch"
	default:
		return ""
	}
}

// detectDistro reads /etc/os-release, falling back to distro marker files
func detectDistro() string {
	if f, err := os.Open("/etc/os-release"); err == nil {
		defer func() { _ = f.Close() }()
		if distro := parseOSRelease(f); distro != "" {
			return distro
		}
	}

	if _, err := os.Stat("/etc/arch-release"); err == nil {
		return "arch"
	}
	if _, err := os.Stat("/etc/debian_version"); err == nil {
		return "ubuntu"
	}

	return ""
}

// parseOSRelease extracts and normalizes the ID field of an os-release file
func parseOSRelease(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "ID=") {
			continue
		}
		id := strings.Trim(strings.TrimPrefix(line, "ID="), `"`)
		return normalizeDistro(id)
	}
	return ""
}

// detectPackageManager probes PATH for the manager matching the platform
func detectPackageManager(osType, distro string) string {
	switch osType {
	case "macos":
		if commandExists("brew") {
			return "brew"
		}
	case "linux":
		if distro == "ubuntu" && commandExists("apt") {
			return "apt"
		}
		if distro == "arch" && commandExists("pacman") {
			return "pacman"
		}
	}
	return ""
}

func commandExists(command string) bool {
	_, err := exec.LookPath(command)
	return err == nil
}
