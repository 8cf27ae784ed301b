package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	dserrors "github.com/dotsmith-cli/dotsmith/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultSettings []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Settings holds app-level options layered from embedded defaults, the
// optional dotsmith.toml at the dotfiles root, and DOTSMITH_* env vars.
type Settings struct {
	Dotfiles struct {
		Root string `koanf:"root" toml:"root"`
	} `koanf:"dotfiles" toml:"dotfiles"`

	Profiles struct {
		Dir     string `koanf:"dir" toml:"dir"`
		Overlay string `koanf:"overlay" toml:"overlay"`
	} `koanf:"profiles" toml:"profiles"`

	Configs struct {
		Dir string `koanf:"dir" toml:"dir"`
	} `koanf:"configs" toml:"configs"`

	Backups struct {
		Dir string `koanf:"dir" toml:"dir"`
	} `koanf:"backups" toml:"backups"`

	Deploy struct {
		Force  bool `koanf:"force" toml:"force"`
		Backup bool `koanf:"backup" toml:"backup"`
	} `koanf:"deploy" toml:"deploy"`
}

// Load builds the effective settings. settingsPath is the optional
// repo-level dotsmith.toml; a missing file is fine, a malformed one is
// a CONFIG_PARSE error.
func Load(settingsPath string) (*Settings, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, dserrors.Wrap(err, dserrors.ErrInternal, "failed to load default settings")
	}

	// 2. Repo-level settings file, when present
	if settingsPath != "" {
		if _, err := os.Stat(settingsPath); err == nil {
			if err := k.Load(file.Provider(settingsPath), toml.Parser()); err != nil {
				return nil, dserrors.Wrapf(err, dserrors.ErrConfigParse, "failed to parse settings file %s", settingsPath)
			}
		}
	}

	// 3. Environment overrides: DOTSMITH_DEPLOY_FORCE=true → deploy.force
	err := k.Load(env.Provider("DOTSMITH_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "DOTSMITH_")), "_", ".")
	}), nil)
	if err != nil {
		return nil, dserrors.Wrap(err, dserrors.ErrConfigLoad, "failed to load environment overrides")
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, dserrors.Wrap(err, dserrors.ErrConfigLoad, "failed to unmarshal settings")
	}

	return &settings, nil
}

// DefaultTOML returns the commented default settings file, suitable
// for writing as a starter dotsmith.toml.
func DefaultTOML() string {
	return string(defaultSettings)
}

// MarshalTOML renders the settings as a TOML document
func MarshalTOML(s *Settings) (string, error) {
	out, err := gotoml.Marshal(s)
	if err != nil {
		return "", dserrors.Wrap(err, dserrors.ErrInternal, "failed to marshal settings")
	}
	return string(out), nil
}
