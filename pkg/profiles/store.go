package profiles

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dotsmith-cli/dotsmith/pkg/errors"
	"github.com/dotsmith-cli/dotsmith/pkg/logging"
)

// Store loads profile documents from a profiles directory and merges
// them into an effective descriptor.
type Store struct {
	profilesDir string
}

// NewStore creates a Store rooted at the given profiles directory
func NewStore(profilesDir string) *Store {
	return &Store{profilesDir: profilesDir}
}

// Load reads a single profile by exact filename (e.g. "linux.yml").
// It returns a PROFILE_NOT_FOUND error when the file is absent and a
// PROFILE_PARSE error when it is malformed. Load does not require the
// document to be complete: role overlays legitimately declare only the
// keys they change, so base-profile requirements are enforced by Merge.
func (s *Store) Load(name string) (*Profile, error) {
	path := filepath.Join(s.profilesDir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrProfileNotFound, "profile not found: %s", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read profile %s", path)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, errors.Wrapf(err, errors.ErrProfileParse, "failed to parse profile %s", name)
	}

	return &profile, nil
}

// validateBase rejects a base document missing required keys before
// any overlay is applied rather than deferring the failure to first use.
func validateBase(p *Profile, name string) error {
	if p.OS == "" {
		return errors.Newf(errors.ErrProfileInvalid, "profile %s is missing required key: os", name)
	}
	if p.ConfigPaths == nil {
		return errors.Newf(errors.ErrProfileInvalid, "profile %s is missing required key: config_paths", name)
	}
	return nil
}

// Merge loads the base profile, checks it declares the required os and
// config_paths keys, and stacks each overlay on top of it in order,
// returning the effective descriptor. Overlays may be partial
// documents carrying only the keys they change. A missing overlay is
// skipped with a warning; base and prior overlays remain in effect.
// Any other overlay failure (parse, access) is fatal, as is any failure
// to load the base profile.
func (s *Store) Merge(baseName string, overlayNames ...string) (*Profile, error) {
	logger := logging.GetLogger("profiles")

	merged, err := s.Load(baseName)
	if err != nil {
		return nil, err
	}
	if err := validateBase(merged, baseName); err != nil {
		return nil, err
	}
	logger.Debug().Str("profile", baseName).Msg("loaded base profile")

	for _, name := range overlayNames {
		overlay, err := s.Load(name)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrProfileNotFound) {
				logger.Warn().Str("profile", name).Msg("profile not found, skipping")
				continue
			}
			return nil, err
		}

		merged.apply(overlay)
		logger.Debug().Str("profile", name).Msg("applied overlay profile")
	}

	return merged, nil
}

// apply stacks an overlay onto the receiver. Mapping-typed fields merge
// entry-by-entry with the overlay winning on key collisions; scalar and
// list fields are replaced wholesale when the overlay declares them.
// Overrides are always mapping-merged regardless of the general rule.
func (p *Profile) apply(overlay *Profile) {
	if overlay.OS != "" {
		p.OS = overlay.OS
	}
	if overlay.PackageManager != "" {
		p.PackageManager = overlay.PackageManager
	}

	if overlay.ConfigPaths.Len() > 0 {
		if p.ConfigPaths == nil {
			p.ConfigPaths = overlay.ConfigPaths.Clone()
		} else {
			for _, name := range overlay.ConfigPaths.Names() {
				target, _ := overlay.ConfigPaths.Get(name)
				p.ConfigPaths.Set(name, target)
			}
		}
	}

	if len(overlay.Overrides) > 0 {
		if p.Overrides == nil {
			p.Overrides = make(map[string]map[string]interface{}, len(overlay.Overrides))
		}
		for name, values := range overlay.Overrides {
			p.Overrides[name] = values
		}
	}

	p.Packages = p.Packages.merge(overlay.Packages)

	if overlay.ZshPlugins != nil {
		p.ZshPlugins = overlay.ZshPlugins
	}
}
