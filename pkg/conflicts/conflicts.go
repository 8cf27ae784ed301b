package conflicts

import (
	"io/fs"
	"path/filepath"

	"github.com/dotsmith-cli/dotsmith/pkg/logging"
	"github.com/dotsmith-cli/dotsmith/pkg/paths"
	"github.com/dotsmith-cli/dotsmith/pkg/profiles"
	"github.com/dotsmith-cli/dotsmith/pkg/types"
)

// Kind classifies what currently occupies a conflicting target path
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
	KindSymlink   Kind = "symlink"
)

// Conflict describes an existing filesystem entry at a deployment
// target that is not already the expected symlink into the store.
type Conflict struct {
	Name      string
	Path      string
	Kind      Kind
	IsSymlink bool
}

// Detector classifies deployment targets against the live filesystem
type Detector struct {
	fs types.FS
}

// NewDetector creates a Detector backed by the given filesystem
func NewDetector(filesystem types.FS) *Detector {
	return &Detector{fs: filesystem}
}

// Detect walks every (name, target) pair in the descriptor and returns
// a conflict record for each target that exists and is not already the
// expected link. Results follow descriptor iteration order. A symlink
// that resolves to the store source is not a conflict, which is what
// makes deployment idempotent.
func (d *Detector) Detect(desc *profiles.Profile, storeRoot string) []Conflict {
	logger := logging.GetLogger("conflicts")

	var found []Conflict
	for _, name := range desc.ConfigPaths.Names() {
		targetPath, _ := desc.ConfigPaths.Get(name)
		target := paths.ExpandHome(targetPath)
		source := filepath.Join(storeRoot, name)

		info, err := d.fs.Lstat(target)
		if err != nil {
			// Nothing at the target, nothing to conflict with.
			continue
		}

		isSymlink := info.Mode()&fs.ModeSymlink != 0
		if isSymlink && d.linksTo(target, source) {
			logger.Debug().Str("name", name).Str("target", target).Msg("already correctly linked")
			continue
		}

		conflict := Conflict{
			Name:      name,
			Path:      target,
			IsSymlink: isSymlink,
		}
		switch {
		case isSymlink:
			conflict.Kind = KindSymlink
		case info.IsDir():
			conflict.Kind = KindDirectory
		default:
			conflict.Kind = KindFile
		}

		logger.Debug().
			Str("name", name).
			Str("target", target).
			Str("kind", string(conflict.Kind)).
			Msg("conflict detected")
		found = append(found, conflict)
	}

	return found
}

// linksTo reports whether the symlink at target resolves to the same
// file as source. Dangling links and links elsewhere report false.
func (d *Detector) linksTo(target, source string) bool {
	resolvedTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		return false
	}
	resolvedSource, err := filepath.EvalSymlinks(source)
	if err != nil {
		return false
	}
	return resolvedTarget == resolvedSource
}
