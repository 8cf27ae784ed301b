package deploy

import (
	"io/fs"
	"path/filepath"

	"github.com/dotsmith-cli/dotsmith/pkg/conflicts"
	"github.com/dotsmith-cli/dotsmith/pkg/errors"
	"github.com/dotsmith-cli/dotsmith/pkg/logging"
	"github.com/dotsmith-cli/dotsmith/pkg/paths"
	"github.com/dotsmith-cli/dotsmith/pkg/profiles"
	"github.com/dotsmith-cli/dotsmith/pkg/types"
)

// Reason explains a deployment result beyond the success boolean
type Reason string

const (
	// ReasonLinked means a new symlink was created
	ReasonLinked Reason = "linked"
	// ReasonAlreadyLinked means the target already pointed at the source
	ReasonAlreadyLinked Reason = "already-linked"
	// ReasonSourceMissing means the store has no entry for this name
	ReasonSourceMissing Reason = "source-missing"
	// ReasonTargetExists means the target is occupied and force was off
	ReasonTargetExists Reason = "target-exists"
	// ReasonFilesystemError means removal or link creation failed
	ReasonFilesystemError Reason = "filesystem-error"
)

// Result is the outcome of deploying one config name
type Result struct {
	Name    string
	Target  string
	Success bool
	Reason  Reason
	Err     error
}

// Results holds per-name outcomes in descriptor order
type Results []Result

// Succeeded counts successful deployments
func (r Results) Succeeded() int {
	n := 0
	for _, res := range r {
		if res.Success {
			n++
		}
	}
	return n
}

// Failed counts failed deployments
func (r Results) Failed() int {
	return len(r) - r.Succeeded()
}

// Ok reports whether the named config deployed successfully
func (r Results) Ok(name string) bool {
	for _, res := range r {
		if res.Name == name {
			return res.Success
		}
	}
	return false
}

// Deployer idempotently replaces managed targets with symlinks into
// the configuration store.
type Deployer struct {
	fs types.FS
}

// NewDeployer creates a Deployer backed by the given filesystem
func NewDeployer(filesystem types.FS) *Deployer {
	return &Deployer{fs: filesystem}
}

// Link creates a symlink at target pointing at the canonical form of
// source. An existing target that already resolves to the source is a
// no-op success. Any other existing target fails unless force is set,
// in which case it is removed first. Filesystem errors are caught and
// surface as a failed result, never as a fatal error for the run.
func (d *Deployer) Link(source, target string, force bool) Result {
	logger := logging.GetLogger("deploy")

	if _, err := d.fs.Stat(source); err != nil {
		return Result{
			Target: target,
			Reason: ReasonSourceMissing,
			Err:    errors.Wrapf(err, errors.ErrSourceMissing, "source does not exist: %s", source),
		}
	}

	canonical, err := filepath.EvalSymlinks(source)
	if err != nil {
		return Result{
			Target: target,
			Reason: ReasonFilesystemError,
			Err:    errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve source: %s", source),
		}
	}

	target = paths.ExpandHome(target)

	if info, err := d.fs.Lstat(target); err == nil {
		isSymlink := info.Mode()&fs.ModeSymlink != 0

		if isSymlink {
			if resolved, err := filepath.EvalSymlinks(target); err == nil && resolved == canonical {
				logger.Debug().Str("target", target).Str("source", canonical).Msg("symlink already exists")
				return Result{Target: target, Success: true, Reason: ReasonAlreadyLinked}
			}
		}

		if !force {
			return Result{
				Target: target,
				Reason: ReasonTargetExists,
				Err:    errors.Newf(errors.ErrTargetExists, "target already exists: %s", target),
			}
		}

		var removeErr error
		switch {
		case isSymlink:
			removeErr = d.fs.Remove(target)
		case info.IsDir():
			removeErr = d.fs.RemoveAll(target)
		default:
			removeErr = d.fs.Remove(target)
		}
		if removeErr != nil {
			logger.Error().Err(removeErr).Str("target", target).Msg("failed to remove existing target")
			return Result{
				Target: target,
				Reason: ReasonFilesystemError,
				Err:    errors.Wrapf(removeErr, errors.ErrRemove, "failed to remove existing target: %s", target),
			}
		}
	}

	if err := d.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		logger.Error().Err(err).Str("target", target).Msg("failed to create parent directory")
		return Result{
			Target: target,
			Reason: ReasonFilesystemError,
			Err:    errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent directory for %s", target),
		}
	}

	if err := d.fs.Symlink(canonical, target); err != nil {
		logger.Error().Err(err).Str("target", target).Str("source", canonical).Msg("failed to create symlink")
		return Result{
			Target: target,
			Reason: ReasonFilesystemError,
			Err:    errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create symlink at %s", target),
		}
	}

	logger.Info().Str("target", target).Str("source", canonical).Msg("created symlink")
	return Result{Target: target, Success: true, Reason: ReasonLinked}
}

// DeployAll links every (name, target) pair in the descriptor against
// the store, continuing through individual failures. A missing store
// source is reported with the inferred file-or-directory kind for the
// diagnostic; partial success is expected and reported, not fatal.
func (d *Deployer) DeployAll(desc *profiles.Profile, storeRoot string, force bool) Results {
	logger := logging.GetLogger("deploy")

	results := make(Results, 0, desc.ConfigPaths.Len())
	for _, name := range desc.ConfigPaths.Names() {
		targetPath, _ := desc.ConfigPaths.Get(name)
		source := filepath.Join(storeRoot, name)

		if _, err := d.fs.Lstat(source); err != nil {
			kind := conflicts.InferSourceKind(d.fs, source)
			logger.Warn().
				Str("name", name).
				Str("source", source).
				Str("kind", string(kind)).
				Msgf("config %s not found in store", kind)
			results = append(results, Result{
				Name:   name,
				Target: paths.ExpandHome(targetPath),
				Reason: ReasonSourceMissing,
				Err:    errors.Newf(errors.ErrSourceMissing, "config %s not found: %s", kind, source),
			})
			continue
		}

		result := d.Link(source, targetPath, force)
		result.Name = name
		results = append(results, result)
	}

	return results
}
