package backup

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dotsmith-cli/dotsmith/pkg/errors"
	"github.com/dotsmith-cli/dotsmith/pkg/logging"
	"github.com/dotsmith-cli/dotsmith/pkg/paths"
	"github.com/dotsmith-cli/dotsmith/pkg/types"
)

// TimestampFormat names backup session directories, e.g. 2026-08-29_14-03-05
const TimestampFormat = "2006-01-02_15-04-05"

// ManifestFileName is the manifest written inside each session directory
const ManifestFileName = "backup_log.txt"

// Status is the tri-state outcome of backing up one target
type Status int

const (
	// StatusSkipped means nothing existed at the path, no backup needed
	StatusSkipped Status = iota
	// StatusFailed means the copy was attempted and failed
	StatusFailed
	// StatusBackedUp means the target was copied into the session
	StatusBackedUp
)

// Entry records one successful backup in the session manifest
type Entry struct {
	Source      string
	Destination string
	Kind        string // "file" or "directory"
	Timestamp   string
}

// Target is one named path to back up, in deployment order
type Target struct {
	Name string
	Path string
}

// Session owns one backup run's timestamped directory and its
// accumulated manifest. All backups in a run share the directory.
type Session struct {
	fs        types.FS
	dir       string
	timestamp string
	entries   []Entry
}

// NewSession creates a fresh timestamped directory under backupRoot and
// returns the owning session. When a directory for the current second
// already exists, a numeric suffix is appended rather than silently
// reusing it.
func NewSession(filesystem types.FS, backupRoot string) (*Session, error) {
	timestamp := time.Now().Format(TimestampFormat)

	dir := filepath.Join(backupRoot, timestamp)
	for n := 2; ; n++ {
		if _, err := filesystem.Lstat(dir); err != nil {
			break
		}
		dir = filepath.Join(backupRoot, fmt.Sprintf("%s_%d", timestamp, n))
	}

	if err := filesystem.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create backup directory %s", dir)
	}

	logger := logging.GetLogger("backup")
	logger.Info().Str("dir", dir).Msg("backup session created")

	return &Session{
		fs:        filesystem,
		dir:       dir,
		timestamp: timestamp,
	}, nil
}

// Dir returns the session directory
func (s *Session) Dir() string {
	return s.dir
}

// Timestamp returns the session timestamp
func (s *Session) Timestamp() string {
	return s.timestamp
}

// Entries returns the successful backups recorded so far
func (s *Session) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// BackupOne copies source into the session directory under the given
// logical name. Files keep their permissions and modification times;
// directories are copied recursively with symlinks preserved as links.
// Any filesystem error is logged and reported as false so one failed
// item never aborts the rest of the session.
func (s *Session) BackupOne(source, name string) bool {
	logger := logging.GetLogger("backup")

	info, err := s.fs.Lstat(source)
	if err != nil {
		logger.Error().Err(err).Str("source", source).Msg("cannot stat backup source")
		return false
	}

	destination := filepath.Join(s.dir, name)
	kind := "file"
	if info.IsDir() {
		kind = "directory"
		err = copyTree(s.fs, source, destination)
	} else {
		err = copyFile(s.fs, source, destination, info)
	}
	if err != nil {
		logger.Error().Err(err).Str("source", source).Str("name", name).Msg("backup failed")
		return false
	}

	s.entries = append(s.entries, Entry{
		Source:      source,
		Destination: destination,
		Kind:        kind,
		Timestamp:   s.timestamp,
	})
	logger.Info().Str("name", name).Str("source", source).Msg("backed up")

	return true
}

// BackupMany backs up each target that exists, in the given order, and
// records a tri-state outcome per name. Targets that do not exist are
// marked skipped, not failed. Home-directory placeholders in target
// paths are expanded.
func (s *Session) BackupMany(targets []Target) map[string]Status {
	results := make(map[string]Status, len(targets))

	for _, target := range targets {
		path := paths.ExpandHome(target.Path)

		if _, err := s.fs.Lstat(path); err != nil {
			results[target.Name] = StatusSkipped
			continue
		}

		if s.BackupOne(path, target.Name) {
			results[target.Name] = StatusBackedUp
		} else {
			results[target.Name] = StatusFailed
		}
	}

	return results
}

// SaveManifest writes a human-readable log of every successful backup
// to backup_log.txt inside the session directory. It is the sole
// durable record of the run and is written even when individual
// backups failed.
func (s *Session) SaveManifest() error {
	var b strings.Builder

	b.WriteString("Dotfiles Backup Log\n")
	fmt.Fprintf(&b, "Timestamp: %s\n", s.timestamp)
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, entry := range s.entries {
		fmt.Fprintf(&b, "Type: %s\n", entry.Kind)
		fmt.Fprintf(&b, "Source: %s\n", entry.Source)
		fmt.Fprintf(&b, "Destination: %s\n", entry.Destination)
		b.WriteString(strings.Repeat("-", 60) + "\n")
	}

	manifestPath := filepath.Join(s.dir, ManifestFileName)
	if err := s.fs.WriteFile(manifestPath, []byte(b.String()), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to write backup manifest %s", manifestPath)
	}

	logger := logging.GetLogger("backup")
	logger.Info().Str("path", manifestPath).Int("entries", len(s.entries)).Msg("backup manifest saved")
	return nil
}
