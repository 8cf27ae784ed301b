package backup

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dotsmith-cli/dotsmith/pkg/types"
)

// copyFile copies a regular file preserving its permission bits and
// modification time.
func copyFile(filesystem types.FS, source, destination string, info fs.FileInfo) error {
	data, err := filesystem.ReadFile(source)
	if err != nil {
		return fmt.Errorf("reading %s: %w", source, err)
	}

	if err := filesystem.MkdirAll(filepath.Dir(destination), 0755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", destination, err)
	}

	if err := filesystem.WriteFile(destination, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", destination, err)
	}

	if err := filesystem.Chtimes(destination, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("preserving times of %s: %w", destination, err)
	}

	return nil
}

// copyTree copies a directory recursively. Symbolic links inside the
// tree are recreated as links rather than dereferenced, so the copied
// structure matches the original exactly and link cycles cannot recurse.
func copyTree(filesystem types.FS, source, destination string) error {
	info, err := filesystem.Lstat(source)
	if err != nil {
		return fmt.Errorf("stat %s: %w", source, err)
	}

	if err := filesystem.MkdirAll(destination, info.Mode().Perm()); err != nil {
		return fmt.Errorf("creating %s: %w", destination, err)
	}

	dirents, err := filesystem.ReadDir(source)
	if err != nil {
		return fmt.Errorf("reading %s: %w", source, err)
	}

	for _, dirent := range dirents {
		src := filepath.Join(source, dirent.Name())
		dst := filepath.Join(destination, dirent.Name())

		entryInfo, err := dirent.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", src, err)
		}

		switch {
		case entryInfo.Mode()&fs.ModeSymlink != 0:
			linkDest, err := filesystem.Readlink(src)
			if err != nil {
				return fmt.Errorf("readlink %s: %w", src, err)
			}
			if err := filesystem.Symlink(linkDest, dst); err != nil {
				return fmt.Errorf("relinking %s: %w", dst, err)
			}
		case entryInfo.IsDir():
			if err := copyTree(filesystem, src, dst); err != nil {
				return err
			}
		default:
			if err := copyFile(filesystem, src, dst, entryInfo); err != nil {
				return err
			}
		}
	}

	return nil
}
