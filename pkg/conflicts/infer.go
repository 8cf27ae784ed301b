package conflicts

import (
	"path/filepath"
	"strings"

	"github.com/dotsmith-cli/dotsmith/pkg/types"
)

// knownDotfileNames are extensionless entries that are conventionally
// files, not directories. Store entries are usually named without the
// leading dot (zshrc, not .zshrc), so both forms are listed.
var knownDotfileNames = map[string]bool{
	"zshrc":             true,
	"zprofile":          true,
	"bashrc":            true,
	"bash_profile":      true,
	"vimrc":             true,
	"gitconfig":         true,
	"gitignore_global":  true,
	".zshrc":            true,
	".zprofile":         true,
	".bashrc":           true,
	".bash_profile":     true,
	".vimrc":            true,
	".tmux.conf":        true,
	".gitconfig":        true,
	".gitignore_global": true,
}

// InferSourceKind guesses whether a store entry is a file or a
// directory. When the entry exists it is classified by its actual
// filesystem type; otherwise the guess uses the file extension and a
// fixed set of well-known extensionless dotfile names, defaulting to
// directory. The inference is used for diagnostics only and never
// blocks deployment.
func InferSourceKind(filesystem types.FS, path string) Kind {
	if info, err := filesystem.Lstat(path); err == nil {
		if info.IsDir() {
			return KindDirectory
		}
		return KindFile
	}

	base := filepath.Base(path)
	if knownDotfileNames[base] {
		return KindFile
	}

	// An extension like .conf or .toml suggests a file. A bare leading
	// dot (".zshrc") counts as an extension too, matching how dotfiles
	// are usually named.
	if ext := filepath.Ext(base); ext != "" && ext != base {
		return KindFile
	}
	if strings.HasPrefix(base, ".") && len(base) > 1 {
		return KindFile
	}

	return KindDirectory
}
