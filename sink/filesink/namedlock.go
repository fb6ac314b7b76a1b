package filesink

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// lockName derives the cross-process lock identity from the
// canonicalized destination path, so every process opening the same
// file computes the same name regardless of how the path was spelled.
func lockName(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	abs = filepath.Clean(abs)

	// Resolve symlinks in the parent so /var/log and /private/var/log
	// style aliases agree. The file itself may not exist yet.
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}

	if runtime.GOOS == "windows" {
		abs = strings.ToLower(abs)
	}

	return fmt.Sprintf("logsink-%016x", xxhash.Sum64String(abs))
}
