// Package scratch manages the empty source directory for the mirroring
// trick. The directory is created once per run, is never written to, and
// must be removed on every exit path.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Dir is the per-run scratch directory.
type Dir struct {
	Path string
}

// Create allocates an empty directory under parent, or under the preferred
// location when parent is empty: a memory-backed filesystem when one is
// mounted, else the system temp directory. The name embeds the pid and a
// random suffix so concurrent runs cannot collide.
func Create(parent string) (*Dir, error) {
	if parent == "" {
		parent = Parent()
	}

	path := filepath.Join(parent, fmt.Sprintf("nukedir-%d-%s", os.Getpid(), uuid.NewString()))
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	return &Dir{Path: path}, nil
}

// Remove deletes the scratch directory tree. Safe to call more than once.
func (d *Dir) Remove() error {
	if d == nil || d.Path == "" {
		return nil
	}
	if err := os.RemoveAll(d.Path); err != nil {
		return fmt.Errorf("removing scratch directory: %w", err)
	}
	d.Path = ""
	return nil
}

// Parent returns the preferred parent for the scratch directory.
func Parent() string {
	if p := tmpfsMount(); p != "" {
		return p
	}
	return os.TempDir()
}
