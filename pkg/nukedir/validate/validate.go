// Package validate enforces the safety contract for every target before
// anything destructive happens. Failures split into two severities:
//
//   - hard: the target resolves to the filesystem root or a mount point.
//     These almost certainly indicate operator error with catastrophic
//     blast radius, so the whole run aborts.
//   - soft: the target does not exist or is not a directory. These are
//     recoverable typos; the target is skipped and the run continues.
package validate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Sentinel errors. ErrRootTarget and ErrMountPoint are hard failures.
var (
	ErrRootTarget   = errors.New("target is the filesystem root")
	ErrMountPoint   = errors.New("target is a mount point")
	ErrNotDirectory = errors.New("target is not a directory")
)

// Fatal reports whether a validation error must abort the whole run rather
// than skip the one target.
func Fatal(err error) bool {
	return errors.Is(err, ErrRootTarget) || errors.Is(err, ErrMountPoint)
}

// Target resolves raw to a canonical absolute path and applies the safety
// checks in severity order. The returned path has symlinks followed and
// "." / ".." collapsed.
func Target(raw string) (string, error) {
	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %q: %w", raw, err)
	}

	path, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %q: %w", raw, err)
	}

	if path == string(os.PathSeparator) {
		return "", fmt.Errorf("%w: %q", ErrRootTarget, raw)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("cannot stat %q: %w", raw, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}

	mount, err := isMountPoint(path)
	if err != nil {
		return "", fmt.Errorf("mount-point check failed for %s: %w", path, err)
	}
	if mount {
		return "", fmt.Errorf("%w: %s", ErrMountPoint, path)
	}

	return path, nil
}
