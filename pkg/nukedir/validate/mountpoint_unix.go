//go:build unix

package validate

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// isMountPoint reports whether path is the root of a mounted filesystem by
// comparing its device number against its parent's. Bind mounts of a
// directory onto itself are not detected; those are indistinguishable from
// a plain directory at this level.
func isMountPoint(path string) (bool, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return false, err
	}

	parent := filepath.Dir(path)
	if parent == path {
		// The filesystem root is always a mount point.
		return true, nil
	}

	var pst unix.Stat_t
	if err := unix.Lstat(parent, &pst); err != nil {
		return false, err
	}

	return st.Dev != pst.Dev, nil
}
