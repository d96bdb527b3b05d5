//go:build linux

package scratch

import "golang.org/x/sys/unix"

// wellKnownTmpfs is the conventional memory-backed mount on Linux.
const wellKnownTmpfs = "/dev/shm"

// tmpfsMount returns the path of a memory-backed temp filesystem, or ""
// when none is mounted at the well-known location.
func tmpfsMount() string {
	var st unix.Statfs_t
	if err := unix.Statfs(wellKnownTmpfs, &st); err != nil {
		return ""
	}
	if st.Type == unix.TMPFS_MAGIC {
		return wellKnownTmpfs
	}
	return ""
}
