//go:build linux

package executor

import (
	"os"

	"golang.org/x/sys/unix"
)

// dropCachesPath is the kernel knob for discarding clean page, dentry and
// inode caches.
const dropCachesPath = "/proc/sys/vm/drop_caches"

// dropCaches flushes filesystem buffers, then asks the kernel to discard
// its caches. Freeing the dentry/inode cache entries for millions of soon
// to be deleted files leaves more RAM for the deletion itself. Dirty pages
// must be synced first or the drop silently skips them.
func dropCaches() error {
	unix.Sync()
	return os.WriteFile(dropCachesPath, []byte("3\n"), 0o200)
}

// syncFS flushes filesystem buffers.
func syncFS() {
	unix.Sync()
}
