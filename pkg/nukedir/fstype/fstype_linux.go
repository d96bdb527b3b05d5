//go:build linux

package fstype

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// zfsMagic is out-of-tree and therefore absent from x/sys/unix.
const zfsMagic = 0x2fc12fc1

// Detect returns a short type label for the filesystem covering path.
func Detect(path string) (string, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return "", fmt.Errorf("statfs %s: %w", path, err)
	}

	switch uint32(st.Type) {
	case unix.XFS_SUPER_MAGIC:
		return "xfs", nil
	case unix.BTRFS_SUPER_MAGIC:
		return "btrfs", nil
	case unix.EXT4_SUPER_MAGIC:
		// Shared by ext2/ext3/ext4.
		return "ext4", nil
	case unix.TMPFS_MAGIC:
		return "tmpfs", nil
	case unix.F2FS_SUPER_MAGIC:
		return "f2fs", nil
	case zfsMagic:
		return "zfs", nil
	case unix.NFS_SUPER_MAGIC:
		return "nfs", nil
	case unix.OVERLAYFS_SUPER_MAGIC:
		return "overlay", nil
	default:
		return fmt.Sprintf("unknown(0x%x)", st.Type), nil
	}
}
