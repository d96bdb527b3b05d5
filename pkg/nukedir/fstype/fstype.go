// Package fstype detects the filesystem type backing a path and maps it to
// the rsync flags that delete fastest on that filesystem.
package fstype

// Strategy is the rsync flag set tuned for one filesystem family.
type Strategy struct {
	// Label is the short filesystem type name the strategy was chosen for.
	Label string

	// DeleteFlag selects when rsync removes extraneous destination
	// entries relative to the transfer.
	DeleteFlag string

	// Extra holds auxiliary flags applied alongside DeleteFlag.
	Extra []string
}

// Flags returns the complete flag list for the strategy.
func (s Strategy) Flags() []string {
	return append([]string{s.DeleteFlag}, s.Extra...)
}

// StrategyFor maps a filesystem type label to its deletion strategy.
//
// XFS allocation groups tolerate interleaved deletion well, so deletes run
// during traversal. B-tree filesystems rebalance less when deletions are
// batched at the end, so btrfs delays them and preallocates. Everything
// else deletes up front: no data is ever transferred in this workflow, so
// there is nothing to wait for, and disabling incremental recursion plus
// updating in place keeps rsync from building transfer state it will
// never use.
func StrategyFor(label string) Strategy {
	switch label {
	case "xfs":
		return Strategy{Label: label, DeleteFlag: "--delete-during"}
	case "btrfs":
		return Strategy{Label: label, DeleteFlag: "--delete-delay", Extra: []string{"--preallocate"}}
	default:
		return Strategy{Label: label, DeleteFlag: "--delete-before", Extra: []string{"--no-inc-recursive", "--inplace"}}
	}
}
