package executor

import (
	"errors"
	"os/exec"
)

// rsyncRunning reports whether any rsync process is running system-wide.
// The check is advisory: another instance can always start between this
// check and our own invocation.
func rsyncRunning() (bool, error) {
	pgrep, err := exec.LookPath("pgrep")
	if err != nil {
		return false, err
	}

	// pgrep exits 0 when at least one process matches, 1 when none do.
	err = exec.Command(pgrep, "-x", "rsync").Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, err
}
