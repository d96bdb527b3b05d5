// Package privilege handles the superuser requirement. The tool only ever
// runs as root: an unprivileged invocation is transparently re-executed
// under sudo with the original arguments, and the parent exits with the
// child's status.
package privilege

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// probeTimeout bounds the non-interactive sudo capability check.
const probeTimeout = 10 * time.Second

// Sentinel errors for the startup checks.
var (
	ErrNoElevation = errors.New("superuser privileges required and sudo is not usable non-interactively")
	ErrRootCwd     = errors.New("refusing to run from the filesystem root")
)

// IsRoot reports whether the process runs with superuser privileges.
func IsRoot() bool {
	return os.Geteuid() == 0
}

// CanElevate reports whether sudo can grant privileges without prompting.
func CanElevate(ctx context.Context) bool {
	sudoPath, err := exec.LookPath("sudo")
	if err != nil {
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	// sudo -n fails immediately instead of prompting for a password.
	return exec.CommandContext(probeCtx, sudoPath, "-n", "true").Run() == nil
}

// Reexec runs the current executable under sudo with args appended and
// returns the child's exit code. Stdio is inherited so the child behaves
// exactly as a direct privileged invocation would.
func Reexec(ctx context.Context, args []string) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, err
	}

	cmd := exec.CommandContext(ctx, "sudo", append([]string{exe}, args...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, err
	}
	return 0, nil
}

// CheckWorkingDirectory rejects execution from the filesystem root, where
// relative target paths resolve in surprising ways.
func CheckWorkingDirectory() error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	if filepath.Clean(wd) == string(os.PathSeparator) {
		return ErrRootCwd
	}
	return nil
}
