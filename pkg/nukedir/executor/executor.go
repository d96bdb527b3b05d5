// Package executor assembles and runs the rsync invocation that erases one
// target: an always-empty scratch directory is mirrored over the target so
// rsync's delete pass removes everything, then the empty target itself is
// unlinked. Command assembly is pure so it can be tested without rsync.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jamesainslie/nukedir/pkg/nukedir/fstype"
	"github.com/jamesainslie/nukedir/pkg/nukedir/logging"
	"github.com/jamesainslie/nukedir/pkg/nukedir/output"
)

// killGrace is how long a timed-out rsync gets between SIGTERM and SIGKILL.
const killGrace = 10 * time.Second

// ErrRsyncFailed wraps a non-zero rsync exit. The caller must not remove
// the target directory after it.
var ErrRsyncFailed = errors.New("rsync failed")

// Options configure the executor for one run.
type Options struct {
	// RsyncPath is the rsync binary, resolved on PATH if not absolute.
	RsyncPath string

	// Scratch is the empty source directory.
	Scratch string

	// DryRun passes --dry-run to rsync and skips every destructive step.
	DryRun bool

	// RsyncVerbose passes -v through to rsync.
	RsyncVerbose bool

	// IONice selects the scheduling wrapper: 0 none, 1 highest priority,
	// 2 middle, 3 idle.
	IONice int

	// Timeout bounds each rsync invocation. Zero means unbounded.
	Timeout time.Duration

	// WaitForRsync blocks until no other rsync instance runs system-wide
	// before starting. Without it a conflicting instance only warns.
	WaitForRsync bool

	// PollInterval is the wait-for-rsync re-check interval.
	PollInterval time.Duration
}

// Executor erases validated targets one at a time.
type Executor struct {
	opts Options
	rep  *output.Reporter
	log  *log.Logger
}

// New returns an Executor reporting through rep.
func New(opts Options, rep *output.Reporter) *Executor {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 60 * time.Second
	}
	return &Executor{opts: opts, rep: rep, log: logging.Get("executor")}
}

// BuildCommand returns the full argv for one target, including any
// ionice/nice prefix. Level 1 pairs the best-effort I/O class at its
// highest priority with the strongest CPU niceness; level 2 is a plain
// middle best-effort class; level 3 is the idle class.
func (e *Executor) BuildCommand(target string, strat fstype.Strategy) []string {
	var argv []string

	switch e.opts.IONice {
	case 1:
		argv = append(argv, "nice", "-n", "-20", "ionice", "-c", "2", "-n", "0")
	case 2:
		argv = append(argv, "ionice", "-c", "2", "-n", "4")
	case 3:
		argv = append(argv, "ionice", "-c", "3")
	}

	argv = append(argv, e.opts.RsyncPath, "-a", "--stats")
	if e.opts.RsyncVerbose {
		argv = append(argv, "-v")
	}
	if e.opts.DryRun {
		argv = append(argv, "--dry-run")
	}
	argv = append(argv, strat.Flags()...)

	// Trailing slashes make rsync mirror directory contents, not the
	// directories themselves.
	argv = append(argv,
		strings.TrimSuffix(e.opts.Scratch, "/")+"/",
		strings.TrimSuffix(target, "/")+"/")

	return argv
}

// Nuke erases one already-validated target. In dry-run mode rsync still
// runs in its own simulate mode so entry counts surface, but nothing is
// deleted and caches are left alone.
func (e *Executor) Nuke(ctx context.Context, target string, strat fstype.Strategy) error {
	if err := e.checkConflicting(ctx); err != nil {
		return err
	}

	e.rep.Warnf("all contents of %s will be destroyed", target)

	argv := e.BuildCommand(target, strat)
	e.rep.Infof("running: %s", strings.Join(argv, " "))

	if !e.opts.DryRun {
		if err := dropCaches(); err != nil {
			e.rep.Warnf("could not drop filesystem caches: %v", err)
		}
	}

	runCtx := ctx
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	cmd.Cancel = func() error {
		// Give rsync a chance to exit cleanly before the WaitDelay kill.
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = killGrace

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if runCtx.Err() != nil && ctx.Err() == nil {
			return fmt.Errorf("%w for %s: timed out after %s", ErrRsyncFailed, target, e.opts.Timeout)
		}
		return fmt.Errorf("%w for %s: %v", ErrRsyncFailed, target, err)
	}
	e.log.Debug("rsync finished", "target", target, "elapsed", time.Since(start))

	stats, ok := ParseStats(stdout.String())

	if e.opts.DryRun {
		if ok {
			e.rep.Successf("would nuke %s (%s)", target, stats)
		} else {
			e.rep.Successf("would nuke %s", target)
		}
		return nil
	}

	if err := os.Remove(target); err != nil {
		return fmt.Errorf("removing emptied target %s: %w", target, err)
	}
	syncFS()

	if ok {
		e.rep.Successf("nuked %s (%s)", target, stats)
	} else {
		e.rep.Successf("nuked %s", target)
	}
	return nil
}

// checkConflicting handles other rsync instances already running: wait for
// them when configured to, otherwise warn once and proceed.
func (e *Executor) checkConflicting(ctx context.Context) error {
	running, err := rsyncRunning()
	if err != nil {
		e.log.Debug("conflicting-rsync check unavailable", "err", err)
		return nil
	}
	if !running {
		return nil
	}

	if !e.opts.WaitForRsync {
		e.rep.Warnf("another rsync is running; disk contention likely")
		return nil
	}

	ticker := time.NewTicker(e.opts.PollInterval)
	defer ticker.Stop()

	for {
		e.rep.Infof("waiting for running rsync processes to finish")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		running, err = rsyncRunning()
		if err != nil || !running {
			return nil
		}
	}
}
