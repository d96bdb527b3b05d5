package executor

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/nukedir/pkg/nukedir/fstype"
	"github.com/jamesainslie/nukedir/pkg/nukedir/output"
)

func newTestExecutor(t *testing.T, opts Options) (*Executor, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	if opts.RsyncPath == "" {
		opts.RsyncPath = "rsync"
	}
	if opts.Scratch == "" {
		opts.Scratch = "/dev/shm/nukedir-1-x"
	}
	return New(opts, output.NewReporter(&buf, "nukedir", false)), &buf
}

func TestBuildCommand_Default(t *testing.T) {
	e, _ := newTestExecutor(t, Options{Scratch: "/dev/shm/s", DryRun: true})

	argv := e.BuildCommand("/data/old", fstype.StrategyFor("ext4"))
	assert.Equal(t, []string{
		"rsync", "-a", "--stats", "--dry-run",
		"--delete-before", "--no-inc-recursive", "--inplace",
		"/dev/shm/s/", "/data/old/",
	}, argv)
}

func TestBuildCommand_StrategyFlags(t *testing.T) {
	e, _ := newTestExecutor(t, Options{Scratch: "/dev/shm/s"})

	argv := e.BuildCommand("/data/old", fstype.StrategyFor("xfs"))
	assert.Contains(t, argv, "--delete-during")
	assert.NotContains(t, argv, "--dry-run")

	argv = e.BuildCommand("/data/old", fstype.StrategyFor("btrfs"))
	assert.Contains(t, argv, "--delete-delay")
	assert.Contains(t, argv, "--preallocate")
}

func TestBuildCommand_IONicePrefixes(t *testing.T) {
	tests := []struct {
		level  int
		prefix []string
	}{
		{0, nil},
		{1, []string{"nice", "-n", "-20", "ionice", "-c", "2", "-n", "0"}},
		{2, []string{"ionice", "-c", "2", "-n", "4"}},
		{3, []string{"ionice", "-c", "3"}},
	}

	for _, tt := range tests {
		e, _ := newTestExecutor(t, Options{Scratch: "/dev/shm/s", IONice: tt.level})
		argv := e.BuildCommand("/data/old", fstype.StrategyFor("ext4"))

		if tt.prefix == nil {
			assert.Equal(t, "rsync", argv[0], "level %d", tt.level)
			continue
		}
		require.Greater(t, len(argv), len(tt.prefix), "level %d", tt.level)
		assert.Equal(t, tt.prefix, argv[:len(tt.prefix)], "level %d", tt.level)
		assert.Equal(t, "rsync", argv[len(tt.prefix)], "level %d", tt.level)
	}
}

func TestBuildCommand_RsyncVerbose(t *testing.T) {
	e, _ := newTestExecutor(t, Options{Scratch: "/dev/shm/s", RsyncVerbose: true})
	argv := e.BuildCommand("/data/old", fstype.StrategyFor("ext4"))
	assert.Contains(t, argv, "-v")
}

func TestBuildCommand_TrailingSlashes(t *testing.T) {
	e, _ := newTestExecutor(t, Options{Scratch: "/dev/shm/s/"})
	argv := e.BuildCommand("/data/old/", fstype.StrategyFor("ext4"))

	assert.Equal(t, "/dev/shm/s/", argv[len(argv)-2])
	assert.Equal(t, "/data/old/", argv[len(argv)-1])
}

// buildTree creates nFiles in dir and recurses depth levels of
// subdirectories, each again holding nFiles.
func buildTree(t *testing.T, dir string, nFiles, depth int) {
	t.Helper()
	for i := 0; i < nFiles; i++ {
		path := filepath.Join(dir, "file"+string(rune('a'+i)))
		require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))
	}
	if depth == 0 {
		return
	}
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	buildTree(t, sub, nFiles, depth-1)
}

func requireRsync(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("rsync"); err != nil {
		t.Skip("rsync not installed")
	}
}

func TestNuke_RemovesTarget(t *testing.T) {
	requireRsync(t)

	scratchDir := t.TempDir()
	target := filepath.Join(t.TempDir(), "victim")
	require.NoError(t, os.Mkdir(target, 0o755))
	buildTree(t, target, 10, 2)

	e, out := newTestExecutor(t, Options{Scratch: scratchDir})
	err := e.Nuke(context.Background(), target, fstype.StrategyFor("ext4"))
	require.NoError(t, err)

	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err), "target must no longer exist")
	assert.Contains(t, out.String(), "nuked "+target)
}

func TestNuke_EmptyTarget(t *testing.T) {
	requireRsync(t)

	target := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.Mkdir(target, 0o755))

	e, _ := newTestExecutor(t, Options{Scratch: t.TempDir()})
	require.NoError(t, e.Nuke(context.Background(), target, fstype.StrategyFor("ext4")))

	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))
}

func TestNuke_DryRunChangesNothing(t *testing.T) {
	requireRsync(t)

	target := filepath.Join(t.TempDir(), "victim")
	require.NoError(t, os.Mkdir(target, 0o755))
	buildTree(t, target, 3, 1)

	e, out := newTestExecutor(t, Options{Scratch: t.TempDir(), DryRun: true})
	require.NoError(t, e.Nuke(context.Background(), target, fstype.StrategyFor("ext4")))

	// Target and its whole tree must survive.
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	_, err = os.Stat(filepath.Join(target, "sub", "filea"))
	assert.NoError(t, err)

	assert.Contains(t, out.String(), "would nuke "+target)
}

func TestNuke_RsyncFailureSkipsRemoval(t *testing.T) {
	requireRsync(t)

	target := filepath.Join(t.TempDir(), "victim")
	require.NoError(t, os.Mkdir(target, 0o755))
	buildTree(t, target, 2, 0)

	// A missing scratch source makes rsync exit non-zero.
	e, _ := newTestExecutor(t, Options{Scratch: filepath.Join(t.TempDir(), "gone")})
	err := e.Nuke(context.Background(), target, fstype.StrategyFor("ext4"))
	require.ErrorIs(t, err, ErrRsyncFailed)

	// The fail-fast contract: the target directory must still exist.
	info, statErr := os.Stat(target)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestNuke_CancelledContext(t *testing.T) {
	requireRsync(t)

	target := filepath.Join(t.TempDir(), "victim")
	require.NoError(t, os.Mkdir(target, 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, _ := newTestExecutor(t, Options{Scratch: t.TempDir()})
	err := e.Nuke(ctx, target, fstype.StrategyFor("ext4"))
	assert.Error(t, err)
}

func TestCheckConflicting_WaitStopsOnContextCancel(t *testing.T) {
	e, _ := newTestExecutor(t, Options{
		Scratch:      t.TempDir(),
		WaitForRsync: true,
		PollInterval: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Regardless of whether another rsync runs, the wait must return once
	// the context is done.
	done := make(chan error, 1)
	go func() { done <- e.checkConflicting(ctx) }()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("checkConflicting did not return after context cancellation")
	}
}

func TestParseStats(t *testing.T) {
	out := strings.Join([]string{
		"Number of files: 1,234 (reg: 1,200, dir: 34)",
		"Number of created files: 0",
		"Number of deleted files: 1,234",
		"Total file size: 5,678,901 bytes",
		"Total transferred file size: 0 bytes",
	}, "\n")

	stats, ok := ParseStats(out)
	require.True(t, ok)
	assert.Equal(t, int64(1234), stats.Files)
	assert.Equal(t, int64(5678901), stats.TotalSize)

	rendered := stats.String()
	assert.Contains(t, rendered, "1,234")
}

func TestParseStats_NoStatsBlock(t *testing.T) {
	_, ok := ParseStats("sending incremental file list\n")
	assert.False(t, ok)
}
