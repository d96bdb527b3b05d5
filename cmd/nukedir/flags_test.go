package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveModes_Defaults(t *testing.T) {
	m := resolveModes(nil)
	assert.True(t, m.DryRun, "dry-run defaults on")
	assert.True(t, m.Verbose, "verbose defaults on")

	m = resolveModes([]string{"/data/old"})
	assert.True(t, m.DryRun)
	assert.True(t, m.Verbose)
}

func TestResolveModes_LastFlagWins(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantDryRun  bool
		wantVerbose bool
	}{
		{"notdryrun", []string{"-N"}, false, true},
		{"dryrun after notdryrun", []string{"-N", "-n"}, true, true},
		{"notdryrun after dryrun", []string{"-n", "-N"}, false, true},
		{"long forms", []string{"--notdryrun", "--dryrun"}, true, true},
		{"quiet", []string{"-q"}, true, false},
		{"verbose after quiet", []string{"-q", "-v"}, true, true},
		{"quiet after verbose", []string{"--verbose", "--quiet"}, true, false},
		{"mixed with targets", []string{"-N", "/a", "--quiet", "/b"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := resolveModes(tt.args)
			assert.Equal(t, tt.wantDryRun, m.DryRun, "DryRun")
			assert.Equal(t, tt.wantVerbose, m.Verbose, "Verbose")
		})
	}
}

func TestResolveModes_ClusteredShortFlags(t *testing.T) {
	clustered := resolveModes([]string{"-qN", "/data"})
	separate := resolveModes([]string{"-q", "-N", "/data"})
	assert.Equal(t, separate, clustered, "-qN must equal -q -N")

	assert.False(t, clustered.DryRun)
	assert.False(t, clustered.Verbose)
}

func TestResolveModes_ValueFlagsDoNotConsumeToggles(t *testing.T) {
	// "3" and "2m" are option values, not targets or toggles.
	m := resolveModes([]string{"-i", "3", "-T", "2m", "-N"})
	assert.False(t, m.DryRun)

	// Inline value forms.
	m = resolveModes([]string{"-i3", "-N"})
	assert.False(t, m.DryRun)

	m = resolveModes([]string{"--ionice=3", "--quiet"})
	assert.False(t, m.Verbose)

	// A cluster ending in a value flag consumes the next token.
	m = resolveModes([]string{"-Ni", "3", "/data"})
	assert.False(t, m.DryRun)
}

func TestResolveModes_InlineBooleanValues(t *testing.T) {
	// "--dryrun=false" negates the toggle rather than asserting it.
	m := resolveModes([]string{"--dryrun=false"})
	assert.False(t, m.DryRun)

	m = resolveModes([]string{"--notdryrun=false"})
	assert.True(t, m.DryRun)

	m = resolveModes([]string{"--verbose=false"})
	assert.False(t, m.Verbose)

	m = resolveModes([]string{"--quiet=false"})
	assert.True(t, m.Verbose)

	m = resolveModes([]string{"-n=false"})
	assert.False(t, m.DryRun)

	// The inline value still participates in last-flag-wins ordering.
	m = resolveModes([]string{"--notdryrun", "--dryrun=true"})
	assert.True(t, m.DryRun)
}

func TestResolveModes_DoubleDashStopsParsing(t *testing.T) {
	m := resolveModes([]string{"-N", "--", "-n"})
	assert.False(t, m.DryRun, "-n after -- is a target, not a flag")
}

func TestNormalizeTargets(t *testing.T) {
	got := normalizeTargets([]string{"/a", "/b/", "rel/path"})
	assert.Equal(t, []string{"/a/", "/b/", "rel/path/"}, got)
}
