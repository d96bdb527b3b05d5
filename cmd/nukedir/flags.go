package main

import (
	"strconv"
	"strings"
)

// modes holds the two paired toggles whose later occurrences override
// earlier ones: -n/--dryrun vs -N/--notdryrun and -v/--verbose vs
// -q/--quiet. Both default ON per the safety-first posture.
type modes struct {
	DryRun  bool
	Verbose bool
}

// valueShorts are the short flags that consume an argument. A short-flag
// cluster ends at one of them because the remaining characters (or the next
// token) are its value.
const valueShorts = "iT"

// resolveModes scans the raw argument list and applies last-flag-wins
// semantics for the paired toggles. Clustered short flags expand, so
// "-qN" is identical to "-q -N", and explicit boolean values such as
// "--dryrun=false" are honored. Tokens after "--" are targets.
func resolveModes(args []string) modes {
	m := modes{DryRun: true, Verbose: true}

	skipValue := false
	for _, arg := range args {
		if skipValue {
			skipValue = false
			continue
		}

		switch {
		case arg == "--":
			return m

		case strings.HasPrefix(arg, "--"):
			name, value, hasValue := splitLongFlag(arg)
			on := true
			if hasValue {
				if b, err := strconv.ParseBool(value); err == nil {
					on = b
				}
			}
			switch name {
			case "dryrun":
				m.DryRun = on
			case "notdryrun":
				m.DryRun = !on
			case "verbose":
				m.Verbose = on
			case "quiet":
				m.Verbose = !on
			case "timeout", "ionice":
				if !hasValue {
					skipValue = true
				}
			}

		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			cluster := arg[1:]
			for i := 0; i < len(cluster); i++ {
				if cluster[i] == '=' {
					// "-n=false" re-applies the preceding toggle
					// with the inline value.
					if i > 0 {
						if b, err := strconv.ParseBool(cluster[i+1:]); err == nil {
							m.applyToggle(cluster[i-1], b)
						}
					}
					break
				}
				m.applyToggle(cluster[i], true)
				if strings.ContainsRune(valueShorts, rune(cluster[i])) {
					// "-i3" carries its value inline; "-i 3" takes
					// the next token.
					if i == len(cluster)-1 {
						skipValue = true
					}
					break
				}
			}
		}
	}

	return m
}

// applyToggle sets the pair state for one short toggle flag.
func (m *modes) applyToggle(c byte, on bool) {
	switch c {
	case 'n':
		m.DryRun = on
	case 'N':
		m.DryRun = !on
	case 'v':
		m.Verbose = on
	case 'q':
		m.Verbose = !on
	}
}

// splitLongFlag returns the flag name of a "--name" or "--name=value" token,
// the inline value, and whether one was present.
func splitLongFlag(arg string) (string, string, bool) {
	body := strings.TrimPrefix(arg, "--")
	if idx := strings.IndexByte(body, '='); idx >= 0 {
		return body[:idx], body[idx+1:], true
	}
	return body, "", false
}
