//go:build !linux

package scratch

// tmpfsMount returns "" on platforms without a well-known tmpfs mount; the
// system temp directory is used instead.
func tmpfsMount() string {
	return ""
}
