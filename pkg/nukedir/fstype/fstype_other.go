//go:build !linux

package fstype

// Detect cannot identify the filesystem off Linux; the default strategy
// applies.
func Detect(path string) (string, error) {
	return "unknown", nil
}
