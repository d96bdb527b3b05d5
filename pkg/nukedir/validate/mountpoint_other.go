//go:build !unix

package validate

// isMountPoint always reports false on platforms without device numbers in
// stat results. The root-target check above it still applies.
func isMountPoint(path string) (bool, error) {
	return false, nil
}
