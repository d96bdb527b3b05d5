//go:build !linux

package executor

import "errors"

// dropCaches is Linux-only; other platforms expose no equivalent knob.
func dropCaches() error {
	return errors.New("cache dropping not supported on this platform")
}

func syncFS() {}
