//go:build !debug

package report

// Debugf is a no-op in release builds.
func Debugf(format string, args ...interface{}) {}
