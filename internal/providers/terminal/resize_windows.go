//go:build windows

package terminal

// watchResize is a no-op; Windows consoles have no SIGWINCH
func watchResize(func()) (stop func()) {
	return func() {}
}
