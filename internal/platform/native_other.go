//go:build !windows && !(darwin && cgo)

package platform

// NewBackend returns the Backend for this build.
func NewBackend() Backend {
	return UnsupportedBackend{}
}

// NewResolver returns the window Resolver for this build.
func NewResolver() Resolver {
	return PassthroughResolver{}
}

// RunApp runs fn and returns its result. Only macOS needs a run loop.
func RunApp(fn func() int) int {
	return fn()
}
