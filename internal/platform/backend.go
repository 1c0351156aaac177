package platform

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by every operation on a platform without a
// native implementation.
var ErrUnsupported = errors.New("not supported on this platform")

// Feature names used in unsupported-platform errors.
const (
	FeatureCaptureProtection = "Screen capture protection"
	FeatureTaskbarVisibility = "Taskbar visibility control"
)

// Handle is an opaque reference to a native window (an HWND on Windows, an
// NSWindow pointer on macOS). The window system owns it; winveil only passes
// it through to native calls and never keeps it past a single operation.
type Handle struct {
	raw uintptr
}

// NewHandle wraps a raw native window handle supplied by the host shell.
func NewHandle(raw uintptr) Handle {
	return Handle{raw: raw}
}

// IsZero reports whether the handle is the null window.
func (h Handle) IsZero() bool {
	return h.raw == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("0x%x", h.raw)
}

// Capabilities describes which toggles a backend can apply.
type Capabilities struct {
	CaptureProtection bool `json:"capture_protection"`
	TaskbarVisibility bool `json:"taskbar_visibility"`
	// AppWideVisibility is set when taskbar visibility applies to the whole
	// application rather than a single window.
	AppWideVisibility bool `json:"app_wide_visibility"`
}

// Backend applies window-property toggles for one platform. Exactly one
// variant is selected per build by NewBackend.
type Backend interface {
	Name() string
	Capabilities() Capabilities
	// SetCaptureProtection excludes (enabled) or includes the window in
	// screen capture.
	SetCaptureProtection(h Handle, enabled bool) error
	// SetTaskbarVisibility adds (visible) or removes the window from the
	// taskbar or dock.
	SetTaskbarVisibility(h Handle, visible bool) error
}

func unsupported(feature string) error {
	return fmt.Errorf("%s is %w", feature, ErrUnsupported)
}
