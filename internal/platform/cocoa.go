package platform

// SharingType mirrors NSWindowSharingType.
type SharingType int

const (
	SharingNone      SharingType = 0
	SharingReadOnly  SharingType = 1
	SharingReadWrite SharingType = 2
)

// ActivationPolicy mirrors NSApplicationActivationPolicy.
type ActivationPolicy int

const (
	PolicyRegular    ActivationPolicy = 0
	PolicyAccessory  ActivationPolicy = 1
	PolicyProhibited ActivationPolicy = 2
)

// CocoaAPI is the native surface the macOS backend needs. The real
// implementation lives in native_darwin.go. AppKit itself cannot fail these
// calls; errors only report a process with no NSApplication.
type CocoaAPI interface {
	SetSharingType(h Handle, sharing SharingType) error
	// SetActivationPolicy acts on NSApp, not on a window.
	SetActivationPolicy(policy ActivationPolicy) error
}

// CocoaBackend implements Backend on the AppKit window-sharing and
// activation-policy model.
type CocoaBackend struct {
	api CocoaAPI
}

var _ Backend = (*CocoaBackend)(nil)

// NewCocoaBackend creates a macOS-model backend over api.
func NewCocoaBackend(api CocoaAPI) *CocoaBackend {
	return &CocoaBackend{api: api}
}

func (b *CocoaBackend) Name() string {
	return "darwin"
}

func (b *CocoaBackend) Capabilities() Capabilities {
	return Capabilities{CaptureProtection: true, TaskbarVisibility: true, AppWideVisibility: true}
}

// SetCaptureProtection sets the sharing type to none when enabled and to
// read-only otherwise. Read-write sharing is never restored.
func (b *CocoaBackend) SetCaptureProtection(h Handle, enabled bool) error {
	if enabled {
		return b.api.SetSharingType(h, SharingNone)
	}
	return b.api.SetSharingType(h, SharingReadOnly)
}

// SetTaskbarVisibility switches the application between the regular and
// accessory activation policies. The handle is ignored: dock presence is a
// property of the whole process, so hiding one window hides every window of
// the application from the dock.
func (b *CocoaBackend) SetTaskbarVisibility(_ Handle, visible bool) error {
	if visible {
		return b.api.SetActivationPolicy(PolicyRegular)
	}
	return b.api.SetActivationPolicy(PolicyAccessory)
}
