package platform

import "fmt"

// WindowAttribute is a DWMWINDOWATTRIBUTE value.
type WindowAttribute uint32

const (
	AttrExcludedFromPeek WindowAttribute = 12 // DWMWA_EXCLUDED_FROM_PEEK
	AttrCloak            WindowAttribute = 13 // DWMWA_CLOAK
)

// Extended window style bits (GWL_EXSTYLE) that decide taskbar presence.
const (
	StyleToolWindow uintptr = 0x00000080 // WS_EX_TOOLWINDOW
	StyleAppWindow  uintptr = 0x00040000 // WS_EX_APPWINDOW
)

// CompositorAPI is the native surface the Windows backend needs. The real
// implementation lives in native_windows.go.
type CompositorAPI interface {
	SetWindowAttribute(h Handle, attr WindowAttribute, value int32) error
	GetExtendedStyle(h Handle) uintptr
	// SetExtendedStyle writes the style mask and returns the previous value.
	// Like SetWindowLongPtrW it has no failure signal.
	SetExtendedStyle(h Handle, style uintptr) uintptr
}

// CompositorBackend implements Backend on the Windows compositor attribute
// and extended-style model.
type CompositorBackend struct {
	api CompositorAPI
}

var _ Backend = (*CompositorBackend)(nil)

// NewCompositorBackend creates a Windows-model backend over api.
func NewCompositorBackend(api CompositorAPI) *CompositorBackend {
	return &CompositorBackend{api: api}
}

func (b *CompositorBackend) Name() string {
	return "windows"
}

func (b *CompositorBackend) Capabilities() Capabilities {
	return Capabilities{CaptureProtection: true, TaskbarVisibility: true}
}

// SetCaptureProtection sets DWMWA_EXCLUDED_FROM_PEEK, then tries DWMWA_CLOAK.
// Only the first call can fail the operation; cloaking is unavailable on
// some Windows versions and its error is dropped.
func (b *CompositorBackend) SetCaptureProtection(h Handle, enabled bool) error {
	value := int32(0)
	action := "include in"
	if enabled {
		value = 1
		action = "exclude from"
	}

	if err := b.api.SetWindowAttribute(h, AttrExcludedFromPeek, value); err != nil {
		return fmt.Errorf("failed to %s capture: %w", action, err)
	}

	_ = b.api.SetWindowAttribute(h, AttrCloak, value)
	return nil
}

// SetTaskbarVisibility swaps WS_EX_APPWINDOW and WS_EX_TOOLWINDOW in a single
// read-modify-write of the extended style, leaving other bits alone.
// SetWindowLongPtrW cannot report failure, so neither can this.
func (b *CompositorBackend) SetTaskbarVisibility(h Handle, visible bool) error {
	b.api.SetExtendedStyle(h, taskbarStyle(b.api.GetExtendedStyle(h), visible))
	return nil
}

func taskbarStyle(style uintptr, visible bool) uintptr {
	if visible {
		return (style | StyleAppWindow) &^ StyleToolWindow
	}
	return (style | StyleToolWindow) &^ StyleAppWindow
}
