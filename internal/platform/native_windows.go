//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// This file and native_darwin.go are the only code that touches raw window
// handles.

var (
	moddwmapi = windows.NewLazySystemDLL("dwmapi.dll")
	moduser32 = windows.NewLazySystemDLL("user32.dll")

	procDwmSetWindowAttribute = moddwmapi.NewProc("DwmSetWindowAttribute")
	procGetWindowLongPtrW     = moduser32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW     = moduser32.NewProc("SetWindowLongPtrW")
	procGetWindowLongW        = moduser32.NewProc("GetWindowLongW")
	procSetWindowLongW        = moduser32.NewProc("SetWindowLongW")
	procIsWindow              = moduser32.NewProc("IsWindow")
	procFindWindowW           = moduser32.NewProc("FindWindowW")
)

// GWL_EXSTYLE as the int index SetWindowLongPtrW expects.
var gwlExStyle = -20

// NewBackend returns the Backend for this build.
func NewBackend() Backend {
	return NewCompositorBackend(win32API{})
}

// NewResolver returns the window Resolver for this build.
func NewResolver() Resolver {
	return win32Resolver{}
}

// RunApp runs fn and returns its result. Only macOS needs a run loop.
func RunApp(fn func() int) int {
	return fn()
}

// hresultError carries a failed HRESULT with its system message.
type hresultError uint32

func (e hresultError) Error() string {
	return fmt.Sprintf("%s (0x%08X)", windows.Errno(e).Error(), uint32(e))
}

type win32API struct{}

func (win32API) SetWindowAttribute(h Handle, attr WindowAttribute, value int32) error {
	if err := procDwmSetWindowAttribute.Find(); err != nil {
		return err
	}
	hr, _, _ := procDwmSetWindowAttribute.Call(
		h.raw,
		uintptr(attr),
		uintptr(unsafe.Pointer(&value)),
		unsafe.Sizeof(value),
	)
	if int32(hr) < 0 {
		return hresultError(uint32(hr))
	}
	return nil
}

func (win32API) GetExtendedStyle(h Handle) uintptr {
	proc := procGetWindowLongPtrW
	// 32-bit user32 only exports the non-Ptr variant.
	if proc.Find() != nil {
		proc = procGetWindowLongW
	}
	style, _, _ := proc.Call(h.raw, uintptr(gwlExStyle))
	return style
}

func (win32API) SetExtendedStyle(h Handle, style uintptr) uintptr {
	proc := procSetWindowLongPtrW
	if proc.Find() != nil {
		proc = procSetWindowLongW
	}
	prev, _, _ := proc.Call(h.raw, uintptr(gwlExStyle), style)
	return prev
}

type win32Resolver struct{}

func (win32Resolver) Resolve(ref Ref) (Handle, error) {
	switch ref.Kind {
	case RefHandle:
		h := NewHandle(uintptr(ref.Value))
		if ok, _, _ := procIsWindow.Call(h.raw); ok == 0 {
			return Handle{}, fmt.Errorf("window %s does not exist", h)
		}
		return h, nil
	case RefTitle:
		title, err := windows.UTF16PtrFromString(ref.Title)
		if err != nil {
			return Handle{}, fmt.Errorf("invalid window title %q: %w", ref.Title, err)
		}
		hwnd, _, callErr := procFindWindowW.Call(0, uintptr(unsafe.Pointer(title)))
		if hwnd == 0 {
			if callErr != nil && callErr != windows.ERROR_SUCCESS {
				return Handle{}, fmt.Errorf("no window titled %q: %w", ref.Title, callErr)
			}
			return Handle{}, fmt.Errorf("no window titled %q", ref.Title)
		}
		return NewHandle(hwnd), nil
	default:
		return Handle{}, fmt.Errorf("window lookup by %s is %w", ref.Kind, ErrUnsupported)
	}
}
