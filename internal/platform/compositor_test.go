package platform

import (
	"errors"
	"strings"
	"testing"
)

type attrCall struct {
	attr  WindowAttribute
	value int32
}

// fakeCompositor records every native call and keeps per-window state so
// tests can observe the effect of repeated calls.
type fakeCompositor struct {
	attrCalls  []attrCall
	attrs      map[WindowAttribute]int32
	attrErrs   map[WindowAttribute]error
	style      uintptr
	styleReads int
	writes     []uintptr
}

func newFakeCompositor(style uintptr) *fakeCompositor {
	return &fakeCompositor{
		attrs:    make(map[WindowAttribute]int32),
		attrErrs: make(map[WindowAttribute]error),
		style:    style,
	}
}

func (f *fakeCompositor) SetWindowAttribute(_ Handle, attr WindowAttribute, value int32) error {
	f.attrCalls = append(f.attrCalls, attrCall{attr: attr, value: value})
	if err := f.attrErrs[attr]; err != nil {
		return err
	}
	f.attrs[attr] = value
	return nil
}

func (f *fakeCompositor) GetExtendedStyle(Handle) uintptr {
	f.styleReads++
	return f.style
}

func (f *fakeCompositor) SetExtendedStyle(_ Handle, style uintptr) uintptr {
	prev := f.style
	f.style = style
	f.writes = append(f.writes, style)
	return prev
}

var testHandle = NewHandle(0x1a2b)

func TestCompositorCaptureProtection_CallOrder(t *testing.T) {
	tests := []struct {
		enabled bool
		want    int32
	}{
		{true, 1},
		{false, 0},
	}
	for _, tt := range tests {
		api := newFakeCompositor(0)
		b := NewCompositorBackend(api)
		if err := b.SetCaptureProtection(testHandle, tt.enabled); err != nil {
			t.Fatalf("SetCaptureProtection(%v) error: %v", tt.enabled, err)
		}
		want := []attrCall{
			{AttrExcludedFromPeek, tt.want},
			{AttrCloak, tt.want},
		}
		if len(api.attrCalls) != len(want) {
			t.Fatalf("enabled=%v: got %d calls, want %d", tt.enabled, len(api.attrCalls), len(want))
		}
		for i := range want {
			if api.attrCalls[i] != want[i] {
				t.Errorf("enabled=%v: call %d = %+v, want %+v", tt.enabled, i, api.attrCalls[i], want[i])
			}
		}
	}
}

func TestCompositorCaptureProtection_CloakFailureIgnored(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		api := newFakeCompositor(0)
		api.attrErrs[AttrCloak] = errors.New("unsupported attribute")
		b := NewCompositorBackend(api)

		if err := b.SetCaptureProtection(testHandle, enabled); err != nil {
			t.Fatalf("enabled=%v: expected cloak failure to be ignored, got %v", enabled, err)
		}
		if len(api.attrCalls) != 2 {
			t.Fatalf("enabled=%v: expected both attributes attempted, got %d calls", enabled, len(api.attrCalls))
		}
	}
}

func TestCompositorCaptureProtection_PeekFailurePropagates(t *testing.T) {
	tests := []struct {
		enabled bool
		prefix  string
	}{
		{true, "failed to exclude from capture: "},
		{false, "failed to include in capture: "},
	}
	for _, tt := range tests {
		api := newFakeCompositor(0)
		osErr := errors.New("X")
		api.attrErrs[AttrExcludedFromPeek] = osErr
		b := NewCompositorBackend(api)

		err := b.SetCaptureProtection(testHandle, tt.enabled)
		if err == nil {
			t.Fatalf("enabled=%v: expected error", tt.enabled)
		}
		if !strings.Contains(err.Error(), "X") {
			t.Errorf("enabled=%v: error %q does not carry the OS text", tt.enabled, err)
		}
		if !strings.HasPrefix(err.Error(), tt.prefix) {
			t.Errorf("enabled=%v: error %q, want prefix %q", tt.enabled, err, tt.prefix)
		}
		if !errors.Is(err, osErr) {
			t.Errorf("enabled=%v: error does not wrap the native error", tt.enabled)
		}
		for _, c := range api.attrCalls {
			if c.attr == AttrCloak {
				t.Errorf("enabled=%v: cloak attempted after load-bearing failure", tt.enabled)
			}
		}
	}
}

func TestCompositorCaptureProtection_Idempotent(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		once := newFakeCompositor(0)
		if err := NewCompositorBackend(once).SetCaptureProtection(testHandle, enabled); err != nil {
			t.Fatal(err)
		}

		twice := newFakeCompositor(0)
		b := NewCompositorBackend(twice)
		for i := 0; i < 2; i++ {
			if err := b.SetCaptureProtection(testHandle, enabled); err != nil {
				t.Fatal(err)
			}
		}

		for _, attr := range []WindowAttribute{AttrExcludedFromPeek, AttrCloak} {
			if once.attrs[attr] != twice.attrs[attr] {
				t.Errorf("enabled=%v attr=%d: once=%d twice=%d", enabled, attr, once.attrs[attr], twice.attrs[attr])
			}
		}
	}
}

func TestCompositorTaskbarVisibility_SwapsBothBits(t *testing.T) {
	const other uintptr = 0x00000008 | 0x00000100 // WS_EX_TOPMOST | WS_EX_WINDOWEDGE

	tests := []struct {
		name    string
		start   uintptr
		visible bool
		want    uintptr
	}{
		{"show from tool window", other | StyleToolWindow, true, other | StyleAppWindow},
		{"hide from app window", other | StyleAppWindow, false, other | StyleToolWindow},
		{"show from neither", other, true, other | StyleAppWindow},
		{"hide from neither", other, false, other | StyleToolWindow},
		{"show from both", other | StyleAppWindow | StyleToolWindow, true, other | StyleAppWindow},
		{"hide from both", other | StyleAppWindow | StyleToolWindow, false, other | StyleToolWindow},
		{"show already shown", other | StyleAppWindow, true, other | StyleAppWindow},
		{"hide already hidden", other | StyleToolWindow, false, other | StyleToolWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeCompositor(tt.start)
			b := NewCompositorBackend(api)
			if err := b.SetTaskbarVisibility(testHandle, tt.visible); err != nil {
				t.Fatalf("SetTaskbarVisibility error: %v", err)
			}
			if api.styleReads != 1 {
				t.Errorf("style reads = %d, want 1", api.styleReads)
			}
			if len(api.writes) != 1 {
				t.Fatalf("style writes = %d, want exactly 1", len(api.writes))
			}
			got := api.writes[0]
			if got != tt.want {
				t.Errorf("style = %#x, want %#x", got, tt.want)
			}
			hasApp := got&StyleAppWindow != 0
			hasTool := got&StyleToolWindow != 0
			if hasApp == hasTool {
				t.Errorf("style %#x leaves app/tool bits inconsistent", got)
			}
		})
	}
}

func TestCompositorTaskbarVisibility_Idempotent(t *testing.T) {
	for _, visible := range []bool{true, false} {
		api := newFakeCompositor(0x100 | StyleAppWindow)
		b := NewCompositorBackend(api)
		_ = b.SetTaskbarVisibility(testHandle, visible)
		first := api.style
		_ = b.SetTaskbarVisibility(testHandle, visible)
		if api.style != first {
			t.Errorf("visible=%v: style changed on repeat: %#x -> %#x", visible, first, api.style)
		}
	}
}
