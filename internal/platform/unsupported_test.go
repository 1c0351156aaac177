package platform

import (
	"errors"
	"strings"
	"testing"
)

func TestUnsupportedBackend(t *testing.T) {
	var b Backend = UnsupportedBackend{}

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{"capture on", func() error { return b.SetCaptureProtection(testHandle, true) }, "Screen capture protection is not supported on this platform"},
		{"capture off", func() error { return b.SetCaptureProtection(testHandle, false) }, "Screen capture protection is not supported on this platform"},
		{"taskbar show", func() error { return b.SetTaskbarVisibility(testHandle, true) }, "Taskbar visibility control is not supported on this platform"},
		{"taskbar hide", func() error { return b.SetTaskbarVisibility(testHandle, false) }, "Taskbar visibility control is not supported on this platform"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err, tt.want)
			}
			if !strings.Contains(err.Error(), "not supported") {
				t.Errorf("error %q does not mention lack of support", err)
			}
			if !errors.Is(err, ErrUnsupported) {
				t.Error("expected errors.Is(err, ErrUnsupported)")
			}
		})
	}

	if caps := b.Capabilities(); caps.CaptureProtection || caps.TaskbarVisibility {
		t.Errorf("unsupported backend reports capabilities %+v", caps)
	}
}
