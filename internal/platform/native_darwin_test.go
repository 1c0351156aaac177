//go:build darwin && cgo

package platform

import (
	"errors"
	"os"
	"testing"
)

// Results of calls made before TestMain starts the application.
var (
	resolveWithoutApp error
	sharingWithoutApp error
	policyWithoutApp  error
)

func TestMain(m *testing.M) {
	_, resolveWithoutApp = appKitResolver{}.Resolve(Ref{Kind: RefHandle, Value: 0xdeadbeef})
	sharingWithoutApp = appKitAPI{}.SetSharingType(NewHandle(0xdeadbeef), SharingNone)
	policyWithoutApp = appKitAPI{}.SetActivationPolicy(PolicyAccessory)

	os.Exit(RunApp(m.Run))
}

func TestAppKit_NoApplication(t *testing.T) {
	for name, err := range map[string]error{
		"resolve": resolveWithoutApp,
		"sharing": sharingWithoutApp,
		"policy":  policyWithoutApp,
	} {
		if !errors.Is(err, errNoApp) {
			t.Errorf("%s without NSApp: error = %v, want %v", name, err, errNoApp)
		}
	}
}

func TestAppKitResolver_RejectsForeignWindows(t *testing.T) {
	r := appKitResolver{}
	tests := []struct {
		ref  Ref
		want string
	}{
		{Ref{Kind: RefHandle, Value: 0xdeadbeef}, "no window 0xdeadbeef in this process"},
		{Ref{Kind: RefNumber, Value: 987654}, "no window with number 987654 in this process"},
		{Ref{Kind: RefTitle, Title: "winveil test: no such window"}, `no window titled "winveil test: no such window" in this process`},
	}
	for _, tt := range tests {
		h, err := r.Resolve(tt.ref)
		if err == nil {
			t.Errorf("Resolve(%+v) = %s, want error", tt.ref, h)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("Resolve(%+v) error = %q, want %q", tt.ref, err, tt.want)
		}
	}
}

func TestAppKit_ActivationPolicyOffMainThread(t *testing.T) {
	// Test functions run off the main thread; this goes through the main
	// queue serviced by RunApp.
	b := NewBackend()
	if err := b.SetTaskbarVisibility(Handle{}, false); err != nil {
		t.Fatalf("SetTaskbarVisibility: %v", err)
	}
}

func TestRunApp_NestedRunsDirectly(t *testing.T) {
	got := RunApp(func() int { return 7 })
	if got != 7 {
		t.Fatalf("RunApp = %d, want 7", got)
	}
}
