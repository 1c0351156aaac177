//go:build darwin && cgo

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit
#include <stdint.h>
#include <stdlib.h>
#import <AppKit/AppKit.h>

static int appReady(void) {
	return NSApp != nil;
}

static int onMainThread(void) {
	return [NSThread isMainThread];
}

// AppKit must be driven from the main thread. Off the main thread this needs
// a running main loop, see RunApp.
static void onMain(void (^block)(void)) {
	if ([NSThread isMainThread]) {
		block();
	} else {
		dispatch_sync(dispatch_get_main_queue(), block);
	}
}

static void setSharingType(uintptr_t window, long sharing) {
	onMain(^{
		[(NSWindow *)(void *)window setSharingType:(NSWindowSharingType)sharing];
	});
}

static void setActivationPolicy(long policy) {
	onMain(^{
		[NSApp setActivationPolicy:(NSApplicationActivationPolicy)policy];
	});
}

// ownsWindow compares addresses only; window is never messaged.
static int ownsWindow(uintptr_t window) {
	__block int found = 0;
	onMain(^{
		for (NSWindow *w in [NSApp windows]) {
			if ((uintptr_t)(void *)w == window) {
				found = 1;
				return;
			}
		}
	});
	return found;
}

static uintptr_t windowWithNumber(long number) {
	__block uintptr_t found = 0;
	onMain(^{
		found = (uintptr_t)(void *)[NSApp windowWithWindowNumber:(NSInteger)number];
	});
	return found;
}

static uintptr_t windowWithTitle(const char *title) {
	__block uintptr_t found = 0;
	NSString *want = [NSString stringWithUTF8String:title];
	onMain(^{
		for (NSWindow *w in [NSApp windows]) {
			if ([[w title] isEqualToString:want]) {
				found = (uintptr_t)(void *)w;
				return;
			}
		}
	});
	return found;
}

static void startApp(void) {
	[NSApplication sharedApplication];
}

static void runApp(void) {
	[NSApp run];
}

// stopApp ends runApp. stop: only takes effect after the next event, hence
// the posted dummy event.
static void stopApp(void) {
	dispatch_async(dispatch_get_main_queue(), ^{
		[NSApp stop:nil];
		NSEvent *ev = [NSEvent otherEventWithType:NSEventTypeApplicationDefined
		                                 location:NSZeroPoint
		                            modifierFlags:0
		                                timestamp:0
		                             windowNumber:0
		                                  context:nil
		                                  subtype:0
		                                    data1:0
		                                    data2:0];
		[NSApp postEvent:ev atStart:YES];
	});
}
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"
)

// This file and native_windows.go are the only code that touches raw window
// handles.

// AppKit wants the main thread; keep the main goroutine on it so RunApp can
// host the run loop there.
func init() {
	runtime.LockOSThread()
}

var errNoApp = errors.New("no NSApplication in this process")

// NewBackend returns the Backend for this build.
func NewBackend() Backend {
	return NewCocoaBackend(appKitAPI{})
}

// NewResolver returns the window Resolver for this build. NSWindow pointers
// and window numbers are only meaningful inside the process that owns them.
func NewResolver() Resolver {
	return appKitResolver{}
}

// RunApp runs fn while the main thread services the AppKit run loop, and
// returns fn's result. It must be called from the main goroutine. When an
// NSApplication already exists (winveil embedded in a host app) or the
// caller is not on the main thread, fn runs directly.
func RunApp(fn func() int) int {
	if C.onMainThread() == 0 || C.appReady() != 0 {
		return fn()
	}
	C.startApp()

	code := make(chan int, 1)
	go func() {
		defer C.stopApp()
		code <- fn()
	}()
	C.runApp()
	return <-code
}

type appKitAPI struct{}

func (appKitAPI) SetSharingType(h Handle, sharing SharingType) error {
	if C.appReady() == 0 {
		return errNoApp
	}
	C.setSharingType(C.uintptr_t(h.raw), C.long(sharing))
	return nil
}

func (appKitAPI) SetActivationPolicy(policy ActivationPolicy) error {
	if C.appReady() == 0 {
		return errNoApp
	}
	C.setActivationPolicy(C.long(policy))
	return nil
}

type appKitResolver struct{}

// Resolve only hands out pointers to windows NSApp owns, so a stale or
// foreign address is rejected instead of being messaged.
func (appKitResolver) Resolve(ref Ref) (Handle, error) {
	if C.appReady() == 0 {
		return Handle{}, errNoApp
	}

	switch ref.Kind {
	case RefHandle:
		h := NewHandle(uintptr(ref.Value))
		if C.ownsWindow(C.uintptr_t(h.raw)) == 0 {
			return Handle{}, fmt.Errorf("no window %s in this process", h)
		}
		return h, nil
	case RefNumber:
		w := C.windowWithNumber(C.long(ref.Value))
		if w == 0 {
			return Handle{}, fmt.Errorf("no window with number %d in this process", ref.Value)
		}
		return NewHandle(uintptr(w)), nil
	case RefTitle:
		title := C.CString(ref.Title)
		defer C.free(unsafe.Pointer(title))
		w := C.windowWithTitle(title)
		if w == 0 {
			return Handle{}, fmt.Errorf("no window titled %q in this process", ref.Title)
		}
		return NewHandle(uintptr(w)), nil
	default:
		return Handle{}, fmt.Errorf("window lookup by %s is %w", ref.Kind, ErrUnsupported)
	}
}
