package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/1broseidon/winveil/internal/actionlog"
	"github.com/1broseidon/winveil/internal/platform"
)

// Command names accepted by Invoke.
const (
	SetScreenCaptureProtection = "set_screen_capture_protection"
	SetTaskbarVisibility       = "set_taskbar_visibility"
)

// CaptureArgs are the arguments of set_screen_capture_protection.
type CaptureArgs struct {
	Window  string `json:"window"`
	Enabled bool   `json:"enabled"`
}

// TaskbarArgs are the arguments of set_taskbar_visibility.
type TaskbarArgs struct {
	Window  string `json:"window"`
	Visible bool   `json:"visible"`
}

// Result is the textual outcome handed back to the host shell.
type Result struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func resultOf(err error) Result {
	if err != nil {
		return Result{Error: err.Error()}
	}
	return Result{OK: true}
}

// Dispatcher resolves window references and forwards toggles to the
// platform backend. Calls are serialized: the backends do no locking.
type Dispatcher struct {
	backend  platform.Backend
	resolver platform.Resolver
	actions  *actionlog.Logger
	logger   *slog.Logger

	mu sync.Mutex
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithActionLog records every toggle in l.
func WithActionLog(l *actionlog.Logger) Option {
	return func(d *Dispatcher) { d.actions = l }
}

// WithLogger sets the operational logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher creates a dispatcher over backend and resolver.
func NewDispatcher(backend platform.Backend, resolver platform.Resolver, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		backend:  backend,
		resolver: resolver,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Backend returns the platform backend in use.
func (d *Dispatcher) Backend() platform.Backend {
	return d.backend
}

// SetScreenCaptureProtection excludes the referenced window from screen
// capture when enabled is true and includes it otherwise.
func (d *Dispatcher) SetScreenCaptureProtection(window string, enabled bool) error {
	supported := d.backend.Capabilities().CaptureProtection
	return d.apply(actionlog.CaptureAction(enabled), window, supported, func(h platform.Handle) error {
		return d.backend.SetCaptureProtection(h, enabled)
	})
}

// SetTaskbarVisibility shows or hides the referenced window in the taskbar.
// On macOS this changes the dock presence of the whole application.
func (d *Dispatcher) SetTaskbarVisibility(window string, visible bool) error {
	supported := d.backend.Capabilities().TaskbarVisibility
	return d.apply(actionlog.TaskbarAction(visible), window, supported, func(h platform.Handle) error {
		return d.backend.SetTaskbarVisibility(h, visible)
	})
}

func (d *Dispatcher) apply(action actionlog.ActionType, window string, supported bool, fn func(platform.Handle) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Unsupported features fail before the reference is even looked at.
	if !supported {
		err := fn(platform.Handle{})
		d.actions.Log(action, "", err, map[string]interface{}{"backend": d.backend.Name()})
		return err
	}

	h, err := d.resolve(window)
	if err != nil {
		d.logger.Warn("window resolution failed", "action", action, "window", window, "error", err)
		d.actions.Log(action, "", err, map[string]interface{}{"ref": window})
		return err
	}

	err = fn(h)
	if err != nil {
		d.logger.Warn("window toggle failed", "action", action, "handle", h.String(), "error", err)
	} else {
		d.logger.Debug("window toggle applied", "action", action, "handle", h.String())
	}
	d.actions.Log(action, h.String(), err, map[string]interface{}{
		"backend": d.backend.Name(),
		"ref":     window,
	})
	return err
}

// resolve turns a window reference into a native handle.
func (d *Dispatcher) resolve(window string) (platform.Handle, error) {
	ref, err := platform.ParseRef(window)
	if err != nil {
		return platform.Handle{}, err
	}
	return d.resolver.Resolve(ref)
}

// Invoke runs a named command with JSON arguments and returns its textual
// result. It is the generic entry point used by the IPC and MCP surfaces.
func (d *Dispatcher) Invoke(name string, args json.RawMessage) Result {
	switch name {
	case SetScreenCaptureProtection:
		var a CaptureArgs
		if err := decodeArgs(args, &a); err != nil {
			return resultOf(err)
		}
		return resultOf(d.SetScreenCaptureProtection(a.Window, a.Enabled))
	case SetTaskbarVisibility:
		var a TaskbarArgs
		if err := decodeArgs(args, &a); err != nil {
			return resultOf(err)
		}
		return resultOf(d.SetTaskbarVisibility(a.Window, a.Visible))
	default:
		return resultOf(fmt.Errorf("unknown command: %s", name))
	}
}

func decodeArgs(args json.RawMessage, out interface{}) error {
	if len(args) == 0 {
		return fmt.Errorf("missing arguments")
	}
	if err := json.Unmarshal(args, out); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
