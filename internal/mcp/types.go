package mcp

import "github.com/1broseidon/winveil/internal/platform"

// SetCaptureProtectionInput is the input for the set_screen_capture_protection tool.
type SetCaptureProtectionInput struct {
	Window  string `json:"window" jsonschema:"required,Window reference: a native handle (0x1a2b or handle:0x1a2b), number:<macOS window number> or title:<exact window title>"`
	Enabled bool   `json:"enabled" jsonschema:"true to exclude the window from screen capture, false to allow capture again"`
}

// SetTaskbarVisibilityInput is the input for the set_taskbar_visibility tool.
type SetTaskbarVisibilityInput struct {
	Window  string `json:"window" jsonschema:"required,Window reference: a native handle (0x1a2b or handle:0x1a2b), number:<macOS window number> or title:<exact window title>"`
	Visible bool   `json:"visible" jsonschema:"true to show the window in the taskbar or dock, false to hide it"`
}

// ToggleOutput is the output of both toggle tools.
type ToggleOutput struct {
	Window   string `json:"window"`
	Platform string `json:"platform"`
	State    bool   `json:"state"`
	// AppWide is set when the toggle affected the whole application.
	AppWide bool `json:"app_wide,omitempty"`
}

// GetCapabilitiesInput is the (empty) input for the get_capabilities tool.
type GetCapabilitiesInput struct{}

// GetCapabilitiesOutput is the output for the get_capabilities tool.
type GetCapabilitiesOutput struct {
	Platform     string                `json:"platform"`
	Capabilities platform.Capabilities `json:"capabilities"`
}
