package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winveil/internal/commands"
)

const (
	ServerName    = "winveil"
	ServerVersion = "0.1.0"
)

// Server exposes the window toggles as MCP tools.
type Server struct {
	mcpServer  *mcpsdk.Server
	dispatcher *commands.Dispatcher
}

// NewServer creates an MCP server backed by dispatcher.
func NewServer(dispatcher *commands.Dispatcher) *Server {
	s := &Server{dispatcher: dispatcher}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        commands.SetScreenCaptureProtection,
		Description: "Exclude a window from (enabled=true) or include it in (enabled=false) screen capture and screen sharing. The window keeps rendering normally on the physical display. On Windows the load-bearing DWM attribute must succeed; on macOS disabling restores read-only sharing.",
	}, s.handleSetCaptureProtection)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        commands.SetTaskbarVisibility,
		Description: "Show (visible=true) or hide (visible=false) a window in the taskbar. On macOS this switches the activation policy of the whole application, so every window of the app leaves or rejoins the dock together.",
	}, s.handleSetTaskbarVisibility)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_capabilities",
		Description: "Report which window toggles this platform supports.",
	}, s.handleGetCapabilities)
}

func (s *Server) handleSetCaptureProtection(_ context.Context, _ *mcpsdk.CallToolRequest, args SetCaptureProtectionInput) (*mcpsdk.CallToolResult, ToggleOutput, error) {
	if err := s.dispatcher.SetScreenCaptureProtection(args.Window, args.Enabled); err != nil {
		return nil, ToggleOutput{}, err
	}
	return nil, ToggleOutput{
		Window:   args.Window,
		Platform: s.dispatcher.Backend().Name(),
		State:    args.Enabled,
	}, nil
}

func (s *Server) handleSetTaskbarVisibility(_ context.Context, _ *mcpsdk.CallToolRequest, args SetTaskbarVisibilityInput) (*mcpsdk.CallToolResult, ToggleOutput, error) {
	if err := s.dispatcher.SetTaskbarVisibility(args.Window, args.Visible); err != nil {
		return nil, ToggleOutput{}, err
	}
	backend := s.dispatcher.Backend()
	return nil, ToggleOutput{
		Window:   args.Window,
		Platform: backend.Name(),
		State:    args.Visible,
		AppWide:  backend.Capabilities().AppWideVisibility,
	}, nil
}

func (s *Server) handleGetCapabilities(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetCapabilitiesInput) (*mcpsdk.CallToolResult, GetCapabilitiesOutput, error) {
	backend := s.dispatcher.Backend()
	return nil, GetCapabilitiesOutput{
		Platform:     backend.Name(),
		Capabilities: backend.Capabilities(),
	}, nil
}
