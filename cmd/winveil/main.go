package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/1broseidon/winveil/internal/actionlog"
	"github.com/1broseidon/winveil/internal/commands"
	"github.com/1broseidon/winveil/internal/config"
	"github.com/1broseidon/winveil/internal/ipc"
	"github.com/1broseidon/winveil/internal/platform"
	"github.com/1broseidon/winveil/internal/runtimepath"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(platform.RunApp(func() int { return runDaemon(os.Args[2:]) }))
	case "capture":
		os.Exit(platform.RunApp(func() int { return runCapture(os.Args[2:]) }))
	case "taskbar":
		os.Exit(platform.RunApp(func() int { return runTaskbar(os.Args[2:]) }))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(platform.RunApp(func() int { return runMCP(os.Args[2:]) }))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winveil <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the winveil daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status and platform capabilities")
	fmt.Fprintln(w, "  reload              Ask the daemon to reload its config")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  capture on|off      Exclude a window from / include it in screen capture")
	fmt.Fprintln(w, "  taskbar show|hide   Show or hide a window in the taskbar (dock on macOS)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Window references: 0x1a2b, handle:<n>, number:<n> (macOS), title:<exact title>")
	fmt.Fprintln(w, "Run 'winveil <command> --help' for command-specific options.")
}

func newLogger(level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// newDispatcher builds the in-process dispatcher for this platform. The
// returned close func releases the action log.
func newDispatcher(cfg *config.Config, logger *slog.Logger) (*commands.Dispatcher, func(), error) {
	alCfg := cfg.GetActionLogConfig()
	actions, err := actionlog.New(actionlog.Config{
		Enabled:    alCfg.Enabled,
		FilePath:   alCfg.File,
		MaxSizeMB:  alCfg.MaxSizeMB,
		MaxBackups: alCfg.MaxBackups,
		MaxAgeDays: alCfg.MaxAgeDays,
		Compress:   alCfg.Compress,
	})
	if err != nil {
		return nil, nil, err
	}

	d := commands.NewDispatcher(
		platform.NewBackend(),
		platform.NewResolver(),
		commands.WithActionLog(actions),
		commands.WithLogger(logger),
	)
	return d, func() { actions.Close() }, nil
}

func newClient(cfg *config.Config) (*ipc.Client, error) {
	socket, err := runtimepath.SocketPath(cfg.IPC.Socket)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return ipc.NewClient(socket, time.Duration(cfg.IPC.TimeoutSeconds)*time.Second), nil
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON (default when stdout is not a terminal)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winveil status [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	client, err := newClient(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	fmt.Printf("daemon_running:      %v\n", status.DaemonRunning)
	fmt.Printf("platform:            %s\n", status.Platform)
	fmt.Printf("capture_protection:  %v\n", status.Capabilities.CaptureProtection)
	fmt.Printf("taskbar_visibility:  %v\n", status.Capabilities.TaskbarVisibility)
	if status.Capabilities.AppWideVisibility {
		fmt.Println("                     (application-wide: hiding one window hides the whole app from the dock)")
	}
	fmt.Printf("uptime_seconds:      %d\n", status.UptimeSeconds)
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winveil reload")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	client, err := newClient(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  winveil config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  winveil config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/winveil/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if _, err := loadConfigAt(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/winveil/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfigAt(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			if res.File != "" {
				fmt.Printf("# source: %s\n", res.File)
			}
			cfg = res.Config
		}
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}

func loadConfigAt(path string) (*config.LoadResult, error) {
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	return config.LoadFromPath(path)
}
