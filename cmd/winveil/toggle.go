package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/1broseidon/winveil/internal/config"
)

// toggleCommand describes one on/off subcommand.
type toggleCommand struct {
	name    string
	onWord  string
	offWord string
	summary string
	// local applies the toggle in-process, remote through the daemon.
	local  func(cfg *config.Config, window string, on bool) error
	remote func(cfg *config.Config, window string, on bool) error
}

func runCapture(args []string) int {
	return runToggle(args, toggleCommand{
		name:    "capture",
		onWord:  "on",
		offWord: "off",
		summary: "Exclude a window from screen capture (on) or allow capture again (off).",
		local: func(cfg *config.Config, window string, on bool) error {
			return withLocalDispatcher(cfg, func(d dispatcher) error {
				return d.SetScreenCaptureProtection(window, on)
			})
		},
		remote: func(cfg *config.Config, window string, on bool) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			return client.SetScreenCaptureProtection(window, on)
		},
	})
}

func runTaskbar(args []string) int {
	return runToggle(args, toggleCommand{
		name:    "taskbar",
		onWord:  "show",
		offWord: "hide",
		summary: "Show or hide a window in the taskbar. On macOS this sets the dock presence of the whole application.",
		local: func(cfg *config.Config, window string, on bool) error {
			return withLocalDispatcher(cfg, func(d dispatcher) error {
				return d.SetTaskbarVisibility(window, on)
			})
		},
		remote: func(cfg *config.Config, window string, on bool) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			return client.SetTaskbarVisibility(window, on)
		},
	})
}

func runToggle(args []string, cmd toggleCommand) int {
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	window := fs.String("window", "", "Window reference (0x1a2b, handle:<n>, number:<n>, title:<text>)")
	local := fs.Bool("local", false, "Apply in this process instead of through the daemon")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: winveil %s --window REF [--local] <%s|%s>\n", cmd.name, cmd.onWord, cmd.offWord)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, cmd.summary)
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(flagsFirst(fs, args)); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s requires exactly one of: %s, %s\n", cmd.name, cmd.onWord, cmd.offWord)
		fs.Usage()
		return 2
	}
	on, err := parseSwitch(fs.Arg(0), cmd.onWord, cmd.offWord)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if strings.TrimSpace(*window) == "" {
		fmt.Fprintln(os.Stderr, "--window is required")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	apply := cmd.remote
	if *local {
		apply = cmd.local
	}
	if err := apply(cfg, *window, on); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// flagsFirst moves positionals behind the flags so the state word may sit
// anywhere: "capture --local on --window X" parses like
// "capture --local --window X on". Value flags keep their argument.
func flagsFirst(fs *flag.FlagSet, args []string) []string {
	var flags, positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			positionals = append(positionals, arg)
			continue
		}
		flags = append(flags, arg)
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if f := fs.Lookup(name); f != nil && !isBoolFlag(f) && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	return append(flags, positionals...)
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// parseSwitch maps the subcommand word (plus the generic on/off, true/false
// spellings) to a boolean.
func parseSwitch(word, onWord, offWord string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(word)) {
	case onWord, "on", "true", "enable", "1":
		return true, nil
	case offWord, "off", "false", "disable", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid state %q (want %s or %s)", word, onWord, offWord)
	}
}

type dispatcher interface {
	SetScreenCaptureProtection(window string, enabled bool) error
	SetTaskbarVisibility(window string, visible bool) error
}

func withLocalDispatcher(cfg *config.Config, fn func(dispatcher) error) error {
	logger := newLogger(cfg.SlogLevel())
	d, closeFn, err := newDispatcher(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	logger.Debug("applying in-process", slog.String("platform", d.Backend().Name()))
	return fn(d)
}
