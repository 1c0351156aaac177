package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/1broseidon/winveil/internal/config"
	"github.com/1broseidon/winveil/internal/ipc"
	"github.com/1broseidon/winveil/internal/runtimepath"
)

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	watch := fs.Bool("watch", true, "Reload config when the file changes")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winveil daemon [--watch=false]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Serve window toggles over the IPC socket. On macOS, window handles")
		fmt.Fprintln(os.Stderr, "and dock presence belong to the calling process, so the daemon only")
		fmt.Fprintln(os.Stderr, "controls its own windows there.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	configPath, err := config.DefaultConfigPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	res, err := config.LoadFromPath(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	cfg := res.Config

	level := new(slog.LevelVar)
	level.Set(cfg.SlogLevel())
	logger := newLogger(level)

	d, closeActions, err := newDispatcher(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize action log", "error", err)
		return 1
	}
	defer closeActions()

	socket, err := runtimepath.SocketPath(cfg.IPC.Socket)
	if err != nil {
		logger.Error("failed to resolve IPC socket path", "error", err)
		return 1
	}

	// Only the log level is live-reloadable; socket and action log changes
	// need a restart.
	var reloadMu sync.Mutex
	applyConfig := func(next *config.Config) {
		reloadMu.Lock()
		defer reloadMu.Unlock()
		level.Set(next.SlogLevel())
		if next.IPC.Socket != cfg.IPC.Socket || next.ActionLog != cfg.ActionLog {
			logger.Warn("socket or action_log changed; restart the daemon to apply")
		}
		logger.Info("configuration reloaded", "log_level", next.LogLevel)
	}
	reload := func() error {
		next, err := config.LoadFromPath(configPath)
		if err != nil {
			return err
		}
		applyConfig(next.Config)
		return nil
	}

	server := ipc.NewServer(socket, d, reload, logger)
	if err := server.Start(); err != nil {
		logger.Error("failed to start IPC server", "error", err)
		return 1
	}
	defer server.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *watch {
		go func() {
			err := config.Watch(ctx, configPath, func(next *config.Config, err error) {
				if err != nil {
					logger.Warn("config reload failed", "error", err)
					return
				}
				applyConfig(next)
			})
			if err != nil {
				logger.Warn("config watcher stopped", "error", err)
			}
		}()
	}

	backend := d.Backend()
	logger.Info("winveil daemon started",
		"platform", backend.Name(),
		"capture_protection", backend.Capabilities().CaptureProtection,
		"taskbar_visibility", backend.Capabilities().TaskbarVisibility,
	)

	<-ctx.Done()
	logger.Info("shutting down")
	return 0
}
