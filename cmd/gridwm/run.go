package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/yourusername/gridwm/internal/client"
	"github.com/yourusername/gridwm/internal/config"
	"github.com/yourusername/gridwm/internal/instance"
	"github.com/yourusername/gridwm/internal/logging"
	"github.com/yourusername/gridwm/internal/server"
	"github.com/yourusername/gridwm/internal/state"
	"github.com/yourusername/gridwm/internal/wm"
	"golang.org/x/sys/unix"
)

var (
	logLevel   string
	foreground bool
)

// runCmd starts the window manager
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the window manager",
	Long: `Connects to GridServer, tiles every open window and keeps tiling until
interrupted. Only one manager may run per user.

The config file is watched; saved changes to padding, bar heights, bindings,
ignored apps and the poll interval apply without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		opts := logging.Options{
			Path:       cfg.LogPath(),
			Level:      cfg.Logging.Level,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		}
		if logLevel != "" {
			opts.Level = logLevel
		}
		if foreground {
			opts.Console = os.Stderr
		}
		if err := logging.Init(opts); err != nil {
			return err
		}
		defer logging.Close()

		dir := stateDir()
		lock, err := instance.Lock(dir)
		if err != nil {
			if errors.Is(err, instance.ErrAlreadyRunning) {
				if pid, running, _ := instance.Running(dir); running && pid > 0 {
					return fmt.Errorf("%w (pid %d)", err, pid)
				}
			}
			return err
		}
		defer instance.Cleanup(dir, lock)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, unix.SIGTERM)
		defer stop()

		return runManager(ctx, cfg)
	},
}

func runManager(ctx context.Context, cfg *config.Config) error {
	keymap, err := cfg.Keymap()
	if err != nil {
		return fmt.Errorf("invalid keybindings: %w", err)
	}

	c := client.NewClient(cfg.Settings.SocketPath, timeout)
	defer c.Close()

	bridge := server.NewBridge(ctx, c, server.DefaultCallTimeout)
	launcher := wm.CommandLauncher{Command: cfg.Settings.TerminalCommand}

	mgr := wm.New(wm.BridgePorts(bridge, launcher), wm.Options{
		Display:      cfg.DisplayConfig(),
		Keymap:       keymap,
		Ignore:       cfg.IsIgnored,
		StatusPath:   cfg.StatusPath(),
		PollInterval: cfg.Settings.PollInterval.Duration,
	})
	defer func() {
		path := mgr.StatusPath()
		if path == "" {
			return
		}
		if err := state.Remove(path); err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("failed to remove status file")
		}
	}()

	if err := mgr.Bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	src := wm.Sources{}
	if sub, err := c.Subscribe(ctx, wm.ServerEventTypes); err != nil {
		logging.Warn().Err(err).Msg("event subscription unavailable, polling only")
	} else {
		defer sub.Close()
		src.Server = sub.Events()
	}
	src.Configs = watchConfig(ctx)

	if !foreground {
		infoColor.Printf("gridwm running, %d windows managed\n", mgr.Status().WindowCount())
	}
	return mgr.Run(ctx, src)
}

// watchConfig starts a reload watcher on the config file, or returns nil if
// the file's directory cannot be watched.
func watchConfig(ctx context.Context) <-chan *config.Config {
	path := configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	path = config.ExpandPath(path)

	w, err := config.NewWatcher(path, config.DefaultDebounce)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("config reload disabled")
		return nil
	}

	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("config watcher stopped")
		}
	}()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case err := <-w.Errors():
				logging.Error().Err(err).Str("path", path).Msg("config reload rejected")
			}
		}
	}()

	logging.Debug().Str("path", path).Msg("watching config")
	return w.Updates()
}
