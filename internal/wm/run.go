package wm

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/gridwm/internal/config"
	"github.com/yourusername/gridwm/internal/events"
	"github.com/yourusername/gridwm/internal/logging"
	"github.com/yourusername/gridwm/internal/models"
	"github.com/yourusername/gridwm/internal/state"
	"github.com/yourusername/gridwm/internal/sysinfo"
)

const (
	// SystemRefreshInterval is how often host details in the status file
	// are refreshed.
	SystemRefreshInterval = 30 * time.Second

	systemTimeout = 2 * time.Second
)

// ServerEventTypes are the event types Run expects from a subscription.
var ServerEventTypes = []string{
	models.EventWindowCreated,
	models.EventWindowDestroyed,
	models.EventWindowFocused,
	models.EventDisplayAdded,
	models.EventDisplayRemoved,
	models.EventHotkey,
}

// Sources are the channels Run reads besides its poll ticker. Either may be
// nil.
type Sources struct {
	Server  <-chan *models.Event
	Configs <-chan *config.Config
}

// Run polls the server and reacts to server events and config reloads until
// ctx is cancelled.
func (m *Manager) Run(ctx context.Context, src Sources) error {
	poll := time.NewTicker(m.interval)
	defer poll.Stop()
	system := time.NewTicker(SystemRefreshInterval)
	defer system.Stop()

	m.refreshSystem(ctx)
	m.writeStatus()

	logging.Info().Dur("poll_interval", m.interval).Msg("window manager running")
	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("window manager stopping")
			return nil

		case <-poll.C:
			m.poll(ctx)

		case ev, ok := <-src.Server:
			if !ok {
				logging.Warn().Msg("server event stream closed, polling only")
				src.Server = nil
				continue
			}
			m.serverEvent(ctx, ev)

		case cfg, ok := <-src.Configs:
			if !ok {
				src.Configs = nil
				continue
			}
			if err := m.ApplyConfig(ctx, cfg); err != nil {
				logging.Error().Err(err).Msg("failed to apply config")
				continue
			}
			poll.Reset(m.interval)

		case <-system.C:
			m.refreshSystem(ctx)
			m.writeStatus()
		}
	}
}

func (m *Manager) poll(ctx context.Context) {
	if err := m.Poll(ctx); err != nil {
		logging.Warn().Err(err).Msg("poll failed")
	}
}

// serverEvent handles a pushed event. Hotkeys run their command first.
// Every event is followed by a poll since the window list may have changed.
func (m *Manager) serverEvent(ctx context.Context, ev *models.Event) {
	if ev.EventType == models.EventHotkey {
		chord := ev.Text("chord")
		if cmd, ok := m.keymap.Lookup(chord); ok {
			m.HandleEvent(ctx, events.KeyCommand{Command: cmd})
			m.writeStatus()
		} else {
			logging.Debug().Str("chord", chord).Msg("unbound hotkey")
		}
	}
	m.poll(ctx)
}

// ApplyConfig switches to cfg: new layout settings re-tile every
// workspace, and the key bindings are registered again.
func (m *Manager) ApplyConfig(ctx context.Context, cfg *config.Config) error {
	km, err := cfg.Keymap()
	if err != nil {
		return fmt.Errorf("invalid keybindings: %w", err)
	}

	m.keymap = km
	m.poller.SetIgnore(cfg.IsIgnored)
	if path := cfg.StatusPath(); path != m.statusPath {
		if m.statusPath != "" {
			if err := state.Remove(m.statusPath); err != nil {
				logging.Warn().Err(err).Str("path", m.statusPath).Msg("failed to remove old status file")
			}
		}
		m.statusPath = path
	}
	if cfg.Settings.PollInterval.Duration > 0 {
		m.interval = cfg.Settings.PollInterval.Duration
	}

	if err := m.displays.Reconfigure(cfg.DisplayConfig()); err != nil {
		logging.Warn().Err(err).Msg("re-tile after config change failed")
	}
	if err := m.registerHotkeys(ctx); err != nil {
		logging.Warn().Err(err).Msg("failed to register hotkeys")
	}

	logging.Info().
		Float64("padding", cfg.Settings.WindowPadding).
		Int("bindings", len(km)).
		Msg("config applied")
	m.writeStatus()
	return nil
}

func (m *Manager) refreshSystem(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, systemTimeout)
	defer cancel()

	info, err := sysinfo.Collect(ctx)
	if err != nil {
		logging.Debug().Err(err).Msg("failed to collect system info")
	}
	if info != nil {
		m.system = info
	}
}
