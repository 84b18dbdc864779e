package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yourusername/gridwm/internal/instance"
	"github.com/yourusername/gridwm/internal/output"
	"github.com/yourusername/gridwm/internal/state"
	"github.com/yourusername/gridwm/internal/types"
	"golang.org/x/sys/unix"
)

var statusTables bool

// statusCmd summarises the running manager
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the manager is running and what it manages",
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, running, err := instance.Running(stateDir())
		if err != nil {
			return err
		}
		s, path, err := loadStatus()
		if err != nil {
			return err
		}

		if jsonOutput {
			summary := s.Summary()
			summary["running"] = running
			summary["pid"] = pid
			summary["path"] = path
			return printJSON(summary)
		}

		keyColor.Print("Manager: ")
		if running {
			successColor.Printf("running (pid %d)\n", pid)
		} else {
			errorColor.Println("not running")
		}
		keyColor.Print("Status file: ")
		fmt.Println(path)
		if !s.UpdatedAt.IsZero() {
			keyColor.Print("Updated: ")
			fmt.Println(s.UpdatedAt.Format(time.RFC3339))
		}
		if len(s.Displays) == 0 {
			return nil
		}

		keyColor.Print("Active: ")
		fmt.Printf("display %d, workspace %d", s.ActiveDisplay, s.ActiveLogical)
		if s.Focused != 0 {
			fmt.Printf(", window %d", s.Focused)
		}
		fmt.Println()
		if s.System != nil {
			keyColor.Print("Host: ")
			fmt.Printf("%s, up %s\n", s.System.Hostname, s.System.Uptime.Truncate(time.Minute))
		}
		fmt.Println()

		if err := output.PrintDisplaysTable(os.Stdout, s); err != nil {
			return err
		}
		if statusTables {
			fmt.Println()
			if err := output.PrintWorkspacesTable(os.Stdout, s); err != nil {
				return err
			}
			fmt.Println()
			if err := output.PrintWindowsTable(os.Stdout, s); err != nil {
				return err
			}
		}
		fmt.Printf("\nTotal: %d windows\n", s.WindowCount())
		return nil
	},
}

// Visualization flags
var (
	showASCII   bool
	showUnicode bool
	showNoIDs   bool
	showWidth   int
	showHeight  int
)

// showCmd draws the visible workspace of every monitor
var showCmd = &cobra.Command{
	Use:   "show [display-id]",
	Short: "Visualize the tiled layout",
	Long: `Draws each monitor's visible workspace as ASCII/Unicode boxes, one per
window, labelled with the window id, application and size. The focused window
is drawn with a heavier border.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := loadStatus()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			var id uint32
			if _, err := fmt.Sscan(args[0], &id); err != nil {
				return fmt.Errorf("invalid display id: %v", err)
			}
			ds, ok := s.Display(types.PhysicalDisplayID(id))
			if !ok {
				return fmt.Errorf("display %d not found", id)
			}
			filtered := *s
			filtered.Displays = []state.DisplayStatus{ds}
			s = &filtered
		}

		if jsonOutput {
			return printJSON(s.Displays)
		}
		output.PrintVisualization(os.Stdout, s, getVisualizationOptions())
		return nil
	},
}

var (
	barDisplay uint32
	barWatch   bool
)

// barCmd prints a one-line workspace indicator
var barCmd = &cobra.Command{
	Use:   "bar",
	Short: "Print a status bar line",
	Long: `Prints the monitor id, its workspaces with the visible one highlighted,
and the host's IPv6 and IPv4 addresses. With --watch a new line is printed
each time the manager rewrites the status file, for feeding a status bar.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveStatusPath()
		if err != nil {
			return err
		}
		styles := output.DefaultBarStyles()

		render := func() error {
			s, err := state.Load(path)
			if err != nil {
				return err
			}
			fmt.Println(output.RenderBar(s, types.PhysicalDisplayID(barDisplay), styles))
			return nil
		}

		if err := render(); err != nil {
			return err
		}
		if !barWatch {
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, unix.SIGTERM)
		defer stop()
		return watchStatus(ctx, path, render)
	},
}

// watchStatus calls render whenever the file at path is written or replaced.
func watchStatus(ctx context.Context, path string, render func() error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create status directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	path = filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := render(); err != nil {
				printError(err.Error())
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			printError(err.Error())
		}
	}
}

// getVisualizationOptions builds options from flags
func getVisualizationOptions() output.VisualizationOptions {
	opts := output.DefaultVisualizationOptions()

	// Override with flags if set
	if showASCII {
		opts.UseUnicode = false
	}
	if showUnicode {
		opts.UseUnicode = true
	}
	if showNoIDs {
		opts.ShowIDs = false
	}
	if showWidth > 0 {
		opts.MaxWidth = showWidth
	}
	if showHeight > 0 {
		opts.MaxHeight = showHeight
	}

	return opts
}
