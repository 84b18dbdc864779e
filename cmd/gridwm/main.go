package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yourusername/gridwm/internal/client"
	"github.com/yourusername/gridwm/internal/config"
	"github.com/yourusername/gridwm/internal/state"
)

const version = "0.1.0"

var (
	configPath string
	statusPath string
	timeout    time.Duration
	jsonOutput bool
	noColor    bool

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "gridwm",
	Short: "Tiling window manager for GridServer",
	Long: `gridwm tiles the windows GridServer reports into binary split layouts,
one layout per workspace, with up to ten workspaces shared between monitors.

Run "gridwm run" to start the manager; the other commands read the status
file it keeps up to date.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// versionCmd prints the version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gridwm version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gridwm %s\n", version)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/gridwm/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&statusPath, "status", "", "Status file (default from config)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "Server request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(barCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)

	runCmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	runCmd.Flags().BoolVar(&foreground, "foreground", false, "Also log to stderr")

	statusCmd.Flags().BoolVar(&statusTables, "tables", false, "Print workspace and window tables")

	showCmd.Flags().BoolVar(&showASCII, "ascii", false, "Force ASCII mode (no Unicode)")
	showCmd.Flags().BoolVar(&showUnicode, "unicode", false, "Force Unicode mode")
	showCmd.Flags().BoolVar(&showNoIDs, "no-ids", false, "Hide window IDs")
	showCmd.Flags().IntVar(&showWidth, "width", 0, "Override terminal width")
	showCmd.Flags().IntVar(&showHeight, "height", 0, "Override terminal height")

	barCmd.Flags().Uint32Var(&barDisplay, "display", 0, "Monitor to render (default: active)")
	barCmd.Flags().BoolVar(&barWatch, "watch", false, "Re-render whenever the status file changes")

	configInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")

	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

// Helper functions

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

// loadConfig reads --config, falling back to the defaults when no file
// exists in the default location.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolveStatusPath returns --status, or the configured status file.
func resolveStatusPath() (string, error) {
	if statusPath != "" {
		return config.ExpandPath(statusPath), nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.StatusPath(), nil
}

// loadStatus reads the status file the manager publishes.
func loadStatus() (*state.Status, string, error) {
	path, err := resolveStatusPath()
	if err != nil {
		return nil, "", err
	}
	s, err := state.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to read status: %w", err)
	}
	return s, path, nil
}

// stateDir holds the lock, pid and log files.
func stateDir() string {
	return config.ExpandPath(filepath.Join("~", config.DefaultStateDir))
}
