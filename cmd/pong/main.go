// pong is a single-player Pong game for the terminal.
//
// Usage:
//
//	pong play              - Play a game
//	pong replays           - Browse recorded games
//	pong replay <id>       - Re-run a recorded game and verify it
//	pong config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Override the configured frame rate
//	--config <path>     - Use a custom config YAML
//	--db <path>         - Set replay database path (default: ~/.pong/replays.db)
//	--log-file <path>   - Game session log (default: ~/.pong/pong.log)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Pong - keep the ball in play from your terminal",
	Long: `Pong is a single-player paddle game for the terminal. The ball bounces
off the top and side walls; move the paddle along the bottom to deflect it.
Every deflection scores a point. Letting the ball reach the bottom ends the game.

Each game is recorded and can be re-run later to verify the result.

Examples:
  pong play
  pong play --fps 30
  pong replays
  pong replay 3f2a9c1e
  pong config > my-pong.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pong/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.pong/pong.log", "Log file for game sessions")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates a logger writing to w at the level from --log-level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pong",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openLogFile opens the session log for appending.
// The returned closer is never nil.
func openLogFile(path string) (io.Writer, func() error, error) {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return io.Discard, noopClose, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return io.Discard, noopClose, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, f.Close, nil
}

func noopClose() error { return nil }

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// loadConfig resolves the config file and applies flag overrides.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	logger.Info("config loaded", "source", source)

	if flagFPS != 0 {
		cfg.Timing.FPS = flagFPS
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("--fps: %w", err)
		}
	}
	return cfg, nil
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open replay database: %w", err)
	}
	return store, nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
