package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/pong"
)

var flagNoRecord bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Pong.

Controls:
  Left/A/H    - Move paddle left
  Right/D/L   - Move paddle right
  R           - New game (after game over)
  Ctrl+S      - Save a screenshot
  Q/Esc       - Quit

Examples:
  pong play
  pong play --fps 120
  pong play --config ./my-pong.yaml
  pong play --no-record`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save a replay")
}

func runPlay(cmd *cobra.Command, args []string) {
	out, closeLog, err := openLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer closeLog()
	logger := newLogger(out)

	cfg, err := loadConfig(logger)
	if err != nil {
		fail("%v", err)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	clock := pong.SystemClock{}
	sim, err := pong.New(cfg, clock)
	if err != nil {
		fail("%v", err)
	}

	opts := tui.Options{
		Logger: logger,
		Clock:  clock,
		Width:  width,
		Height: height,
	}
	if !flagNoRecord {
		store, storeErr := openStore()
		if storeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", storeErr)
			logger.Warn("recording disabled", "error", storeErr)
		} else {
			defer store.Close()
			opts.Store = store
		}
	}

	final, err := tui.Run(sim, opts)
	if err != nil {
		fail("running game: %v", err)
	}

	f := final.Frame()
	fmt.Printf("Final score: %d (%s)\n", f.Score, f.Status)
	for _, id := range final.SavedReplays() {
		fmt.Printf("Replay saved: %s  (pong replay %s)\n", id, tui.ShortID(id))
	}
}
