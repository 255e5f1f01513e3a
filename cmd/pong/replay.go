package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-run a recorded game and verify it",
	Long: `Re-run a recorded game with its stored configuration, frame deltas and
inputs, then compare the resulting frame hash with the one recorded when the
game was played. Any unique prefix of the replay ID is accepted.

Exits with status 1 if the re-run does not reproduce the recording.

Examples:
  pong replay 3f2a9c1e
  pong replay 3f2a`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	logger := newLogger(os.Stderr)

	store, err := openStore()
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	id, err := store.ResolveID(args[0])
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	rep, err := store.Replay(id)
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	res, err := replay.Verify(rep)
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	fmt.Printf("Replay   %s\n", res.ID)
	fmt.Printf("Recorded %s\n", rep.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Frames   %d\n", res.Frames)
	fmt.Printf("Score    %d (%s)\n", res.Final.Score, res.Final.Status)
	fmt.Printf("Hash     %016x\n", res.Actual)

	if !res.OK() {
		logger.Error("replay mismatch", "id", res.ID, "expected", fmt.Sprintf("%016x", res.Expected), "actual", fmt.Sprintf("%016x", res.Actual))
		store.Close()
		os.Exit(1)
	}
	logger.Info("replay verified", "id", res.ID, "frames", res.Frames)
}
