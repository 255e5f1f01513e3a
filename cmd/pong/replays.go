package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
)

var (
	flagLimit  int
	flagPlain  bool
	flagDelete string
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded games",
	Long: `List recorded games, newest first.

In an interactive terminal this opens a browser where a replay can be
verified (Enter) or deleted (X). Otherwise, or with --plain, a text list
is printed.

Examples:
  pong replays
  pong replays --plain --limit 5
  pong replays --delete 3f2a`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum replays to list")
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text list instead of the browser")
	replaysCmd.Flags().StringVar(&flagDelete, "delete", "", "Delete the replay with this ID prefix")
}

func runReplays(cmd *cobra.Command, args []string) {
	logger := newLogger(os.Stderr)

	store, err := openStore()
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	if flagDelete != "" {
		id, err := store.ResolveID(flagDelete)
		if err == nil {
			err = store.DeleteReplay(id)
		}
		if err != nil {
			store.Close()
			fail("%v", err)
		}
		logger.Info("replay deleted", "id", id)
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height, sizeErr := term.GetSize(fd)
		if sizeErr != nil {
			width, height = 80, 24
		}
		if err := tui.RunReplays(store, logger, width, height); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	list, err := store.ListReplays(flagLimit)
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	if len(list) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Run 'pong play' to record one.")
		return
	}

	fmt.Printf("  %-8s  %8s  %8s  %-8s  %s\n", "ID", "Frames", "Length", "Result", "Date")
	fmt.Printf("  %-8s  %8s  %8s  %-8s  %s\n", "--", "------", "------", "------", "----")
	for _, r := range list {
		fmt.Printf("  %-8s  %8d  %7.1fs  %-8s  %s\n",
			tui.ShortID(r.ID), r.FrameCount, r.Duration.Seconds(), r.FinalStatus,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Println("Run 'pong replay <id>' to verify a replay.")
}
