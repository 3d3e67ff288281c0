package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/parkour/internal/platform/tui"
	"github.com/vovakirdan/parkour/internal/replay"
	"github.com/vovakirdan/parkour/internal/storage"
)

var flagReplayLimit int

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Manage recorded runs",
	Long: `Recorded runs store the seed, the effective config and every frame's
input. Verifying a run re-simulates it and checks that it ends with the
same distance and coins.

Examples:
  parkour replays list
  parkour replays list parkour_hold --limit 5
  parkour replays verify 12
  parkour replays browse
  parkour replays delete 12
  parkour replays clear`,
}

var replaysListCmd = &cobra.Command{
	Use:   "list [game]",
	Short: "List recorded runs, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			gameID := ""
			if len(args) == 1 {
				gameID = args[0]
			}
			runs, err := store.ListRuns(gameID, flagReplayLimit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded yet.")
				fmt.Println()
				fmt.Println("Play with 'parkour play --record' to keep replays.")
				return nil
			}

			fmt.Printf("  %-5s  %-16s  %-9s  %-5s  %-7s  %-6s  %s\n", "ID", "Game", "Distance", "Coins", "Time", "Frames", "Date")
			fmt.Printf("  %-5s  %-16s  %-9s  %-5s  %-7s  %-6s  %s\n", "--", "----", "--------", "-----", "----", "------", "----")
			for _, r := range runs {
				fmt.Printf("  %-5d  %-16s  %-9.0f  %-5d  %-7s  %-6d  %s\n",
					r.ID, r.GameID, r.Distance, r.Coins, fmt.Sprintf("%.1fs", r.Duration),
					r.FrameCount, r.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

var replaysVerifyCmd = &cobra.Command{
	Use:   "verify <id>...",
	Short: "Re-simulate runs and compare their results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		return withStore(func(store *storage.Store) error {
			failed := 0
			for _, id := range ids {
				rec, err := replay.Load(store, id)
				if err != nil {
					return err
				}
				snap, err := replay.Verify(rec)
				switch {
				case errors.Is(err, replay.ErrMismatch):
					failed++
					fmt.Printf("#%d  MISMATCH  %v\n", id, err)
				case err != nil:
					return err
				default:
					fmt.Printf("#%d  ok  %s seed %d, %d frames, distance %.0f, coins %d\n",
						id, rec.GameID, rec.Seed, len(rec.Frames), snap.Distance, snap.Coins)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d runs did not replay identically", failed, len(ids))
			}
			return nil
		})
	},
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete recorded runs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		return withStore(func(store *storage.Store) error {
			for _, id := range ids {
				if err := store.DeleteRun(id); err != nil {
					return fmt.Errorf("run #%d: %w", id, err)
				}
				logger.Info("run deleted", "id", id)
			}
			return nil
		})
	},
}

var replaysClearCmd = &cobra.Command{
	Use:   "clear [game]",
	Short: "Delete every recorded run, or those of one game",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			gameID := ""
			if len(args) == 1 {
				gameID = args[0]
			}
			n, err := store.CountRuns(gameID)
			if err != nil {
				return err
			}
			if err := store.ClearRuns(gameID); err != nil {
				return err
			}
			logger.Info("runs cleared", "count", n)
			return nil
		})
	},
}

var replaysBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse, verify and delete runs interactively",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			width, height := 80, 24
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width, height = w, h
			}
			return tui.RunReplays(store, width, height)
		})
	},
}

func init() {
	replaysListCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum runs to list")

	replaysCmd.AddCommand(replaysListCmd)
	replaysCmd.AddCommand(replaysVerifyCmd)
	replaysCmd.AddCommand(replaysDeleteCmd)
	replaysCmd.AddCommand(replaysClearCmd)
	replaysCmd.AddCommand(replaysBrowseCmd)
}

// withStore opens the runs database for the duration of fn.
func withStore(fn func(store *storage.Store) error) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid run id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
