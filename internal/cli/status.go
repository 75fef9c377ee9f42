package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"clue-calendar/backend/internal/client"
	"clue-calendar/backend/internal/override/domain"
	"clue-calendar/backend/internal/schedule"
	"clue-calendar/backend/internal/unlock"
)

var (
	statusScheduleFile string
	statusOffline      bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which items are open and the next pending unlock",
	Run: func(cmd *cobra.Command, args []string) {
		sched, err := schedule.Load(statusScheduleFile)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		local := openStore().Get()
		remote := domain.Map{}
		if !statusOffline {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			remote, err = client.New(serverURL).Overrides(ctx)
			if err != nil {
				fmtErr("fetch shared overrides: %v (use --offline to skip)", err)
				os.Exit(1)
			}
		}

		engine := unlock.New(sched)
		now := time.Now()

		type itemStatus struct {
			Item     int       `json:"item"`
			Open     bool      `json:"open"`
			UnlockAt time.Time `json:"unlock_at"`
		}
		items := make([]itemStatus, 0, engine.Items())
		for i := 1; i <= engine.Items(); i++ {
			at, _ := sched.UnlockAt(i)
			items = append(items, itemStatus{Item: i, Open: engine.IsOpen(i, now, local, remote), UnlockAt: at})
		}
		pending, hasPending := engine.NextPendingUnlock(now, local, remote)

		if jsonOutput {
			out := map[string]any{"items": items}
			if hasPending {
				out["next"] = map[string]any{
					"item":         pending.Item,
					"unlock_at":    pending.UnlockAt.UTC().Format(time.RFC3339),
					"remaining_ms": pending.Remaining.Milliseconds(),
				}
			}
			outputJSON(out)
			return
		}

		for _, it := range items {
			state := "closed"
			if it.Open {
				state = "open"
			}
			fmt.Printf("  %2d  %-6s  %s\n", it.Item, state, it.UnlockAt.Local().Format(time.RFC3339))
		}
		if hasPending {
			fmt.Printf("Next unlock: item %d in %s (at %s)\n",
				pending.Item, pending.Remaining.Round(time.Second), pending.UnlockAt.Local().Format(time.RFC3339))
		} else {
			fmt.Println("No pending unlocks")
		}
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusScheduleFile, "schedule", "schedule.yaml", "schedule file to evaluate")
	statusCmd.Flags().BoolVar(&statusOffline, "offline", false, "skip fetching shared overrides")
	rootCmd.AddCommand(statusCmd)
}
