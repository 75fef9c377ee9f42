package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"clue-calendar/backend/internal/client"
)

var remoteCode string

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Manage the shared overrides held by the service",
}

var remoteUnlockCmd = &cobra.Command{
	Use:   "unlock <item>...",
	Short: "Force items open for every client",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		remoteMutate(cmd.Context(), parseItems(args), nil)
	},
}

var remoteLockCmd = &cobra.Command{
	Use:   "lock <item>...",
	Short: "Force items closed for every client",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		remoteMutate(cmd.Context(), nil, parseItems(args))
	},
}

var remoteClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every shared override",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		if err := client.New(serverURL).ClearOverrides(ctx, remoteCode); err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		if !jsonOutput {
			fmt.Println("Shared overrides cleared")
		}
	},
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shared overrides",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		m, err := client.New(serverURL).Overrides(ctx)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		if jsonOutput {
			outputJSON(m)
			return
		}
		if len(m) == 0 {
			fmt.Println("No shared overrides")
			return
		}
		for item, open := range m {
			state := "closed"
			if open {
				state = "open"
			}
			fmt.Printf("  %2d  %s\n", item, state)
		}
	},
}

func remoteMutate(ctx context.Context, unlockIDs, lockIDs []int) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	m, err := client.New(serverURL).SetOverrides(ctx, unlockIDs, lockIDs, remoteCode)
	if err != nil {
		fmtErr("%v", err)
		os.Exit(1)
	}
	if jsonOutput {
		outputJSON(m)
		return
	}
	fmt.Printf("Shared overrides updated (%d entries)\n", len(m))
}

func parseItems(args []string) []int {
	items := make([]int, 0, len(args))
	for _, a := range args {
		item, err := strconv.Atoi(a)
		if err != nil {
			fmtErr("item must be a number, got %q", a)
			os.Exit(1)
		}
		items = append(items, item)
	}
	return items
}

func init() {
	remoteCmd.PersistentFlags().StringVar(&remoteCode, "code", "", "operator access code")
	remoteCmd.AddCommand(remoteUnlockCmd)
	remoteCmd.AddCommand(remoteLockCmd)
	remoteCmd.AddCommand(remoteClearCmd)
	remoteCmd.AddCommand(remoteListCmd)
	rootCmd.AddCommand(remoteCmd)
}
