package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

var overrideCmd = &cobra.Command{
	Use:   "override",
	Short: "Manage this machine's local overrides",
}

var overrideSetCmd = &cobra.Command{
	Use:   "set <item> <open|closed>",
	Short: "Force an item open or closed on this machine only",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		item, err := strconv.Atoi(args[0])
		if err != nil {
			fmtErr("item must be a number, got %q", args[0])
			os.Exit(1)
		}
		var open bool
		switch args[1] {
		case "open":
			open = true
		case "closed":
			open = false
		default:
			fmtErr("state must be open or closed, got %q", args[1])
			os.Exit(1)
		}
		if err := openStore().Set(item, open); err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		if !jsonOutput {
			fmt.Printf("Item %d forced %s locally\n", item, args[1])
		}
	},
}

var overrideUnsetCmd = &cobra.Command{
	Use:   "unset <item>",
	Short: "Remove the local override for an item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		item, err := strconv.Atoi(args[0])
		if err != nil {
			fmtErr("item must be a number, got %q", args[0])
			os.Exit(1)
		}
		if err := openStore().Unset(item); err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		if !jsonOutput {
			fmt.Printf("Local override removed for item %d\n", item)
		}
	},
}

var overrideListCmd = &cobra.Command{
	Use:   "list",
	Short: "List local overrides",
	Run: func(cmd *cobra.Command, args []string) {
		m := openStore().Get()
		if jsonOutput {
			outputJSON(m)
			return
		}
		if len(m) == 0 {
			fmt.Println("No local overrides")
			return
		}
		items := make([]int, 0, len(m))
		for item := range m {
			items = append(items, item)
		}
		sort.Ints(items)
		for _, item := range items {
			state := "closed"
			if m[item] {
				state = "open"
			}
			fmt.Printf("  %2d  %s\n", item, state)
		}
	},
}

var overrideClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every local override",
	Run: func(cmd *cobra.Command, args []string) {
		if err := openStore().Clear(); err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		if !jsonOutput {
			fmt.Println("Local overrides cleared")
		}
	},
}

func init() {
	overrideCmd.AddCommand(overrideSetCmd)
	overrideCmd.AddCommand(overrideUnsetCmd)
	overrideCmd.AddCommand(overrideListCmd)
	overrideCmd.AddCommand(overrideClearCmd)
	rootCmd.AddCommand(overrideCmd)
}
