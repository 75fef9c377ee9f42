// Package cli implements the cluectl command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clue-calendar/backend/internal/override/localstore"
)

var (
	jsonOutput bool
	serverURL  string
	storePath  string

	rootCmd = &cobra.Command{
		Use:   "cluectl",
		Short: "cluectl - clue calendar operator tool",
		Long: `cluectl inspects and steers a clue calendar service: it shows which
items are open right now, manages this machine's local overrides, and
pushes shared overrides to the service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "calendar service base URL")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "local override file (default: user config dir)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func openStore() *localstore.Store {
	if storePath != "" {
		return localstore.New(storePath)
	}
	st, err := localstore.Default()
	if err != nil {
		fmtErr("local store: %v", err)
		os.Exit(1)
	}
	return st
}

func fmtErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "cluectl: "+format+"\n", args...)
}

// outputJSON prints v as JSON if --json flag is set, otherwise does nothing.
func outputJSON(v any) error {
	if !jsonOutput {
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
