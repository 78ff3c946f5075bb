package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/sentinel/internal/cli"
	"github.com/example/sentinel/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "sentinel",
		Short:   "Sentinel - local security operations tracker",
		Version: version.String(),
		Long: `Sentinel tracks cyber incidents, IT tickets, and dataset metadata in
a local SQLite database, and imports legacy platform exports.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.UserCmd())
	rootCmd.AddCommand(cli.IncidentCmd())
	rootCmd.AddCommand(cli.TicketCmd())
	rootCmd.AddCommand(cli.DatasetCmd())
	rootCmd.AddCommand(cli.ImportCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
