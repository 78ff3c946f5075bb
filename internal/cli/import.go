package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/sentinel/internal/config"
	"github.com/example/sentinel/internal/wire"
)

// ImportCmd returns the import command.
func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-import legacy export files",
		Long: `Import legacy export files into the local database. Each importer
only runs against an empty target table; once a table holds rows the
import is a no-op.

Paths default to the configured import directory.`,
	}

	cmd.AddCommand(importUsersCmd())
	cmd.AddCommand(importIncidentsCmd())
	cmd.AddCommand(importTicketsCmd())
	cmd.AddCommand(importDatasetsCmd())

	return cmd
}

func importPath(args []string, defaultFile string) string {
	if len(args) > 0 {
		return args[0]
	}
	return wire.Config().ImportPath(defaultFile)
}

func importUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users [path]",
		Short: "Import users from a legacy export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := wire.ImportService().MigrateUsersFromFile(cmd.Context(), importPath(args, config.UsersImportFile))
			if err != nil {
				return fmt.Errorf("failed to import users: %w", err)
			}
			reportImport("users", n)
			return nil
		},
	}
}

func importIncidentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "incidents [path]",
		Short: "Import cyber incidents from a CSV export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := wire.ImportService().MigrateIncidentsFromFile(cmd.Context(), importPath(args, config.IncidentsImportFile))
			if err != nil {
				return fmt.Errorf("failed to import incidents: %w", err)
			}
			reportImport("incidents", n)
			return nil
		},
	}
}

func importTicketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tickets [path]",
		Short: "Import IT tickets from a CSV export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := wire.ImportService().MigrateTicketsFromFile(cmd.Context(), importPath(args, config.TicketsImportFile))
			if err != nil {
				return fmt.Errorf("failed to import tickets: %w", err)
			}
			reportImport("tickets", n)
			return nil
		},
	}
}

func importDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets [path]",
		Short: "Import dataset metadata from a CSV export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := wire.ImportService().MigrateDatasetsFromFile(cmd.Context(), importPath(args, config.DatasetsImportFile))
			if err != nil {
				return fmt.Errorf("failed to import datasets: %w", err)
			}
			reportImport("datasets", n)
			return nil
		},
	}
}

func reportImport(entity string, n int) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("%s Imported %d %s\n", green("✓"), n, entity)
}
