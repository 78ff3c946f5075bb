// Package cli contains the cobra commands for the sentinel CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/sentinel/internal/config"
	"github.com/example/sentinel/internal/db"
	"github.com/example/sentinel/internal/wire"
)

// InitCmd returns the init command.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the database and run one-time imports",
		Long: `Initialize the sentinel database: create the schema, bulk-import
legacy data from the configured import files, ensure an administrator
account exists, and apply pending column migrations.

Safe to run on every start. Imports only run against empty tables, and
schema steps are idempotent.

Import files are resolved under the data directory:
  users.txt, cyber_incidents.csv, it_tickets.csv, datasets_metadata.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := wire.Config()
			database := wire.DB()

			if err := persistConfig(cfg); err != nil {
				return err
			}

			if err := db.InitSchema(database); err != nil {
				return err
			}

			users, err := wire.ImportService().MigrateUsersFromFile(ctx, cfg.ImportPath(config.UsersImportFile))
			if err != nil {
				return fmt.Errorf("user import failed: %w", err)
			}

			if err := wire.UserService().EnsureDefaultAdmin(ctx); err != nil {
				return err
			}

			if err := db.EvolveSchema(database); err != nil {
				return err
			}

			incidents, err := wire.ImportService().MigrateIncidentsFromFile(ctx, cfg.ImportPath(config.IncidentsImportFile))
			if err != nil {
				return fmt.Errorf("incident import failed: %w", err)
			}
			tickets, err := wire.ImportService().MigrateTicketsFromFile(ctx, cfg.ImportPath(config.TicketsImportFile))
			if err != nil {
				return fmt.Errorf("ticket import failed: %w", err)
			}
			datasets, err := wire.ImportService().MigrateDatasetsFromFile(ctx, cfg.ImportPath(config.DatasetsImportFile))
			if err != nil {
				return fmt.Errorf("dataset import failed: %w", err)
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s Database ready at %s\n", green("✓"), cfg.DBPath())
			fmt.Printf("  imported %d users, %d incidents, %d tickets, %d datasets\n",
				users, incidents, tickets, datasets)
			return nil
		},
	}

	return cmd
}

// persistConfig writes the active configuration on first run so defaults
// become editable. An existing config file is left alone.
func persistConfig(cfg *config.Config) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to resolve home directory: %w", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".sentinel", "config.json")); err == nil {
		return nil
	}
	return config.SaveConfig(home, cfg)
}
