package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/sentinel/internal/app"
	"github.com/example/sentinel/internal/wire"
)

type statusReport struct {
	Database  string `yaml:"database"`
	Users     int    `yaml:"users"`
	Admins    int    `yaml:"admins"`
	Incidents int    `yaml:"incidents"`
	Tickets   int    `yaml:"tickets"`
	Datasets  int    `yaml:"datasets"`
}

// StatusCmd returns the status command.
func StatusCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show database row counts",
		Long: `Show the configured database path and per-table row counts.

Examples:
  sentinel status
  sentinel status --output yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			report := statusReport{Database: wire.Config().DBPath()}

			var err error
			if report.Users, err = wire.Users().Count(ctx); err != nil {
				return fmt.Errorf("failed to count users: %w", err)
			}
			if report.Admins, err = wire.Users().CountByRole(ctx, app.RoleAdmin); err != nil {
				return fmt.Errorf("failed to count admins: %w", err)
			}
			if report.Incidents, err = wire.Incidents().Count(ctx); err != nil {
				return fmt.Errorf("failed to count incidents: %w", err)
			}
			if report.Tickets, err = wire.Tickets().Count(ctx); err != nil {
				return fmt.Errorf("failed to count tickets: %w", err)
			}
			if report.Datasets, err = wire.Datasets().Count(ctx); err != nil {
				return fmt.Errorf("failed to count datasets: %w", err)
			}

			if output == "yaml" {
				out, err := yaml.Marshal(report)
				if err != nil {
					return fmt.Errorf("failed to render status: %w", err)
				}
				fmt.Print(string(out))
				return nil
			}

			fmt.Printf("Database: %s\n\n", report.Database)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TABLE\tROWS")
			fmt.Fprintf(w, "users\t%d\n", report.Users)
			fmt.Fprintf(w, "  admins\t%d\n", report.Admins)
			fmt.Fprintf(w, "cyber_incidents\t%d\n", report.Incidents)
			fmt.Fprintf(w, "it_tickets\t%d\n", report.Tickets)
			fmt.Fprintf(w, "datasets_metadata\t%d\n", report.Datasets)
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, yaml)")

	return cmd
}
