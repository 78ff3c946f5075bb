package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/sentinel/internal/ports/secondary"
	"github.com/example/sentinel/internal/wire"
)

// IncidentCmd returns the incident command.
func IncidentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "incident",
		Short: "Manage cyber incidents",
		Long:  `Record, list, update, and delete cyber incidents.`,
	}

	cmd.AddCommand(incidentAddCmd())
	cmd.AddCommand(incidentListCmd())
	cmd.AddCommand(incidentShowCmd())
	cmd.AddCommand(incidentUpdateCmd())
	cmd.AddCommand(incidentDeleteCmd())

	return cmd
}

func incidentAddCmd() *cobra.Command {
	var (
		severity    string
		status      string
		description string
		reportedBy  int64
	)

	cmd := &cobra.Command{
		Use:   "add [date] [type]",
		Short: "Record a new incident",
		Long: `Record a new cyber incident.

Examples:
  sentinel incident add 2024-01-05 Phishing --severity High --description "Suspicious email"
  sentinel incident add 2024-02-10 Malware --severity Medium --status "In Progress"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := wire.Incidents().Create(cmd.Context(), &secondary.IncidentRecord{
				Date:         args[0],
				IncidentType: args[1],
				Severity:     severity,
				Status:       status,
				Description:  description,
				ReportedBy:   reportedBy,
			})
			if err != nil {
				return fmt.Errorf("failed to record incident: %w", err)
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s Recorded incident %d\n", green("✓"), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "Low", "Severity (Low, Medium, High)")
	cmd.Flags().StringVar(&status, "status", "Open", "Status (Open, In Progress, Resolved, Closed)")
	cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	cmd.Flags().Int64Var(&reportedBy, "reported-by", 0, "Numeric id of the reporting user")

	return cmd
}

func incidentListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all incidents, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			incidents, err := wire.Incidents().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list incidents: %w", err)
			}

			if len(incidents) == 0 {
				fmt.Println("No incidents found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTYPE\tSEVERITY\tSTATUS\tDESCRIPTION")
			for _, in := range incidents {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					in.ID, in.Date, in.IncidentType, in.Severity, in.Status, in.Description)
			}
			return w.Flush()
		},
	}

	return cmd
}

func incidentShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one incident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid incident id %q", args[0])
			}

			incident, err := wire.Incidents().GetByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get incident: %w", err)
			}
			if incident == nil {
				return fmt.Errorf("incident %d not found", id)
			}

			fmt.Printf("Incident %d\n", incident.ID)
			fmt.Printf("  Date:        %s\n", incident.Date)
			fmt.Printf("  Type:        %s\n", incident.IncidentType)
			fmt.Printf("  Severity:    %s\n", incident.Severity)
			fmt.Printf("  Status:      %s\n", incident.Status)
			fmt.Printf("  Description: %s\n", incident.Description)
			if incident.ReportedBy != 0 {
				fmt.Printf("  Reported by: user %d\n", incident.ReportedBy)
			}
			return nil
		},
	}

	return cmd
}

func incidentUpdateCmd() *cobra.Command {
	var (
		date         string
		incidentType string
		severity     string
		status       string
		description  string
		reportedBy   int64
	)

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update an incident (only supplied flags change)",
		Long: `Update an incident. Only explicitly supplied flags are written;
everything else is left untouched.

Examples:
  sentinel incident update 12 --status Resolved
  sentinel incident update 12 --severity High --description "Confirmed breach"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid incident id %q", args[0])
			}

			var patch secondary.IncidentUpdate
			if cmd.Flags().Changed("date") {
				patch.Date = &date
			}
			if cmd.Flags().Changed("type") {
				patch.IncidentType = &incidentType
			}
			if cmd.Flags().Changed("severity") {
				patch.Severity = &severity
			}
			if cmd.Flags().Changed("status") {
				patch.Status = &status
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("reported-by") {
				patch.ReportedBy = &reportedBy
			}

			affected, err := wire.Incidents().Update(cmd.Context(), id, patch)
			if err != nil {
				return fmt.Errorf("failed to update incident: %w", err)
			}
			if affected == 0 {
				fmt.Printf("No changes applied to incident %d\n", id)
				return nil
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s Updated incident %d\n", green("✓"), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Incident date")
	cmd.Flags().StringVar(&incidentType, "type", "", "Incident type")
	cmd.Flags().StringVar(&severity, "severity", "", "Severity (Low, Medium, High)")
	cmd.Flags().StringVar(&status, "status", "", "Status (Open, In Progress, Resolved, Closed)")
	cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	cmd.Flags().Int64Var(&reportedBy, "reported-by", 0, "Numeric id of the reporting user")

	return cmd
}

func incidentDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an incident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid incident id %q", args[0])
			}

			affected, err := wire.Incidents().Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete incident: %w", err)
			}
			if affected == 0 {
				fmt.Printf("Incident %d not found\n", id)
				return nil
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s Deleted incident %d\n", green("✓"), id)
			return nil
		},
	}

	return cmd
}
