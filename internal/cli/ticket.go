package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/sentinel/internal/ports/secondary"
	"github.com/example/sentinel/internal/wire"
)

// TicketCmd returns the ticket command.
func TicketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Manage IT tickets",
		Long: `Create, list, update, and delete IT tickets.

Tickets are addressed by their ticket token (the business key), never by
the internal numeric id.`,
	}

	cmd.AddCommand(ticketCreateCmd())
	cmd.AddCommand(ticketListCmd())
	cmd.AddCommand(ticketShowCmd())
	cmd.AddCommand(ticketUpdateCmd())
	cmd.AddCommand(ticketDeleteCmd())

	return cmd
}

func ticketCreateCmd() *cobra.Command {
	var (
		ticketID    string
		priority    string
		status      string
		category    string
		subject     string
		createdDate string
		assignedTo  string
	)

	cmd := &cobra.Command{
		Use:   "create [description]",
		Short: "Create a new ticket",
		Long: `Create a new ticket. A ticket token is generated when --id is not
supplied.

Examples:
  sentinel ticket create "Printer on fire" --priority High --subject "Printer"
  sentinel ticket create "VPN down" --id TCK-2024-001 --assigned-to dana`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ticketID == "" {
				ticketID = "TCK-" + uuid.NewString()
			}

			_, err := wire.Tickets().Create(cmd.Context(), &secondary.TicketRecord{
				TicketID:    ticketID,
				Priority:    priority,
				Status:      status,
				Category:    category,
				Subject:     subject,
				Description: args[0],
				CreatedDate: createdDate,
				AssignedTo:  assignedTo,
			})
			if err != nil {
				return fmt.Errorf("failed to create ticket: %w", err)
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s Created ticket %s\n", green("✓"), ticketID)
			return nil
		},
	}

	cmd.Flags().StringVar(&ticketID, "id", "", "Ticket token (generated when empty)")
	cmd.Flags().StringVar(&priority, "priority", "Medium", "Priority (Low, Medium, High)")
	cmd.Flags().StringVar(&status, "status", "Open", "Status (Open, In Progress, Resolved, Closed)")
	cmd.Flags().StringVar(&category, "category", "", "Ticket category")
	cmd.Flags().StringVar(&subject, "subject", "", "Short subject line")
	cmd.Flags().StringVar(&createdDate, "created", "", "Creation date")
	cmd.Flags().StringVar(&assignedTo, "assigned-to", "", "Assignee")

	return cmd
}

func ticketListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tickets, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			tickets, err := wire.Tickets().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list tickets: %w", err)
			}

			if len(tickets) == 0 {
				fmt.Println("No tickets found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TICKET\tPRIORITY\tSTATUS\tSUBJECT\tASSIGNED")
			for _, tk := range tickets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					tk.TicketID, tk.Priority, tk.Status, tk.Subject, tk.AssignedTo)
			}
			return w.Flush()
		},
	}

	return cmd
}

func ticketShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [ticket-id]",
		Short: "Show one ticket by its token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticket, err := wire.Tickets().GetByTicketID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get ticket: %w", err)
			}
			if ticket == nil {
				return fmt.Errorf("ticket %s not found", args[0])
			}

			fmt.Printf("Ticket %s\n", ticket.TicketID)
			fmt.Printf("  Priority:    %s\n", ticket.Priority)
			fmt.Printf("  Status:      %s\n", ticket.Status)
			fmt.Printf("  Category:    %s\n", ticket.Category)
			fmt.Printf("  Subject:     %s\n", ticket.Subject)
			fmt.Printf("  Description: %s\n", ticket.Description)
			fmt.Printf("  Created:     %s\n", ticket.CreatedDate)
			fmt.Printf("  Assigned to: %s\n", ticket.AssignedTo)
			fmt.Printf("  Resolved:    %s\n", ticket.ResolvedDate)
			return nil
		},
	}

	return cmd
}

func ticketUpdateCmd() *cobra.Command {
	var (
		priority     string
		status       string
		category     string
		subject      string
		description  string
		createdDate  string
		assignedTo   string
		resolvedDate string
	)

	cmd := &cobra.Command{
		Use:   "update [ticket-id]",
		Short: "Update a ticket (only supplied flags change)",
		Long: `Update a ticket by its token. Only explicitly supplied flags are
written; everything else is left untouched.

Examples:
  sentinel ticket update TCK-2024-001 --status Resolved --resolved 2024-03-02
  sentinel ticket update TCK-2024-001 --assigned-to omar`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch secondary.TicketUpdate
			if cmd.Flags().Changed("priority") {
				patch.Priority = &priority
			}
			if cmd.Flags().Changed("status") {
				patch.Status = &status
			}
			if cmd.Flags().Changed("category") {
				patch.Category = &category
			}
			if cmd.Flags().Changed("subject") {
				patch.Subject = &subject
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("created") {
				patch.CreatedDate = &createdDate
			}
			if cmd.Flags().Changed("assigned-to") {
				patch.AssignedTo = &assignedTo
			}
			if cmd.Flags().Changed("resolved") {
				patch.ResolvedDate = &resolvedDate
			}

			affected, err := wire.Tickets().Update(cmd.Context(), args[0], patch)
			if err != nil {
				return fmt.Errorf("failed to update ticket: %w", err)
			}
			if affected == 0 {
				fmt.Printf("No changes applied to ticket %s\n", args[0])
				return nil
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s Updated ticket %s\n", green("✓"), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&priority, "priority", "", "Priority (Low, Medium, High)")
	cmd.Flags().StringVar(&status, "status", "", "Status (Open, In Progress, Resolved, Closed)")
	cmd.Flags().StringVar(&category, "category", "", "Ticket category")
	cmd.Flags().StringVar(&subject, "subject", "", "Short subject line")
	cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	cmd.Flags().StringVar(&createdDate, "created", "", "Creation date")
	cmd.Flags().StringVar(&assignedTo, "assigned-to", "", "Assignee")
	cmd.Flags().StringVar(&resolvedDate, "resolved", "", "Resolution date")

	return cmd
}

func ticketDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [ticket-id]",
		Short: "Delete a ticket by its token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			affected, err := wire.Tickets().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete ticket: %w", err)
			}
			if affected == 0 {
				fmt.Printf("Ticket %s not found\n", args[0])
				return nil
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s Deleted ticket %s\n", green("✓"), args[0])
			return nil
		},
	}

	return cmd
}
