package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/sentinel/internal/app"
	"github.com/example/sentinel/internal/wire"
)

// UserCmd returns the user command.
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
		Long:  `Register, verify, and list user accounts.`,
	}

	cmd.AddCommand(userRegisterCmd())
	cmd.AddCommand(userLoginCmd())
	cmd.AddCommand(userListCmd())

	return cmd
}

func userRegisterCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "register [username] [password]",
		Short: "Register a new user",
		Long: `Register a new user account. The password is bcrypt-hashed before
it is stored.

Examples:
  sentinel user register alice hunter2
  sentinel user register dana hunter2 --role admin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := wire.UserService().Register(cmd.Context(), args[0], args[1], role)
			if err != nil {
				if errors.Is(err, app.ErrUsernameTaken) {
					return fmt.Errorf("user %q already exists", args[0])
				}
				return fmt.Errorf("failed to register user: %w", err)
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s Registered user %s (id=%d, role=%s)\n", green("✓"), user.Username, user.ID, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "user", "Account role (admin or user)")

	return cmd
}

func userLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [username] [password]",
		Short: "Verify credentials",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := wire.UserService().Login(cmd.Context(), args[0], args[1])
			if err != nil {
				if errors.Is(err, app.ErrInvalidCredentials) {
					return errors.New("invalid username or password")
				}
				return fmt.Errorf("login failed: %w", err)
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s Login successful for %s (role=%s)\n", green("✓"), user.Username, user.Role)
			return nil
		},
	}

	return cmd
}

func userListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := wire.UserService().ListUsers(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			if len(users) == 0 {
				fmt.Println("No users found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tCREATED")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.CreatedAt)
			}
			return w.Flush()
		},
	}

	return cmd
}
