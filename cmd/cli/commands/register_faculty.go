package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/pkg/core/services"
)

// RegisterFacultyCmd creates the registerFaculty command
func RegisterFacultyCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registerFaculty <username> <name>",
		Short: "Add a faculty member to the roster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			department, _ := cmd.Flags().GetString("department")

			faculty, err := services.RegisterFaculty(app.Ctx, app.Database, app.Logger, &services.RegisterFacultyRequest{
				Username:   args[0],
				Name:       args[1],
				Email:      email,
				Department: department,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Faculty member registered\n\n")
			fmt.Printf("Username:   %s\n", faculty.Username)
			fmt.Printf("Name:       %s\n", faculty.Name)
			if faculty.Email != "" {
				fmt.Printf("Email:      %s\n", faculty.Email)
			}
			if faculty.Department != "" {
				fmt.Printf("Department: %s\n", faculty.Department)
			}

			return nil
		},
	}

	cmd.Flags().String("email", "", "Email address for notifications")
	cmd.Flags().String("department", "", "Department name")

	return cmd
}
