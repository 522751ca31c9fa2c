package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/pkg/core/services"
)

// ListFacultyCmd creates the listFaculty command
func ListFacultyCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listFaculty",
		Short: "List all faculty members on the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := services.ListRoster(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d faculty members:\n\n", len(roster))
			for _, f := range roster {
				departmentInfo := ""
				if f.Department != "" {
					departmentInfo = fmt.Sprintf(" [%s]", f.Department)
				}
				fmt.Printf("- %s (%s) - %s%s\n", f.Name, f.Username, f.Email, departmentInfo)
			}

			return nil
		},
	}
}
