package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/pkg/core/services"
)

// ConfirmInvigilationCmd creates the confirmInvigilation command
func ConfirmInvigilationCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "confirmInvigilation <invigilation_id>",
		Short: "Confirm an invigilation assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ConfirmInvigilation(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Invigilation confirmed\n\n")
			fmt.Printf("Invigilation ID: %s\n", result.InvigilationID)
			fmt.Printf("Faculty:         %s\n", result.Username)
			fmt.Printf("Status:          %s\n", result.Status)
			fmt.Printf("Seats updated:   %d\n", result.NestedUpdated)

			return nil
		},
	}
}
