package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/pkg/core/services"
)

// ResolveSwapCmd creates the resolveSwap command
func ResolveSwapCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolveSwap <swap_request_id> <approve|reject>",
		Short: "Approve or reject a pending swap request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ResolveSwapRequest(app.Ctx, app.Database, app.Logger,
				args[0], services.SwapAction(args[1]))
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Swap request %s\n\n", result.Status)
			fmt.Printf("Swap Request ID: %s\n", result.SwapRequestID)
			fmt.Printf("Seats updated:   %d\n", result.NestedUpdated)
			fmt.Printf("Notifications:   %d\n", result.NotificationsSent)

			return nil
		},
	}
}
