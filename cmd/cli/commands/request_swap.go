package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/pkg/core/services"
)

// RequestSwapCmd creates the requestSwap command
func RequestSwapCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requestSwap <invigilation_id> <requesting_username> <requested_username>",
		Short: "File a swap request for an invigilation assignment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, _ := cmd.Flags().GetString("reason")

			result, err := services.CreateSwapRequest(app.Ctx, app.Database, app.Cfg, app.Logger, services.CreateSwapRequestRequest{
				InvigilationID:     args[0],
				RequestingUsername: args[1],
				RequestedUsername:  args[2],
				Reason:             reason,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Swap request filed\n\n")
			fmt.Printf("Swap Request ID: %s\n", result.SwapRequestID)
			fmt.Printf("Status:          %s\n", result.Status)
			fmt.Println("\nAn admin will approve or reject the request with resolveSwap.")

			return nil
		},
	}

	cmd.Flags().String("reason", "", "Reason for the swap request")

	return cmd
}
