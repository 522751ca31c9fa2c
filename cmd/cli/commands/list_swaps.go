package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/pkg/core/services"
)

// ListSwapsCmd creates the listSwaps command
func ListSwapsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listSwaps",
		Short: "List all pending swap requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := services.ListPendingSwapRequests(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			if len(requests) == 0 {
				fmt.Println("\nNo pending swap requests.")
				return nil
			}

			fmt.Printf("\nFound %d pending swap requests:\n\n", len(requests))
			for _, req := range requests {
				fmt.Printf("- %s: %s -> %s (invigilation %s)\n",
					req.ID, req.RequestingUsername, req.RequestedUsername, req.InvigilationID)
				if req.Reason != "" {
					fmt.Printf("  Reason: %s\n", req.Reason)
				}
				fmt.Printf("  Filed:  %s\n", req.CreatedAt)
			}

			return nil
		},
	}
}
