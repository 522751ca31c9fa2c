package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/pkg/core/services"
	"github.com/campusops/invigilate/pkg/db"
)

// DashboardCmd creates the dashboard command
func DashboardCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard <username>",
		Short: "Show a faculty member's duties, swap requests, and notifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := services.GetDashboard(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nDashboard for %s\n", dashboard.Username)

			fmt.Printf("\nUpcoming duties (%d):\n", len(dashboard.Upcoming))
			printInvigilations(dashboard.Upcoming)

			fmt.Printf("\nCompleted duties (%d):\n", len(dashboard.Completed))
			printInvigilations(dashboard.Completed)

			fmt.Printf("\nPending swap requests (%d):\n", len(dashboard.PendingSwapRequests))
			for _, req := range dashboard.PendingSwapRequests {
				fmt.Printf("  - %s: %s -> %s\n", req.ID, req.RequestingUsername, req.RequestedUsername)
			}

			fmt.Printf("\nUnread notifications: %d\n", dashboard.UnreadNotifications)

			return nil
		},
	}
}

func printInvigilations(invigilations []db.Invigilation) {
	if len(invigilations) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, inv := range invigilations {
		fmt.Printf("  - %s: %s on %s (%s-%s) at %s [%s]\n",
			inv.ID, inv.ExamName, inv.Date, inv.StartTime, inv.EndTime, inv.Venue, inv.Status)
	}
}
