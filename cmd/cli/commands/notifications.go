package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/core/services"
)

// NotificationsCmd creates the notifications command
func NotificationsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "notifications <username>",
		Short: "List a faculty member's notifications, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notifications, err := services.ListNotifications(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			if len(notifications) == 0 {
				fmt.Println("\nNo notifications.")
				return nil
			}

			fmt.Printf("\nFound %d notifications:\n\n", len(notifications))
			for _, n := range notifications {
				marker := " "
				if n.Status == string(model.NotificationUnread) {
					marker = "*"
				}
				fmt.Printf("%s %s [%s]\n  %s\n", marker, n.ID, n.CreatedAt, n.Message)
			}

			return nil
		},
	}
}

// MarkReadCmd creates the markRead command
func MarkReadCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "markRead <notification_id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.MarkNotificationRead(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}

			fmt.Printf("\n✓ Notification %s marked as read\n", args[0])

			return nil
		},
	}
}
