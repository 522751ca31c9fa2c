package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/internal/config"
	"github.com/campusops/invigilate/pkg/clients/gmailclient"
	"github.com/campusops/invigilate/pkg/core/services"
	"github.com/campusops/invigilate/pkg/utils"
)

// NotifyFacultyCmd creates the notifyFaculty command
func NotifyFacultyCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifyFaculty <exam_id>",
		Short: "Notify every faculty member assigned to an exam",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sendEmails, _ := cmd.Flags().GetBool("email")

			var sender services.EmailSender
			if sendEmails {
				gmail, err := buildGmailClient(app)
				if err != nil {
					return fmt.Errorf("failed to set up email delivery: %w", err)
				}
				sender = gmail
			}

			result, err := services.NotifyFaculty(app.Ctx, app.Database, sender, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Faculty notified\n\n")
			fmt.Printf("Recipients:    %d\n", result.Recipients)
			fmt.Printf("Notifications: %d\n", result.NotificationsSent)
			if sendEmails {
				fmt.Printf("Emails:        %d\n", result.EmailsSent)
			}
			if result.Failures > 0 {
				fmt.Printf("\n%d deliveries failed; rerun to retry.\n", result.Failures)
			}

			return nil
		},
	}

	cmd.Flags().Bool("email", false, "Also send email notifications via Gmail")

	return cmd
}

// buildGmailClient runs the OAuth flow and constructs a Gmail client.
// It is only invoked when a command actually needs to send email, so
// plain database commands never prompt for authentication.
func buildGmailClient(app *AppContext) (*gmailclient.Client, error) {
	if app.GmailClient != nil {
		return app.GmailClient, nil
	}

	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build OAuth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(app.Ctx, oauthConfig, app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain OAuth token: %w", err)
	}

	client, err := gmailclient.NewClient(app.Ctx, oauthCfg, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}

	app.GmailClient = client
	return client, nil
}
