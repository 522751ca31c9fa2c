package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/pkg/core/services"
)

// ManualAssignCmd creates the manualAssign command
func ManualAssignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "manualAssign <exam_id> <slot_number> <section_number> <current_username> <replacement_username>",
		Short: "Replace one seat in one section with another faculty member",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotNumber, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("slot_number must be a number: %w", err)
			}
			sectionNumber, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("section_number must be a number: %w", err)
			}

			result, err := services.ManualAssignment(app.Ctx, app.Database, app.Logger, &services.ManualAssignmentRequest{
				ExamID:              args[0],
				SlotNumber:          slotNumber,
				SectionNumber:       sectionNumber,
				CurrentUsername:     args[3],
				ReplacementUsername: args[4],
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Seat reassigned\n\n")
			fmt.Printf("Exam ID:       %s\n", result.ExamID)
			fmt.Printf("Slot/Section:  %d/%d\n", result.SlotNumber, result.SectionNumber)
			fmt.Printf("Replaced:      %s -> %s\n", result.ReplacedUsername, result.ReplacementUsername)
			fmt.Printf("Notifications: %d\n", result.NotificationsSent)
			if !result.FlatUpdated {
				fmt.Println("\nNo matching invigilation record was found; run reconcile to rebuild it.")
			}

			return nil
		},
	}
}
