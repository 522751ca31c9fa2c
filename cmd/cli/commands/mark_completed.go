package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/pkg/core/services"
)

// MarkCompletedCmd creates the markCompleted command
func MarkCompletedCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "markCompleted",
		Short: "Mark all past exams and invigilations as Completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.MarkCompleted(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Completion sweep finished\n\n")
			fmt.Printf("Cutoff date:             %s\n", result.Before)
			fmt.Printf("Exams completed:         %d\n", result.ExamsCompleted)
			fmt.Printf("Invigilations completed: %d\n", result.InvigilationsCompleted)

			return nil
		},
	}
}
