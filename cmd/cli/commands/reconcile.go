package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/pkg/core/services"
)

// ReconcileCmd creates the reconcile command
func ReconcileCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <exam_id>",
		Short: "Rebuild missing invigilation records from an exam's slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ReconcileExam(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Reconciliation finished\n\n")
			fmt.Printf("Exam ID:               %s\n", result.ExamID)
			fmt.Printf("Seats checked:         %d\n", result.SeatsChecked)
			fmt.Printf("Invigilations created: %d\n", result.InvigilationsCreated)
			if result.Failures > 0 {
				fmt.Printf("\n%d records still failed to save; run reconcile again.\n", result.Failures)
			}

			return nil
		},
	}
}
