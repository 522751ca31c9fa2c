package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/pkg/core/services"
)

// ListExamsCmd creates the listExams command
func ListExamsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listExams",
		Short: "List all exams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exams, err := services.ListExams(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d exams:\n\n", len(exams))
			for _, exam := range exams {
				fmt.Printf("- %s: %s (%s, year %s) starting %s - %d slots [%s]\n",
					exam.ID, exam.ExamName, exam.ExamType, exam.Year,
					exam.Date, len(exam.Slots), exam.Status)
			}

			return nil
		},
	}
}
