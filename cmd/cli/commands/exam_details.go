package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/pkg/core/services"
)

// ExamDetailsCmd creates the examDetails command
func ExamDetailsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "examDetails <exam_id>",
		Short: "Show an exam's slots and invigilation records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := services.GetExamDetails(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			exam := details.Exam
			fmt.Printf("\n%s (%s, year %s) [%s]\n", exam.ExamName, exam.ExamType, exam.Year, exam.Status)

			for _, slot := range exam.Slots {
				fmt.Printf("\nSlot %d: %s on %s (%s-%s)\n",
					slot.SlotNumber, slot.Subject, slot.Date, slot.StartTime, slot.EndTime)
				for _, section := range slot.Sections {
					fmt.Printf("  Section %d:\n", section.SectionNumber)
					for _, seat := range section.Faculty {
						fmt.Printf("    - %s (%s) [%s]\n", seat.Name, seat.Username, seat.Status)
					}
				}
			}

			fmt.Printf("\nInvigilation records (%d):\n", len(details.Invigilations))
			printInvigilations(details.Invigilations)

			return nil
		},
	}
}
