package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/internal/config"
	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/core/scheduler"
	"github.com/campusops/invigilate/pkg/core/services"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule <exam_file>",
		Short: "Propose invigilation assignments for an exam definition without saving",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, examFile, err := buildGenerationRequest(cmd, args[0])
			if err != nil {
				return err
			}

			result, err := services.GenerateSchedule(app.Ctx, app.Database, app.Cfg, app.Logger, *req)
			if err != nil {
				return err
			}

			fmt.Printf("\nProposed schedule for %s (%s):\n\n", examFile.ExamName, examFile.ExamType)
			printSlotAssignments(result.Slots)

			if result.Fault != nil {
				fmt.Printf("\nSlot %d (%s on %s) could not be filled: needs %d, only %d available.\n",
					result.Fault.SlotNumber, result.Fault.Subject, result.Fault.Date,
					result.Fault.Needed, result.Fault.Available)
				fmt.Println("Assign the remaining seats manually with manualAssign after creating the exam.")
			} else {
				fmt.Printf("\nAll %d slots filled.\n", len(result.Slots))
			}

			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Fix the allocation shuffle for reproducible runs")

	return cmd
}

// buildGenerationRequest loads an exam definition file and converts it
// into a generation request, honoring the --seed flag when set
func buildGenerationRequest(cmd *cobra.Command, path string) (*services.GenerateScheduleRequest, *config.ExamFile, error) {
	examFile, err := config.LoadExamFile(path)
	if err != nil {
		return nil, nil, err
	}

	slotDefs, err := examFile.ExpandSlots()
	if err != nil {
		return nil, nil, err
	}

	slots := make([]scheduler.SlotRequest, 0, len(slotDefs))
	for _, def := range slotDefs {
		slots = append(slots, scheduler.SlotRequest{
			SlotNumber:      def.SlotNumber,
			Subject:         def.Subject,
			Date:            def.Date,
			StartTime:       def.StartTime,
			EndTime:         def.EndTime,
			SectionsPerSlot: def.SectionsPerSlot,
		})
	}

	req := &services.GenerateScheduleRequest{
		ExamType:          model.ExamType(examFile.ExamType),
		Year:              examFile.Year,
		FacultyPerSection: examFile.FacultyPerSection,
		Slots:             slots,
	}

	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetInt64("seed")
		req.Seed = &seed
	}

	return req, examFile, nil
}

func printSlotAssignments(slots []scheduler.SlotAssignment) {
	for _, slot := range slots {
		fmt.Printf("Slot %d: %s on %s (%s) %s-%s\n",
			slot.SlotNumber, slot.Subject, slot.Date, slot.Day, slot.StartTime, slot.EndTime)
		for _, section := range slot.Sections {
			fmt.Printf("  Section %d:\n", section.SectionNumber)
			for _, faculty := range section.Faculty {
				fmt.Printf("    - %s (%s)\n", faculty.Name, faculty.Username)
			}
		}
	}
}
