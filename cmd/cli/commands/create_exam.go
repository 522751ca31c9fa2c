package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/core/scheduler"
	"github.com/campusops/invigilate/pkg/core/services"
)

// CreateExamCmd creates the createExam command
func CreateExamCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createExam <exam_file>",
		Short: "Generate assignments for an exam definition and persist the exam",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, examFile, err := buildGenerationRequest(cmd, args[0])
			if err != nil {
				return err
			}

			generated, err := services.GenerateSchedule(app.Ctx, app.Database, app.Cfg, app.Logger, *req)
			if err != nil {
				return err
			}

			var faultedSlot *scheduler.SlotRequest
			if generated.Fault != nil {
				for i := range req.Slots {
					if req.Slots[i].SlotNumber == generated.Fault.SlotNumber {
						faultedSlot = &req.Slots[i]
						break
					}
				}
			}
			slots := slotsFromAssignments(generated.Slots, examFile.FacultyPerSection, faultedSlot)
			if generated.Fault != nil {
				// Unprocessed slots still need seats; carry them as
				// placeholder sections so the exam is complete and
				// manualAssign can fill them
				fmt.Printf("\nSlot %d (%s) could not be fully staffed; placeholder seats recorded.\n",
					generated.Fault.SlotNumber, generated.Fault.Subject)
			}

			result, err := services.CreateExam(app.Ctx, app.Database, app.Logger, services.CreateExamRequest{
				ExamName: examFile.ExamName,
				ExamType: model.ExamType(examFile.ExamType),
				Year:     examFile.Year,
				Slots:    slots,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Exam created: %s\n\n", result.Exam.ExamName)
			fmt.Printf("Exam ID:       %s\n", result.Exam.ID)
			fmt.Printf("Slots:         %d\n", len(result.Exam.Slots))
			fmt.Printf("Invigilations: %d\n", result.InvigilationsCreated)
			fmt.Printf("Notifications: %d\n", result.NotificationsCreated)
			if result.FanOutFailures > 0 {
				fmt.Printf("\n%d records failed to save; run 'reconcile %s' to repair.\n",
					result.FanOutFailures, result.Exam.ID)
			}

			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Fix the allocation shuffle for reproducible runs")

	return cmd
}

// slotsFromAssignments converts generated slot assignments into the
// nested exam document shape. When the run halted at a capacity fault,
// the faulting slot is appended with placeholder seats.
func slotsFromAssignments(assignments []scheduler.SlotAssignment, facultyPerSection int, fault *scheduler.SlotRequest) []model.Slot {
	slots := make([]model.Slot, 0, len(assignments)+1)
	for _, assignment := range assignments {
		sections := make([]model.Section, 0, len(assignment.Sections))
		for _, section := range assignment.Sections {
			seats := make([]model.FacultyAssignment, 0, len(section.Faculty))
			for _, faculty := range section.Faculty {
				seats = append(seats, model.FacultyAssignment{
					Username: faculty.Username,
					Name:     faculty.Name,
					Status:   model.StatusAssigned,
				})
			}
			sections = append(sections, model.Section{
				SectionNumber: section.SectionNumber,
				Faculty:       seats,
			})
		}
		slots = append(slots, model.Slot{
			SlotNumber: assignment.SlotNumber,
			Subject:    assignment.Subject,
			Date:       assignment.Date,
			StartTime:  assignment.StartTime,
			EndTime:    assignment.EndTime,
			Sections:   sections,
		})
	}

	if fault != nil {
		sections := make([]model.Section, 0, fault.SectionsPerSlot)
		for s := 1; s <= fault.SectionsPerSlot; s++ {
			seats := make([]model.FacultyAssignment, 0, facultyPerSection)
			for i := 0; i < facultyPerSection; i++ {
				seats = append(seats, model.FacultyAssignment{
					Username: model.PlaceholderUsername,
					Name:     "No Faculty Available",
					Status:   model.StatusAssigned,
				})
			}
			sections = append(sections, model.Section{SectionNumber: s, Faculty: seats})
		}
		slots = append(slots, model.Slot{
			SlotNumber: fault.SlotNumber,
			Subject:    fault.Subject,
			Date:       fault.Date,
			StartTime:  fault.StartTime,
			EndTime:    fault.EndTime,
			Sections:   sections,
		})
	}

	return slots
}
