package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/campusops/invigilate/pkg/core/model"
	"github.com/campusops/invigilate/pkg/core/services"
)

// SetScheduleCmd creates the setSchedule command
func SetScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setSchedule <username> <schedule_file>",
		Short: "Set a faculty member's teaching schedule from a YAML file",
		Long: `Set a faculty member's weekly teaching schedule from a YAML file.
The file maps weekday names to time ranges and the year taught, e.g.:

  Monday:
    "09:00 - 10:00": "2"
  Friday:
    "14:00 - 15:00": "All"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read schedule file: %w", err)
			}

			var schedule model.TeachingSchedule
			if err := yaml.Unmarshal(data, &schedule); err != nil {
				return fmt.Errorf("failed to parse schedule file: %w", err)
			}

			if err := services.SetTeachingSchedule(app.Ctx, app.Database, app.Logger, args[0], schedule); err != nil {
				return err
			}

			fmt.Printf("\n✓ Teaching schedule saved for %s\n\n", args[0])
			for day, ranges := range schedule {
				fmt.Printf("%s:\n", day)
				for timeRange, year := range ranges {
					fmt.Printf("  %s (year %s)\n", timeRange, year)
				}
			}

			return nil
		},
	}
}
