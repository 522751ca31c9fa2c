package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/campusops/invigilate/cmd/cli/commands"
	"github.com/campusops/invigilate/internal/config"
	"github.com/campusops/invigilate/pkg/postgres"
	"github.com/campusops/invigilate/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "invigilate",
		Short: "Invigilate CLI - Manage exam invigilation schedules",
		Long:  `A CLI tool for managing exam invigilation: schedule generation, assignment lifecycle, swaps, and faculty notifications.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.RegisterFacultyCmd(app))
	rootCmd.AddCommand(commands.ListFacultyCmd(app))
	rootCmd.AddCommand(commands.SetScheduleCmd(app))
	rootCmd.AddCommand(commands.GenerateScheduleCmd(app))
	rootCmd.AddCommand(commands.CreateExamCmd(app))
	rootCmd.AddCommand(commands.ListExamsCmd(app))
	rootCmd.AddCommand(commands.ExamDetailsCmd(app))
	rootCmd.AddCommand(commands.ConfirmInvigilationCmd(app))
	rootCmd.AddCommand(commands.RequestSwapCmd(app))
	rootCmd.AddCommand(commands.ListSwapsCmd(app))
	rootCmd.AddCommand(commands.ResolveSwapCmd(app))
	rootCmd.AddCommand(commands.ManualAssignCmd(app))
	rootCmd.AddCommand(commands.MarkCompletedCmd(app))
	rootCmd.AddCommand(commands.ReconcileCmd(app))
	rootCmd.AddCommand(commands.NotifyFacultyCmd(app))
	rootCmd.AddCommand(commands.DashboardCmd(app))
	rootCmd.AddCommand(commands.NotificationsCmd(app))
	rootCmd.AddCommand(commands.MarkReadCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	// Connect to the database and run pending migrations
	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Database = database
	app.Logger.Info("Database initialized successfully")

	return nil
}
