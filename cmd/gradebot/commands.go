package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/usf-cs272/gradebot/internal/actions"
	"github.com/usf-cs272/gradebot/internal/config"
	"github.com/usf-cs272/gradebot/internal/db"
	"github.com/usf-cs272/gradebot/internal/grading"
	"github.com/usf-cs272/gradebot/internal/repository"
	"github.com/usf-cs272/gradebot/internal/repository/postgres"
	"github.com/usf-cs272/gradebot/internal/service"
	"github.com/usf-cs272/gradebot/internal/state"
	"github.com/usf-cs272/gradebot/internal/tracker/github"
)

func newRootCmd(logger *actions.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gradebot",
		Short:         "Automates project grade requests for the course repository",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newSetupCmd(logger))
	rootCmd.AddCommand(newRunCmd(logger))
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func newSetupCmd(logger *actions.Logger) *cobra.Command {
	var typeInput, releaseInput string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Verify the request inputs and save state for the run phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.AddMask(cfg.GitHub.Token)

			client, err := newTrackerClient(cfg)
			if err != nil {
				return err
			}

			store := state.NewStore(cfg.Grading.StatePath)
			setupSvc := service.NewSetupService(client, store, logger, nil)
			return setupSvc.Run(cmd.Context(), typeInput, releaseInput)
		},
	}

	// Flags override the Actions inputs, which makes local runs possible
	cmd.Flags().StringVar(&typeInput, "type", actions.GetInput("type"), "grade type to request (functionality or design)")
	cmd.Flags().StringVar(&releaseInput, "release", actions.GetInput("release"), "release tag to grade (for example v1.0.0)")

	return cmd
}

func newRunCmd(logger *actions.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process the verified grade request end to end",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.AddMask(cfg.GitHub.Token)

			client, err := newTrackerClient(cfg)
			if err != nil {
				return err
			}

			schedule, err := loadSchedule(cfg)
			if err != nil {
				return err
			}

			location, err := time.LoadLocation(cfg.Grading.Timezone)
			if err != nil {
				return fmt.Errorf("failed to load timezone %q: %w", cfg.Grading.Timezone, err)
			}

			var ledger repository.LedgerRepository
			if cfg.Ledger.Enabled() {
				database, err := db.NewPostgres(cfg.Ledger)
				if err != nil {
					// the ledger observes the workflow, it never gates it
					logger.Warning("Grade ledger unavailable: %v", err)
				} else {
					defer database.Close()
					ledger = postgres.NewLedgerRepository(database)
				}
			}

			guard := service.NewGuardService(client)
			milestones := service.NewMilestoneService(client, schedule, logger)
			workflow := service.NewWorkflowService(client, milestones, schedule, logger)
			calculator := grading.NewCalculator(schedule, location)
			orchestrator := service.NewOrchestrator(guard, calculator, workflow, ledger, logger)

			store := state.NewStore(cfg.Grading.StatePath)
			values, err := store.Restore()
			if err != nil {
				return err
			}

			request, err := state.BuildRequest(values)
			if err != nil {
				return err
			}

			return orchestrator.Run(cmd.Context(), request)
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent grade requests from the audit ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if !cfg.Ledger.Enabled() {
				return errors.New("grade ledger is not configured, set LEDGER_DB_HOST")
			}

			database, err := db.NewPostgres(cfg.Ledger)
			if err != nil {
				return err
			}
			defer database.Close()

			ledger := postgres.NewLedgerRepository(database)
			entries, err := ledger.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "REQUESTED\tRELEASE\tTYPE\tOUTCOME\tGRADE\tDETAIL")
			for _, entry := range entries {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
					entry.RequestedAt.Format("2006-01-02 15:04"),
					entry.Release,
					entry.GradeType,
					entry.Outcome,
					formatGrade(entry),
					entry.ErrorCode,
				)
			}
			return writer.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries to list")

	return cmd
}

func newTrackerClient(cfg *config.Config) (*github.Client, error) {
	if cfg.GitHub.Owner == "" || cfg.GitHub.Repo == "" {
		return nil, errors.New("repository is not configured, set GITHUB_REPOSITORY to owner/repo")
	}

	if cfg.GitHub.APIBaseURL != "" {
		return github.NewClientWithBaseURL(cfg.GitHub.Token, cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.APIBaseURL)
	}

	return github.NewClient(cfg.GitHub.Token, cfg.GitHub.Owner, cfg.GitHub.Repo), nil
}

func loadSchedule(cfg *config.Config) (*grading.Schedule, error) {
	if cfg.Grading.SchedulePath != "" {
		return grading.LoadSchedule(cfg.Grading.SchedulePath)
	}
	return grading.DefaultSchedule(), nil
}

func formatGrade(entry *repository.LedgerEntry) string {
	if entry.Grade == nil {
		return "-"
	}
	return fmt.Sprintf("%d%%", *entry.Grade)
}
