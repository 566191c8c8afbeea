package main

import (
	"fmt"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/checkup"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/config"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/console"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify prerequisites before running the other tools",
	Long: `Runs the full prerequisite checklist: project configuration, secrets,
credentials, storage root, database connectivity and API health.

Every probe runs regardless of earlier failures. The exit code is the
logical AND over the required probes; optional probes only warn.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	db, err := openDB(cfg)
	if err != nil {
		// The database probe reports this; the rest of the checklist still runs.
		logger.Debug("database connection failed", zap.Error(err))
		db = nil
	}

	checker := checkup.New(cfg, db)

	fmt.Println(console.Header("Prerequisite check"))
	records := checker.RunAll(cmd.Context())
	for _, rec := range records {
		level := console.LevelSuccess
		if !rec.Passed {
			level = console.LevelWarning
			if rec.Required {
				level = console.LevelError
			}
		}
		fmt.Println(console.Format(level, rec.Name))
		if rec.Detail != "" {
			fmt.Println(console.Detail(rec.Detail))
		}
	}

	if !checkup.Aggregate(records) {
		fmt.Println(console.Format(console.LevelError, "required checks failed, fix the findings above and re-run"))
		return fmt.Errorf("prerequisite check failed")
	}
	fmt.Println(console.Format(console.LevelSuccess, "all required checks passed"))
	return nil
}
