package main

import (
	"fmt"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/bootstrap"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/config"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/console"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/pipeline"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/storage"

	"github.com/spf13/cobra"
)

var bootstrapIndexFile string

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create or repair project resources idempotently",
	Long: `Ensures the asset bucket, database schema, seed documents and the boards
composite indexes all exist. Re-running against a healthy project performs
zero creation side effects; resources that already exist are reported and
left untouched.

A failure in one resource never prevents attempts on the others.`,
	RunE: runBootstrap,
}

func init() {
	bootstrapCmd.Flags().StringVar(&bootstrapIndexFile, "indexes-file", "firestore.indexes.json",
		"path the composite index definition file is written to")
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	store := storage.NewService(cfg.StorageRoot)
	b := bootstrap.New(db, store, cfg, bootstrapIndexFile)

	fmt.Println(console.Header("Bootstrap"))
	results, ok := b.Run(cmd.Context(), func(res pipeline.Result) {
		switch res.Outcome {
		case pipeline.Succeeded:
			fmt.Println(console.Format(console.LevelSuccess, res.Name))
		default:
			fmt.Println(console.Format(console.LevelError, res.Name))
		}
		if res.Detail != "" {
			fmt.Println(console.Detail(res.Detail))
		}
		if res.Err != nil {
			fmt.Println(console.Detail(res.Err.Error()))
			if hint := bootstrap.RemediationFor(res.Err); hint != "" {
				fmt.Println(console.Detail(hint))
			}
		}
	})

	tally := pipeline.Summarize(results)
	fmt.Println(console.Formatf(console.LevelInfo, "%d resources ok, %d failed", tally.Passed, tally.Failed))

	if !ok {
		return fmt.Errorf("bootstrap left %d resources unhealthy", tally.Failed)
	}
	return nil
}
