package main

import (
	"fmt"
	"time"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/config"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/console"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/pipeline"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/probe"

	"github.com/spf13/cobra"
)

var (
	probeDelay   time.Duration
	probeFixture string
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Drive the running API through the core feature scenarios",
	Long: `Exercises the running API end to end with a caller-supplied bearer
token (TEST_USER_TOKEN): icon generation with and without audio,
recorded-audio conversion, icon fetch, and the unauthenticated-rejection
path.

Scenarios are independent; missing preconditions (no token, no audio
fixture on disk) are reported as skipped, never failed. The command
always exits zero: the printed tally is the contract, not the exit
code.`,
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().DurationVar(&probeDelay, "delay", 2*time.Second, "pause between scenarios, for quota-sensitive backends")
	probeCmd.Flags().StringVar(&probeFixture, "fixture", "./testdata/sample-recording.wav", "recorded audio fixture for the conversion scenario")
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	p := probe.New(cfg.APIBaseURL, cfg.TestUserToken, probeFixture)

	fmt.Println(console.Header("API feature probe"))
	fmt.Println(console.Formatf(console.LevelInfo, "target %s", cfg.APIBaseURL))

	_, tally := p.Run(cmd.Context(), probeDelay, func(res pipeline.Result) {
		level := console.LevelSuccess
		switch res.Outcome {
		case pipeline.Skipped:
			level = console.LevelWarning
		case pipeline.Failed:
			level = console.LevelError
		}
		fmt.Println(console.Formatf(level, "%s: %s", res.Name, res.Outcome))
		if res.Detail != "" {
			fmt.Println(console.Detail(res.Detail))
		}
		if res.Err != nil {
			fmt.Println(console.Detail(res.Err.Error()))
		}
	})

	fmt.Println(console.Formatf(console.LevelInfo, "passed=%d failed=%d skipped=%d", tally.Passed, tally.Failed, tally.Skipped))
	return nil
}
