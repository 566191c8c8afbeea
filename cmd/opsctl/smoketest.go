package main

import (
	"fmt"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/ai"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/config"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/console"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/smoketest"

	"github.com/spf13/cobra"
)

var (
	smokePrompt string
	smokeOut    string
	smokeTTS    bool
)

var smoketestCmd = &cobra.Command{
	Use:   "smoketest",
	Short: "Call each generative AI capability exactly once",
	Long: `Probes the generative stack directly: one image generation, one image
analysis on the generated output, and optionally one speech synthesis.
No retries and no backoff; a quota or availability problem surfaces as
the upstream error message verbatim.

A heuristic description substituted for an unavailable vision model is a
qualified success, not a failure.`,
	RunE: runSmoketest,
}

func init() {
	smoketestCmd.Flags().StringVar(&smokePrompt, "prompt", smoketest.DefaultPrompt, "image generation prompt")
	smoketestCmd.Flags().StringVar(&smokeOut, "out", "./smoketest-out", "directory the generated image is saved to")
	smoketestCmd.Flags().BoolVar(&smokeTTS, "tts", false, "also probe text-to-speech")
}

func runSmoketest(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := ai.NewClient(cmd.Context(), ai.Config{
		APIKey:      cfg.GeminiAPIKey,
		ImageModel:  cfg.ImageModel,
		VisionModel: cfg.VisionModel,
		TTSModel:    cfg.TTSModel,
	})
	if err != nil {
		return err
	}

	tester := smoketest.New(client, smokeOut, smokePrompt, smokeTTS)

	fmt.Println(console.Header("Generative AI smoke test"))
	results := tester.Run(cmd.Context())
	for _, res := range results {
		level := console.LevelSuccess
		switch res.Outcome {
		case smoketest.SoftPass:
			level = console.LevelWarning
		case smoketest.Fail:
			level = console.LevelError
		}
		fmt.Println(console.Formatf(level, "%s: %s", res.Name, res.Outcome))
		if res.Detail != "" {
			fmt.Println(console.Detail(res.Detail))
		}
	}

	if !smoketest.AllPassed(results) {
		return fmt.Errorf("smoke test failed")
	}
	return nil
}
