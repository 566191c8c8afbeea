// Package smoketest invokes each generative capability exactly once and
// reports pass/fail. No retries, no backoff: this is a probe, not
// production call logic.
package smoketest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/ai"
)

// DefaultPrompt is a neutral probe prompt; override it with --prompt.
const DefaultPrompt = "a simple flat icon of a cup of water"

// Outcome distinguishes the three result classes per call.
type Outcome string

const (
	// Pass is a hard success.
	Pass Outcome = "PASS"
	// SoftPass is a qualified success: a recognized fallback substituted
	// for the unavailable capability.
	SoftPass Outcome = "SOFT_PASS"
	// Fail is a hard failure, surfaced with the upstream message verbatim.
	Fail Outcome = "FAIL"
)

// Result is one capability's probe outcome.
type Result struct {
	Name    string
	Outcome Outcome
	Detail  string
}

// Generator is the slice of the AI client the smoke tester calls.
type Generator interface {
	GenerateIcon(ctx context.Context, prompt string) (*ai.ImageResult, error)
	AnalyzeImageWithFallback(ctx context.Context, data []byte, mimeType string) (*ai.AnalysisResult, error)
	Synthesize(ctx context.Context, text string) (*ai.SpeechResult, error)
}

type Tester struct {
	gen        Generator
	outputDir  string
	prompt     string
	includeTTS bool
}

func New(gen Generator, outputDir, prompt string, includeTTS bool) *Tester {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &Tester{gen: gen, outputDir: outputDir, prompt: prompt, includeTTS: includeTTS}
}

// Run probes text-to-image, then feeds the output into image analysis, then
// optionally text-to-speech. Each capability is called exactly once.
func (t *Tester) Run(ctx context.Context) []Result {
	var results []Result

	image, err := t.gen.GenerateIcon(ctx, t.prompt)
	if err != nil {
		results = append(results, Result{Name: "text-to-image", Outcome: Fail, Detail: err.Error()})
		// Analysis has no input without an image; report it unexercised.
		results = append(results, Result{Name: "image-analysis", Outcome: Fail, Detail: "no image to analyze"})
		return t.maybeTTS(ctx, results)
	}

	detail := fmt.Sprintf("%d bytes, %s, model %s", len(image.Data), image.MIMEType, image.Model)
	if path, err := t.persist(image); err != nil {
		detail += fmt.Sprintf(" (not saved: %v)", err)
	} else {
		detail += ", saved to " + path
	}
	results = append(results, Result{Name: "text-to-image", Outcome: Pass, Detail: detail})

	analysis, err := t.gen.AnalyzeImageWithFallback(ctx, image.Data, image.MIMEType)
	switch {
	case err != nil:
		results = append(results, Result{Name: "image-analysis", Outcome: Fail, Detail: err.Error()})
	case analysis.Fallback:
		results = append(results, Result{
			Name:    "image-analysis",
			Outcome: SoftPass,
			Detail:  fmt.Sprintf("vision unavailable (%s); heuristic description: %s", analysis.Warning, analysis.Description),
		})
	default:
		results = append(results, Result{Name: "image-analysis", Outcome: Pass, Detail: analysis.Description})
	}

	return t.maybeTTS(ctx, results)
}

func (t *Tester) maybeTTS(ctx context.Context, results []Result) []Result {
	if !t.includeTTS {
		return results
	}
	speech, err := t.gen.Synthesize(ctx, "hello")
	if err != nil {
		return append(results, Result{Name: "text-to-speech", Outcome: Fail, Detail: err.Error()})
	}
	return append(results, Result{
		Name:    "text-to-speech",
		Outcome: Pass,
		Detail:  fmt.Sprintf("%d bytes, %s", len(speech.Data), speech.MIMEType),
	})
}

func (t *Tester) persist(image *ai.ImageResult) (string, error) {
	if t.outputDir == "" {
		return "", fmt.Errorf("no output directory configured")
	}
	if err := os.MkdirAll(t.outputDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(t.outputDir, "smoketest"+extensionFor(image.MIMEType))
	if err := os.WriteFile(path, image.Data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func extensionFor(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "png"):
		return ".png"
	case strings.Contains(mimeType, "jpeg"), strings.Contains(mimeType, "jpg"):
		return ".jpg"
	case strings.Contains(mimeType, "webp"):
		return ".webp"
	default:
		return ".bin"
	}
}

// AllPassed reports overall success; soft passes count as qualified success.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if r.Outcome == Fail {
			return false
		}
	}
	return true
}
