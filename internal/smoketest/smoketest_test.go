package smoketest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/ai"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/smoketest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	imageErr    error
	analysisErr error
	fallback    bool
	speechErr   error
}

func (f *fakeGenerator) GenerateIcon(ctx context.Context, prompt string) (*ai.ImageResult, error) {
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	return &ai.ImageResult{Data: []byte{1, 2, 3}, MIMEType: "image/png", Model: "test-model"}, nil
}

func (f *fakeGenerator) AnalyzeImageWithFallback(ctx context.Context, data []byte, mimeType string) (*ai.AnalysisResult, error) {
	if f.analysisErr != nil {
		return nil, f.analysisErr
	}
	if f.fallback {
		return &ai.AnalysisResult{
			Description: ai.HeuristicDescription(mimeType, len(data)),
			Fallback:    true,
			Warning:     "vision model unavailable",
		}, nil
	}
	return &ai.AnalysisResult{Description: "a cup of water"}, nil
}

func (f *fakeGenerator) Synthesize(ctx context.Context, text string) (*ai.SpeechResult, error) {
	if f.speechErr != nil {
		return nil, f.speechErr
	}
	return &ai.SpeechResult{Data: []byte{9}, MIMEType: "audio/wav"}, nil
}

func TestRun_HardSuccess(t *testing.T) {
	tester := smoketest.New(&fakeGenerator{}, t.TempDir(), "", false)

	results := tester.Run(context.Background())

	require.Len(t, results, 2)
	assert.Equal(t, smoketest.Pass, results[0].Outcome)
	assert.Contains(t, results[0].Detail, "image/png")
	assert.Contains(t, results[0].Detail, "saved to")
	assert.Equal(t, smoketest.Pass, results[1].Outcome)
	assert.True(t, smoketest.AllPassed(results))
}

func TestRun_SoftFallbackIsQualifiedSuccess(t *testing.T) {
	tester := smoketest.New(&fakeGenerator{fallback: true}, t.TempDir(), "", false)

	results := tester.Run(context.Background())

	assert.Equal(t, smoketest.SoftPass, results[1].Outcome)
	assert.Contains(t, results[1].Detail, "heuristic description")
	assert.True(t, smoketest.AllPassed(results))
}

func TestRun_HardFailureSurfacesUpstreamMessage(t *testing.T) {
	upstream := errors.New("googleapi: Error 429: quota exceeded")
	tester := smoketest.New(&fakeGenerator{imageErr: upstream}, t.TempDir(), "", false)

	results := tester.Run(context.Background())

	assert.Equal(t, smoketest.Fail, results[0].Outcome)
	assert.Equal(t, upstream.Error(), results[0].Detail)
	assert.False(t, smoketest.AllPassed(results))
}

func TestRun_WithTTS(t *testing.T) {
	tester := smoketest.New(&fakeGenerator{}, t.TempDir(), "custom prompt", true)

	results := tester.Run(context.Background())

	require.Len(t, results, 3)
	assert.Equal(t, "text-to-speech", results[2].Name)
	assert.Equal(t, smoketest.Pass, results[2].Outcome)
}
