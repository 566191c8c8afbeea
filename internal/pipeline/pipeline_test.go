package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/pipeline"

	"github.com/stretchr/testify/assert"
)

func TestRun_FailureDoesNotAbortRemainingSteps(t *testing.T) {
	var order []string
	steps := []pipeline.Step{
		{Name: "first", Run: func(ctx context.Context) (string, error) {
			order = append(order, "first")
			return "", errors.New("boom")
		}},
		{Name: "second", Run: func(ctx context.Context) (string, error) {
			order = append(order, "second")
			return "ok", nil
		}},
	}

	results := (&pipeline.Runner{}).Run(context.Background(), steps)

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, pipeline.Failed, results[0].Outcome)
	assert.Equal(t, pipeline.Succeeded, results[1].Outcome)
}

func TestRun_SkipIsNotFailure(t *testing.T) {
	steps := []pipeline.Step{
		{Name: "fixture-dependent", Run: func(ctx context.Context) (string, error) {
			return "", fmt.Errorf("sample audio not on disk: %w", pipeline.ErrSkip)
		}},
	}

	results := (&pipeline.Runner{}).Run(context.Background(), steps)
	assert.Equal(t, pipeline.Skipped, results[0].Outcome)
	assert.True(t, pipeline.AllSucceeded(results))

	tally := pipeline.Summarize(results)
	assert.Equal(t, 0, tally.Failed)
	assert.Equal(t, 1, tally.Skipped)
}

func TestSummarize(t *testing.T) {
	results := []pipeline.Result{
		{Outcome: pipeline.Succeeded},
		{Outcome: pipeline.Succeeded},
		{Outcome: pipeline.Failed},
		{Outcome: pipeline.Skipped},
	}

	tally := pipeline.Summarize(results)
	assert.Equal(t, pipeline.Tally{Passed: 2, Failed: 1, Skipped: 1}, tally)
	assert.False(t, pipeline.AllSucceeded(results))
}

func TestRun_ObserverSeesTerminalStates(t *testing.T) {
	var seen []pipeline.Outcome
	runner := &pipeline.Runner{Observer: func(r pipeline.Result) {
		seen = append(seen, r.Outcome)
	}}

	runner.Run(context.Background(), []pipeline.Step{
		{Name: "a", Run: func(ctx context.Context) (string, error) { return "", nil }},
		{Name: "b", Run: func(ctx context.Context) (string, error) { return "", errors.New("x") }},
	})

	assert.Equal(t, []pipeline.Outcome{pipeline.Succeeded, pipeline.Failed}, seen)
}
