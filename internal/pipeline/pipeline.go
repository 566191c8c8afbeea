// Package pipeline runs an ordered list of named steps and records one
// terminal outcome per step. Steps never retry and never transition
// backwards: NOT_STARTED -> RUNNING -> SUCCEEDED | FAILED | SKIPPED.
package pipeline

import (
	"context"
	"errors"
	"time"
)

// Outcome is a step's terminal state.
type Outcome string

const (
	NotStarted Outcome = "NOT_STARTED"
	Running    Outcome = "RUNNING"
	Succeeded  Outcome = "SUCCEEDED"
	Failed     Outcome = "FAILED"
	Skipped    Outcome = "SKIPPED"
)

// ErrSkip marks a step whose preconditions are absent. Skipping is not
// failure; wrap it with context via fmt.Errorf("...: %w", ErrSkip).
var ErrSkip = errors.New("step skipped")

// Step is one named unit of work. The detail string is shown to the
// operator regardless of outcome.
type Step struct {
	Name string
	Run  func(ctx context.Context) (detail string, err error)
}

// Result is a step's recorded outcome.
type Result struct {
	Name    string
	Outcome Outcome
	Detail  string
	Err     error
}

// Tally counts terminal outcomes.
type Tally struct {
	Passed  int
	Failed  int
	Skipped int
}

// Runner executes steps sequentially. A step failure never aborts the rest;
// failures accumulate in the results.
type Runner struct {
	// Delay inserted between steps, for quota-sensitive downstreams.
	Delay time.Duration
	// Observer, when set, is called as each step reaches a terminal state.
	Observer func(Result)
}

// Run executes every step and returns results in order.
func (r *Runner) Run(ctx context.Context, steps []Step) []Result {
	results := make([]Result, 0, len(steps))
	for i, step := range steps {
		if i > 0 && r.Delay > 0 {
			time.Sleep(r.Delay)
		}

		detail, err := step.Run(ctx)
		result := Result{Name: step.Name, Detail: detail, Err: err}
		switch {
		case err == nil:
			result.Outcome = Succeeded
		case errors.Is(err, ErrSkip):
			result.Outcome = Skipped
		default:
			result.Outcome = Failed
		}

		if r.Observer != nil {
			r.Observer(result)
		}
		results = append(results, result)
	}
	return results
}

// Summarize reduces results to a tally.
func Summarize(results []Result) Tally {
	var t Tally
	for _, res := range results {
		switch res.Outcome {
		case Succeeded:
			t.Passed++
		case Failed:
			t.Failed++
		case Skipped:
			t.Skipped++
		}
	}
	return t
}

// AllSucceeded reports whether every non-skipped step succeeded.
func AllSucceeded(results []Result) bool {
	for _, res := range results {
		if res.Outcome == Failed {
			return false
		}
	}
	return true
}
