package verify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/moshehbenavraham/graphmind/internal/types"
)

// Runner executes a fixed, ordered step sequence with fail-fast semantics.
// Steps run strictly one after another; no step begins before the previous
// one completed, every step is attempted at most once, and the first failure
// aborts the run. Retries are deliberately absent: transient-failure handling
// belongs to the transport, not this layer.
type Runner struct {
	steps    []Step
	reporter Reporter
	log      zerolog.Logger
}

// NewRunner creates a Runner over the given step sequence. The sequence must
// be ordered so that each step's preconditions are established by the side
// effects of all prior steps.
func NewRunner(steps []Step, reporter Reporter, log zerolog.Logger) *Runner {
	return &Runner{
		steps:    steps,
		reporter: reporter,
		log:      log,
	}
}

// Run executes the sequence and returns the aggregate result. The remote
// graph is mutated as the run proceeds; a failure partway leaves it in a
// partially populated state, which the caller may surface but this layer does
// not repair.
func (r *Runner) Run(ctx context.Context) RunResult {
	runID := uuid.NewString()
	start := time.Now()
	log := r.log.With().Str("run_id", runID).Logger()

	log.Info().Int("steps", len(r.steps)).Msg("verification run started")

	for i, step := range r.steps {
		r.reporter.StepStarted(step.Index, step.Name)
		log.Debug().Int("step", step.Index).Str("name", step.Name).Msg("step started")

		stepStart := time.Now()
		outcome := step.Run(ctx)
		elapsed := time.Since(stepStart)

		if !outcome.Success {
			err := outcome.Err
			if err == nil {
				err = types.NewError(types.VERIFY_STEP_FAILED, "step failed without detail")
			}
			r.reporter.StepFailed(step.Name, err)
			log.Error().Int("step", step.Index).Str("name", step.Name).
				Dur("elapsed", elapsed).Err(err).Msg("step failed, aborting run")

			result := RunResult{
				RunID:      runID,
				Passed:     false,
				StepsRun:   i,
				FailedStep: step.Index,
				FailedName: step.Name,
				Err: types.WrapError(types.VERIFY_ABORTED,
					"run aborted at step "+step.Name, err),
				Duration: time.Since(start),
			}
			r.reporter.Summary(result)
			return result
		}

		r.reporter.StepSucceeded(outcome)
		log.Debug().Int("step", step.Index).Str("name", step.Name).
			Dur("elapsed", elapsed).Msg("step succeeded")
	}

	result := RunResult{
		RunID:    runID,
		Passed:   true,
		StepsRun: len(r.steps),
		Duration: time.Since(start),
	}
	log.Info().Dur("duration", result.Duration).Msg("verification run passed")
	r.reporter.Summary(result)
	return result
}
