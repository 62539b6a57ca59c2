package verify

import (
	"context"
	"fmt"
	"time"

	"github.com/moshehbenavraham/graphmind/internal/types"
)

// Step is one ordered unit of the verification protocol: a single database
// operation plus the validation of its result. Steps are created statically,
// never mutated, and each runs exactly once per invocation.
type Step struct {
	// Index is the step's fixed 1-based position in the protocol.
	Index int

	// Name is the human-readable step name shown in reports.
	Name string

	// Run performs the database call and validates the response.
	Run func(ctx context.Context) Outcome
}

// Observation is one named detail of a successful step, e.g. "Nodes created"
// with value "5". Order is preserved for reporting.
type Observation struct {
	Label string
	Value string
}

// Obs builds an Observation, formatting the value with fmt.Sprint rules.
func Obs(label string, value any) Observation {
	return Observation{Label: label, Value: fmt.Sprint(value)}
}

// Outcome is the result of executing one step: either success with a headline
// and named observations, or failure with a non-empty cause.
type Outcome struct {
	Success      bool
	Message      string
	Observations []Observation
	Err          error
}

// Success builds a successful Outcome.
func Success(message string, observations ...Observation) Outcome {
	return Outcome{
		Success:      true,
		Message:      message,
		Observations: observations,
	}
}

// Fail builds a failed Outcome from a client or transport error.
func Fail(err error) Outcome {
	if err == nil {
		err = types.NewError(types.VERIFY_STEP_FAILED, "step failed without detail")
	}
	return Outcome{Err: err}
}

// Failf builds a failed Outcome from a validation assertion. Assertion
// failures are not distinguished from client errors downstream; both abort
// the run.
func Failf(format string, args ...any) Outcome {
	return Outcome{
		Err: types.NewError(types.VERIFY_ASSERTION_FAILED, fmt.Sprintf(format, args...)),
	}
}

// RunResult is the aggregate outcome of one full protocol run. It is the
// process-level contract: Passed maps to exit status 0, anything else to 1.
type RunResult struct {
	// RunID identifies this run in structured logs.
	RunID string

	// Passed is true when every step succeeded.
	Passed bool

	// StepsRun counts the steps that completed successfully.
	StepsRun int

	// FailedStep is the 1-based index of the failing step, 0 when Passed.
	FailedStep int

	// FailedName is the name of the failing step, empty when Passed.
	FailedName string

	// Err is the failing step's cause, nil when Passed.
	Err error

	// Duration is the wall-clock time of the whole run.
	Duration time.Duration
}

// ExitCode maps the run result onto the process exit status.
func (r RunResult) ExitCode() int {
	if r.Passed {
		return 0
	}
	return 1
}
