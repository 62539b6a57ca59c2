package verify

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingReporter captures reporter events for assertions.
type recordingReporter struct {
	started   []string
	succeeded []string
	failed    []string
	summaries []RunResult
}

func (r *recordingReporter) Banner(string) {}
func (r *recordingReporter) Info(string)   {}
func (r *recordingReporter) StepStarted(index int, name string) {
	r.started = append(r.started, name)
}
func (r *recordingReporter) StepSucceeded(outcome Outcome) {
	r.succeeded = append(r.succeeded, outcome.Message)
}
func (r *recordingReporter) StepFailed(name string, err error) {
	r.failed = append(r.failed, name)
}
func (r *recordingReporter) Summary(result RunResult) {
	r.summaries = append(r.summaries, result)
}

func passingStep(name string, executed *[]string) Step {
	return Step{Name: name, Run: func(ctx context.Context) Outcome {
		*executed = append(*executed, name)
		return Success(name + " done")
	}}
}

func TestRunner_ExecutesStepsInOrder(t *testing.T) {
	var executed []string
	steps := []Step{
		passingStep("first", &executed),
		passingStep("second", &executed),
		passingStep("third", &executed),
	}
	for i := range steps {
		steps[i].Index = i + 1
	}

	reporter := &recordingReporter{}
	result := NewRunner(steps, reporter, zerolog.Nop()).Run(context.Background())

	assert.True(t, result.Passed)
	assert.Equal(t, 0, result.ExitCode())
	assert.Equal(t, 3, result.StepsRun)
	assert.Equal(t, []string{"first", "second", "third"}, executed)
	assert.Equal(t, []string{"first", "second", "third"}, reporter.started)
	assert.Empty(t, reporter.failed)
	require.Len(t, reporter.summaries, 1)
	assert.True(t, reporter.summaries[0].Passed)
}

func TestRunner_FailFast(t *testing.T) {
	var executed []string
	boom := errors.New("server rejected statement")
	steps := []Step{
		passingStep("first", &executed),
		{Index: 2, Name: "second", Run: func(ctx context.Context) Outcome {
			executed = append(executed, "second")
			return Fail(boom)
		}},
		passingStep("third", &executed),
	}
	steps[0].Index = 1
	steps[2].Index = 3

	reporter := &recordingReporter{}
	result := NewRunner(steps, reporter, zerolog.Nop()).Run(context.Background())

	assert.False(t, result.Passed)
	assert.Equal(t, 1, result.ExitCode())
	assert.Equal(t, 1, result.StepsRun)
	assert.Equal(t, 2, result.FailedStep)
	assert.Equal(t, "second", result.FailedName)
	require.ErrorIs(t, result.Err, boom)

	// The third step never executes once the second fails.
	assert.Equal(t, []string{"first", "second"}, executed)
	assert.Equal(t, []string{"second"}, reporter.failed)
	require.Len(t, reporter.summaries, 1)
	assert.False(t, reporter.summaries[0].Passed)
}

func TestRunner_FailedOutcomeAlwaysCarriesDetail(t *testing.T) {
	steps := []Step{{Index: 1, Name: "broken", Run: func(ctx context.Context) Outcome {
		return Outcome{} // failure with no error set
	}}}

	result := NewRunner(steps, NewNopReporter(), zerolog.Nop()).Run(context.Background())

	assert.False(t, result.Passed)
	require.Error(t, result.Err)
	assert.NotEmpty(t, result.Err.Error())
}

func TestRunner_RunIDsAreUnique(t *testing.T) {
	steps := []Step{{Index: 1, Name: "only", Run: func(ctx context.Context) Outcome {
		return Success("ok")
	}}}
	runner := NewRunner(steps, NewNopReporter(), zerolog.Nop())

	first := runner.Run(context.Background())
	second := runner.Run(context.Background())

	assert.NotEmpty(t, first.RunID)
	assert.NotEqual(t, first.RunID, second.RunID)
}
