package verify

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Reporter renders run progress to an output stream. It is purely
// observational; nothing here feeds back into control flow.
type Reporter interface {
	// Banner emits a framed title line, used for the run header and footer.
	Banner(title string)

	// Info emits one informational line outside of any step.
	Info(message string)

	// StepStarted announces a step before its database call runs.
	StepStarted(index int, name string)

	// StepSucceeded renders a step's success headline and observations.
	StepSucceeded(outcome Outcome)

	// StepFailed renders a step's failure cause.
	StepFailed(name string, err error)

	// Summary renders the overall pass/fail result.
	Summary(result RunResult)
}

const bannerWidth = 60

// ConsoleReporter writes colorized status lines, one per event.
type ConsoleReporter struct {
	w io.Writer

	header  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
	bold    lipgloss.Style
}

// NewConsoleReporter creates a reporter writing to w. With color disabled all
// styling is dropped, which keeps output stable for pipes and CI logs.
func NewConsoleReporter(w io.Writer, color bool) *ConsoleReporter {
	r := &ConsoleReporter{w: w}
	if color {
		r.header = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
		r.success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		r.failure = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		r.info = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		r.bold = lipgloss.NewStyle().Bold(true)
	}
	return r
}

func (r *ConsoleReporter) Banner(title string) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(r.w, r.bold.Render(rule))
	fmt.Fprintln(r.w, r.bold.Render(title))
	fmt.Fprintln(r.w, r.bold.Render(rule))
}

func (r *ConsoleReporter) Info(message string) {
	fmt.Fprintln(r.w, r.info.Render("ℹ "+message))
}

func (r *ConsoleReporter) StepStarted(index int, name string) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.header.Render(fmt.Sprintf("Testing: %d. %s", index, name)))
}

func (r *ConsoleReporter) StepSucceeded(outcome Outcome) {
	fmt.Fprintln(r.w, r.success.Render("✓ "+outcome.Message))
	for _, obs := range outcome.Observations {
		fmt.Fprintln(r.w, r.info.Render(fmt.Sprintf("ℹ %s: %s", obs.Label, obs.Value)))
	}
}

func (r *ConsoleReporter) StepFailed(name string, err error) {
	fmt.Fprintln(r.w, r.failure.Render(fmt.Sprintf("✗ %s: %v", name, err)))
}

func (r *ConsoleReporter) Summary(result RunResult) {
	fmt.Fprintln(r.w)
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(r.w, r.bold.Render(rule))
	if result.Passed {
		fmt.Fprintln(r.w, r.success.Render(fmt.Sprintf(
			"✓ All %d steps passed in %s", result.StepsRun, result.Duration.Round(time.Millisecond))))
	} else {
		fmt.Fprintln(r.w, r.failure.Render(fmt.Sprintf(
			"✗ Failed at step %d (%s) after %d successful steps: %v",
			result.FailedStep, result.FailedName, result.StepsRun, result.Err)))
	}
	fmt.Fprintln(r.w, r.bold.Render(rule))
}

// nopReporter discards all output. Used by tests that only care about
// control flow.
type nopReporter struct{}

func (nopReporter) Banner(string)               {}
func (nopReporter) Info(string)                 {}
func (nopReporter) StepStarted(int, string)     {}
func (nopReporter) StepSucceeded(Outcome)       {}
func (nopReporter) StepFailed(string, error)    {}
func (nopReporter) Summary(RunResult)           {}

// NewNopReporter returns a Reporter that discards everything.
func NewNopReporter() Reporter {
	return nopReporter{}
}
