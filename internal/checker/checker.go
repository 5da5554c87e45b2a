package checker

import (
	"context"
	"errors"
	"time"

	"github.com/R167/a11ycheck/checkers/common"
	"github.com/R167/a11ycheck/internal/browser"
	"github.com/R167/a11ycheck/internal/output"
)

// Checker runs one fixed group of assertions against a loaded page. Run stops
// at the first failing assertion and returns its error.
type Checker interface {
	Name() string
	Description() string
	Icon() string
	Title() string
	Run(ctx context.Context, env *Env) error
}

// Env is what a checker gets for one run.
type Env struct {
	Page    browser.Page
	Out     output.Output
	Timeout time.Duration
	Record  func(common.CheckResult)
}

func (e *Env) out() output.Output {
	if e.Out == nil {
		return output.NewNoOpOutput()
	}
	return e.Out
}

func (e *Env) record(r common.CheckResult) {
	if e.Record != nil {
		e.Record(r)
	}
}

// Expect polls selector with the run's assertion timeout. The last state seen
// is printed as a debug line when the condition never holds.
func (e *Env) Expect(ctx context.Context, selector string, cond browser.Condition, attrs ...string) (browser.ElementState, error) {
	out := e.out()
	out.Debug("waiting up to %v for %s", e.Timeout, selector)

	state, err := browser.Expect(ctx, e.Page, selector, e.Timeout, cond, attrs...)
	if err != nil {
		out.Debug("%s: count=%d visible=%t text=%q attrs=%v", selector, state.Count, state.Visible, state.Text, state.Attrs)
	}
	return state, err
}

// Success records a passing assertion and prints its progress line.
func (e *Env) Success(checker, target, message, format string, args ...interface{}) {
	e.record(common.CheckResult{Checker: checker, Target: target, Passed: true, Message: message})
	e.out().Success(format, args...)
}

// Fail records a failing assertion and prints it, with expected and actual
// values underneath for mismatches.
func (e *Env) Fail(checker, target string, err error) {
	e.record(common.CheckResult{Checker: checker, Target: target, Passed: false, Message: err.Error()})

	out := e.out()
	out.Error("%s", err)

	var ae *common.AssertionError
	if !errors.As(err, &ae) {
		return
	}
	switch ae.Kind {
	case common.TextMismatch:
		out.Detail("expected: %q", ae.Want)
		out.Detail("found:    %q", ae.Got)
	case common.AttributeMismatch:
		out.Detail("expected: %q", ae.Want)
		out.Detail("found:    %s", ae.Got)
	case common.MultipleMatches:
		out.Detail("expected: %s", ae.Want)
		out.Detail("found:    %s", ae.Got)
	}
}
