package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/R167/a11ycheck/checkers/common"
)

// Condition accepts an element state or explains why it is not acceptable yet.
type Condition func(selector string, state ElementState) error

// Exists fails with LocatorNotFound until the selector matches something.
func Exists(selector string, state ElementState) error {
	if state.Count == 0 {
		return &common.AssertionError{Kind: common.LocatorNotFound, Selector: selector}
	}
	return nil
}

// Unique rejects selectors that resolve to more than one element, the way
// Playwright's strict locators do.
func Unique(selector string, state ElementState) error {
	if state.Count > 1 {
		return &common.AssertionError{
			Kind:     common.MultipleMatches,
			Selector: selector,
			Want:     "1 element",
			Got:      fmt.Sprintf("%d elements", state.Count),
		}
	}
	return nil
}

// All chains conditions; the first rejection wins.
func All(conds ...Condition) Condition {
	return func(selector string, state ElementState) error {
		for _, c := range conds {
			if err := c(selector, state); err != nil {
				return err
			}
		}
		return nil
	}
}

// Expect polls page until cond accepts the state of selector or timeout
// elapses, returning the last rejection together with the last state seen.
// Engine errors end polling at once. A non-positive timeout makes a single
// attempt.
func Expect(ctx context.Context, page Page, selector string, timeout time.Duration, cond Condition, attrs ...string) (ElementState, error) {
	op := func() (ElementState, error) {
		state, err := page.Inspect(ctx, selector, attrs...)
		if err != nil {
			return state, backoff.Permanent(err)
		}
		if err := cond(selector, state); err != nil {
			return state, err
		}
		return state, nil
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(backoff.NewConstantBackOff(common.PollInterval)),
	}
	if timeout > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(timeout))
	} else {
		opts = append(opts, backoff.WithMaxTries(1))
	}

	state, err := backoff.Retry(ctx, op, opts...)

	// Retry returns before unwrapping when MaxTries is hit first.
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Err
	}
	return state, err
}
