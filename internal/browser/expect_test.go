package browser_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R167/a11ycheck/checkers/common"
	"github.com/R167/a11ycheck/internal/browser"
	"github.com/R167/a11ycheck/internal/browser/browsertest"
)

func TestExpect_ImmediateMatch(t *testing.T) {
	page := browsertest.NewPage(map[string]*browsertest.Element{
		"#btn": {Visible: true, Attrs: map[string]string{"aria-label": "Go"}},
	})

	state, err := browser.Expect(context.Background(), page, "#btn", time.Second, browser.Exists, "aria-label")
	require.NoError(t, err)

	assert.Equal(t, 1, state.Count)
	v, ok := state.Attr("aria-label")
	assert.True(t, ok)
	assert.Equal(t, "Go", v)
	assert.Len(t, page.Inspected(), 1)
}

func TestExpect_EventuallyAppears(t *testing.T) {
	page := browsertest.NewPage(map[string]*browsertest.Element{
		"#late": {Visible: true, ReadyAfter: 2},
	})

	state, err := browser.Expect(context.Background(), page, "#late", 2*time.Second, browser.Exists)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Count)
	assert.Len(t, page.Inspected(), 3)
}

func TestExpect_TimeoutReturnsLastRejection(t *testing.T) {
	page := browsertest.NewPage(nil)

	start := time.Now()
	_, err := browser.Expect(context.Background(), page, "#missing", 300*time.Millisecond, browser.Exists)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrLocatorNotFound)
	assert.ErrorIs(t, err, common.ErrAssertion)
	assert.Greater(t, len(page.Inspected()), 1, "should poll more than once")
	assert.Less(t, elapsed, 2*time.Second)
}

func TestExpect_ZeroTimeoutSingleAttempt(t *testing.T) {
	page := browsertest.NewPage(nil)

	_, err := browser.Expect(context.Background(), page, "#missing", 0, browser.Exists)
	assert.ErrorIs(t, err, common.ErrLocatorNotFound)
	assert.Len(t, page.Inspected(), 1)
}

func TestExpect_EngineErrorStopsPolling(t *testing.T) {
	boom := errors.New("target closed")
	page := browsertest.NewPage(nil)
	page.InspectErr = boom

	_, err := browser.Expect(context.Background(), page, "#x", 5*time.Second, browser.Exists)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, page.Inspected(), 1)
}

func TestAll_FirstRejectionWins(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	cond := browser.All(
		func(string, browser.ElementState) error { return nil },
		func(string, browser.ElementState) error { return first },
		func(string, browser.ElementState) error { return second },
	)

	assert.Equal(t, first, cond("#x", browser.ElementState{}))
}

func TestExpect_ZeroTimeoutEngineErrorUnwrapped(t *testing.T) {
	boom := errors.New("target closed")
	page := browsertest.NewPage(nil)
	page.InspectErr = boom

	_, err := browser.Expect(context.Background(), page, "#x", 0, browser.Exists)
	assert.Equal(t, boom, err, "engine errors come back as-is")
	assert.Len(t, page.Inspected(), 1)
}

func TestExpect_ReturnsLastStateOnTimeout(t *testing.T) {
	page := browsertest.NewPage(map[string]*browsertest.Element{
		"#btn": {Visible: true, Attrs: map[string]string{"aria-label": "Add Image"}},
	})
	never := func(selector string, state browser.ElementState) error {
		return &common.AssertionError{Kind: common.AttributeMismatch, Selector: selector}
	}

	state, err := browser.Expect(context.Background(), page, "#btn", 150*time.Millisecond, never, "aria-label")
	require.Error(t, err)
	assert.Equal(t, 1, state.Count)
	assert.Equal(t, "Add Image", state.Attrs["aria-label"])
}

func TestUnique(t *testing.T) {
	assert.NoError(t, browser.Unique("#x", browser.ElementState{Count: 0}))
	assert.NoError(t, browser.Unique("#x", browser.ElementState{Count: 1}))

	err := browser.Unique("label[for='speedRange']", browser.ElementState{Count: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMultipleMatches)
	assert.ErrorIs(t, err, common.ErrAssertion)
	assert.Contains(t, err.Error(), "2 elements")
}

func TestExpect_DuplicateMatchesRejected(t *testing.T) {
	page := browsertest.NewPage(map[string]*browsertest.Element{
		"label[for='speedRange']": {Visible: true, Text: "Speed", Matches: 2},
	})

	_, err := browser.Expect(context.Background(), page, "label[for='speedRange']", 0, browser.All(browser.Exists, browser.Unique))
	assert.ErrorIs(t, err, common.ErrMultipleMatches)
}
