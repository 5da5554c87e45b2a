package labels

import (
	"context"
	"fmt"
	"strings"

	"github.com/R167/a11ycheck/checkers/common"
	"github.com/R167/a11ycheck/internal/browser"
	"github.com/R167/a11ycheck/internal/checker"
)

// DefaultAssociations is the ordered label checklist for the player controls.
var DefaultAssociations = []common.LabelAssociation{
	{ElementID: "transitionSelect", ExpectedText: "Transition"},
	{ElementID: "transitionDurRange", ExpectedText: "Transition Time"},
	{ElementID: "speedRange", ExpectedText: "Speed"},
	{ElementID: "resolutionRange", ExpectedText: "Resolution"},
	{ElementID: "contrastRange", ExpectedText: "Contrast"},
	{ElementID: "slideDuration", ExpectedText: "Duration"},
	{ElementID: "timelineZoom", ExpectedText: "Zoom"},
}

type LabelChecker struct {
	Associations []common.LabelAssociation
}

func NewLabelChecker() checker.Checker {
	return &LabelChecker{Associations: DefaultAssociations}
}

func (c *LabelChecker) Name() string {
	return "labels"
}

func (c *LabelChecker) Description() string {
	return "Form controls have a visible <label for> with the expected text"
}

func (c *LabelChecker) Icon() string {
	return "🏷️"
}

func (c *LabelChecker) Title() string {
	return "Checking labels..."
}

func (c *LabelChecker) Run(ctx context.Context, env *checker.Env) error {
	for _, a := range c.Associations {
		if err := checkAssociation(ctx, env, a); err != nil {
			env.Fail(c.Name(), a.ElementID, err)
			return fmt.Errorf("label for %s: %w", a.ElementID, err)
		}
		env.Success(c.Name(), a.ElementID, fmt.Sprintf("label contains %q", a.ExpectedText),
			"Label for %s found and associated correctly.", a.ElementID)
	}
	return nil
}

func checkAssociation(ctx context.Context, env *checker.Env, a common.LabelAssociation) error {
	sel := a.Selector()

	if _, err := env.Expect(ctx, sel, browser.All(browser.Exists, browser.Unique, visible)); err != nil {
		return err
	}

	_, err := env.Expect(ctx, sel, browser.All(browser.Exists, browser.Unique, containsText(a.ExpectedText)))
	return err
}

func visible(selector string, state browser.ElementState) error {
	if !state.Visible {
		return &common.AssertionError{Kind: common.NotVisible, Selector: selector}
	}
	return nil
}

// containsText is a substring match on whitespace-collapsed text, so
// "Transition Type" satisfies "Transition".
func containsText(want string) browser.Condition {
	want = normalizeSpace(want)
	return func(selector string, state browser.ElementState) error {
		got := normalizeSpace(state.Text)
		if !strings.Contains(got, want) {
			return &common.AssertionError{
				Kind:     common.TextMismatch,
				Selector: selector,
				Want:     want,
				Got:      got,
			}
		}
		return nil
	}
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
