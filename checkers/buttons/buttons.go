package buttons

import (
	"context"
	"fmt"

	"github.com/R167/a11ycheck/checkers/common"
	"github.com/R167/a11ycheck/internal/browser"
	"github.com/R167/a11ycheck/internal/checker"
)

// DefaultAssertions is the ordered accessible-name checklist for icon buttons.
var DefaultAssertions = []common.ButtonAssertion{
	{ElementID: "addSlideBtn", ExpectedAriaLabel: "Add Images"},
	{ElementID: "deleteSlideBtn", ExpectedAriaLabel: "Delete Clip"},
}

type ButtonChecker struct {
	Assertions []common.ButtonAssertion
}

func NewButtonChecker() checker.Checker {
	return &ButtonChecker{Assertions: DefaultAssertions}
}

func (c *ButtonChecker) Name() string {
	return "buttons"
}

func (c *ButtonChecker) Description() string {
	return "Icon buttons carry the exact expected aria-label"
}

func (c *ButtonChecker) Icon() string {
	return "🔘"
}

func (c *ButtonChecker) Title() string {
	return "Checking buttons..."
}

func (c *ButtonChecker) Run(ctx context.Context, env *checker.Env) error {
	for _, b := range c.Assertions {
		sel := b.Selector()
		cond := browser.All(browser.Exists, browser.Unique, hasAttribute(common.AriaLabelAttr, b.ExpectedAriaLabel))
		if _, err := env.Expect(ctx, sel, cond, common.AriaLabelAttr); err != nil {
			env.Fail(c.Name(), b.ElementID, err)
			return fmt.Errorf("button %s: %w", b.ElementID, err)
		}
		env.Success(c.Name(), b.ElementID, fmt.Sprintf("%s=%q", common.AriaLabelAttr, b.ExpectedAriaLabel),
			"Button #%s has %s %q.", b.ElementID, common.AriaLabelAttr, b.ExpectedAriaLabel)
	}
	return nil
}

// hasAttribute is an exact, case-sensitive comparison.
func hasAttribute(name, want string) browser.Condition {
	return func(selector string, state browser.ElementState) error {
		got, ok := state.Attr(name)
		if ok && got == want {
			return nil
		}
		desc := "no " + name
		if ok {
			desc = fmt.Sprintf("%s=%q", name, got)
		}
		return &common.AssertionError{
			Kind:     common.AttributeMismatch,
			Selector: selector,
			Want:     want,
			Got:      desc,
		}
	}
}
