package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/R167/a11ycheck/checkers/common"
	"github.com/R167/a11ycheck/internal/browser"
	"github.com/R167/a11ycheck/internal/config"
	"github.com/R167/a11ycheck/internal/output"
	"github.com/R167/a11ycheck/internal/runner"
	"github.com/R167/a11ycheck/internal/security"
)

// Checks binds the tool handlers to a loaded configuration.
type Checks struct {
	Config    *config.Config
	Logger    *slog.Logger
	NewEngine func() (browser.Engine, error)
}

// DefaultRegistry registers check_accessibility, check_labels and check_buttons.
func DefaultRegistry(c *Checks) *CheckerRegistry {
	r := NewCheckerRegistry()
	r.Register("check_accessibility", c.check(nil, true))
	r.Register("check_labels", c.check([]string{"labels"}, false))
	r.Register("check_buttons", c.check([]string{"buttons"}, false))
	return r
}

// check returns a handler running the named checkers. Only full runs write the
// configured screenshot by default; subsets write one when the caller asks.
func (c *Checks) check(names []string, screenshot bool) CheckFunction {
	return func(ctx context.Context, input *CheckToolInput) (*CheckToolOutput, error) {
		cfg := c.Config

		target := cfg.TargetURL
		if input.URL != "" {
			target = input.URL
		}

		shot := ""
		if screenshot {
			shot = cfg.ScreenshotPath
		}
		if input.ScreenshotPath != "" {
			if err := security.ValidateScreenshotPath(input.ScreenshotPath); err != nil {
				return nil, err
			}
			shot = input.ScreenshotPath
		}

		engine, err := c.NewEngine()
		if err != nil {
			return nil, err
		}

		rc := runner.NewRunContext(ctx).
			WithTargetURL(target).
			WithScreenshotPath(shot).
			WithHeadless(cfg.Headless).
			WithGlobalTimeout(cfg.Timeout).
			WithAssertTimeout(cfg.AssertTimeout).
			WithNavigationTimeout(cfg.NavigationTimeout).
			WithPreflight(cfg.Preflight).
			WithAllowRemote(cfg.AllowRemote).
			WithCheckers(names...).
			WithLogger(c.Logger)

		buf := output.NewBufferedOutput()
		report, err := runner.Run(rc, engine, buf)
		if err != nil && !isCheckFailure(err) {
			return nil, err
		}

		out := &CheckToolOutput{
			Passed:  err == nil && report.Passed(),
			Results: report.Results,
			Report:  buf.String(),
		}
		if out.Results == nil {
			out.Results = []common.CheckResult{}
		}
		out.Summary = summarize(report, err)
		return out, nil
	}
}

// summarize names the failing check when one was recorded. Navigation,
// browser and screenshot failures happen outside any check.
func summarize(report *common.Report, err error) string {
	if err == nil {
		return fmt.Sprintf("All %d checks passed", len(report.Results))
	}
	if f := report.Failed(); f != nil {
		return fmt.Sprintf("Failed: %s %s: %s", f.Checker, f.Target, f.Message)
	}
	return fmt.Sprintf("Failed: %v", err)
}

// isCheckFailure separates a page that fails the checks, reported as
// passed=false, from a bad request, reported as a tool error.
func isCheckFailure(err error) bool {
	return errors.Is(err, common.ErrAssertion) ||
		errors.Is(err, common.ErrNavigation) ||
		errors.Is(err, common.ErrBrowser) ||
		errors.Is(err, common.ErrScreenshot)
}
