// Package runner drives one accessibility run against a page.
//
// Run launches a browser through the given engine, opens the target, runs the
// selected checkers in order and writes a full-page screenshot. The first
// failure ends the run; the browser session is closed on every path.
//
// Usage Example:
//
//	rc := runner.NewRunContext(ctx).
//	    WithTargetURL("http://localhost:8000").
//	    WithScreenshotPath("verification/a11y_check.png")
//
//	report, err := runner.Run(rc, pwengine.New(logger), output.NewStreamingOutput())
//	if err != nil {
//	    // errors.Is(err, common.ErrAssertion), common.ErrNavigation, ...
//	}
//	fmt.Println(report.Passed())
package runner
