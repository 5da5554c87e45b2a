package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/R167/a11ycheck/checkers"
	"github.com/R167/a11ycheck/checkers/common"
	"github.com/R167/a11ycheck/internal/browser"
	"github.com/R167/a11ycheck/internal/checker"
	"github.com/R167/a11ycheck/internal/output"
	"github.com/R167/a11ycheck/internal/security"
)

// Run executes the selected checkers against rc.TargetURL and writes the
// screenshot. The report is returned on failure too and holds every result up
// to and including the failing one.
func Run(rc *RunContext, engine browser.Engine, out output.Output) (*common.Report, error) {
	start := time.Now()
	report := &common.Report{TargetURL: rc.TargetURL, Engine: engine.Name()}
	defer func() { report.Duration = time.Since(start) }()

	selected, err := checkers.Select(rc.Checkers)
	if err != nil {
		return report, err
	}

	target, err := security.ValidateTargetURL(rc.TargetURL, rc.AllowRemote)
	if err != nil {
		return report, err
	}

	ctx := rc.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if rc.GlobalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rc.GlobalTimeout)
		defer cancel()
	}

	logger := rc.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("target", target.String(), "engine", engine.Name())

	out.Header(fmt.Sprintf("Accessibility check: %s", target))
	out.Info("Engine: %s (headless: %t)", engine.Name(), rc.Headless)

	if rc.Preflight {
		client := security.NewPreflightHTTPClient(security.DefaultPreflightClientConfig())
		status, err := security.Preflight(ctx, client, target.String(), security.DefaultPreflightClientConfig().MaxResponseSize)
		if err != nil {
			return report, fmt.Errorf("%w: %v", common.ErrNavigation, err)
		}
		logger.Debug("preflight done", "status", status)
		if status < 200 || status > 299 {
			// Not fatal; navigation and the checks decide.
			out.Warning("%s answered HTTP %d", target, status)
		}
	}

	session, err := engine.Launch(ctx, browser.LaunchOptions{
		Headless:          rc.Headless,
		NavigationTimeout: rc.NavigationTimeout,
	})
	if err != nil {
		return report, fmt.Errorf("%w: launch %s: %v", common.ErrBrowser, engine.Name(), err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("closing browser session", "error", err)
		}
	}()

	page, err := session.NewPage(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: new page: %v", common.ErrBrowser, err)
	}

	logger.Debug("navigating")
	out.Debug("navigating to %s", target)
	if err := page.Goto(ctx, target.String()); err != nil {
		return report, fmt.Errorf("%w: %s: %v", common.ErrNavigation, target, err)
	}

	env := &checker.Env{
		Page:    page,
		Out:     out,
		Timeout: rc.AssertTimeout,
		Record: func(r common.CheckResult) {
			report.Results = append(report.Results, r)
		},
	}

	for _, c := range selected {
		out.Section(c.Icon(), c.Title())
		logger.Debug("running checker", "checker", c.Name())
		out.Debug("running %s checker with %v per assertion", c.Name(), rc.AssertTimeout)
		if err := c.Run(ctx, env); err != nil {
			return report, err
		}
	}

	if rc.ScreenshotPath != "" {
		n, err := capture(ctx, page, rc.ScreenshotPath)
		if err != nil {
			return report, err
		}
		report.ScreenshotPath = rc.ScreenshotPath
		out.Debug("wrote %d bytes to %s", n, rc.ScreenshotPath)
		out.Println("📸 Screenshot taken.")
	}

	out.Println("")
	out.Success("All %d checks passed", len(report.Results))
	return report, nil
}

// capture writes a full-page PNG to path, replacing any existing file, and
// returns its size. The parent directory must already exist.
func capture(ctx context.Context, page browser.Page, path string) (int, error) {
	img, err := page.Screenshot(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrScreenshot, err)
	}
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrScreenshot, err)
	}
	return len(img), nil
}
