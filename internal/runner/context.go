package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/R167/a11ycheck/checkers/common"
)

// RunContext carries the target and settings for one accessibility run.
//
// The context uses a builder pattern for easy construction:
//
//	rc := NewRunContext(context.Background()).
//	    WithTargetURL("http://localhost:8000").
//	    WithAssertTimeout(5 * time.Second)
type RunContext struct {
	Ctx               context.Context
	TargetURL         string
	ScreenshotPath    string
	Headless          bool
	GlobalTimeout     time.Duration
	AssertTimeout     time.Duration
	NavigationTimeout time.Duration
	Preflight         bool
	AllowRemote       bool
	Checkers          []string
	Logger            *slog.Logger
}

func NewRunContext(ctx context.Context) *RunContext {
	return &RunContext{
		Ctx:               ctx,
		TargetURL:         common.DefaultTargetURL,
		ScreenshotPath:    common.DefaultScreenshotPath,
		Headless:          true,
		AssertTimeout:     common.AssertTimeout,
		NavigationTimeout: common.NavigationTimeout,
		Preflight:         true,
		Logger:            slog.New(slog.DiscardHandler),
	}
}

func (rc *RunContext) WithTargetURL(url string) *RunContext {
	rc.TargetURL = url
	return rc
}

// WithScreenshotPath sets where the capture is written. An empty path skips it.
func (rc *RunContext) WithScreenshotPath(path string) *RunContext {
	rc.ScreenshotPath = path
	return rc
}

func (rc *RunContext) WithHeadless(headless bool) *RunContext {
	rc.Headless = headless
	return rc
}

func (rc *RunContext) WithGlobalTimeout(timeout time.Duration) *RunContext {
	rc.GlobalTimeout = timeout
	return rc
}

func (rc *RunContext) WithAssertTimeout(timeout time.Duration) *RunContext {
	rc.AssertTimeout = timeout
	return rc
}

func (rc *RunContext) WithNavigationTimeout(timeout time.Duration) *RunContext {
	rc.NavigationTimeout = timeout
	return rc
}

func (rc *RunContext) WithPreflight(enabled bool) *RunContext {
	rc.Preflight = enabled
	return rc
}

func (rc *RunContext) WithAllowRemote(allow bool) *RunContext {
	rc.AllowRemote = allow
	return rc
}

// WithCheckers restricts the run to the named checkers. Nil means all.
func (rc *RunContext) WithCheckers(names ...string) *RunContext {
	rc.Checkers = names
	return rc
}

func (rc *RunContext) WithLogger(logger *slog.Logger) *RunContext {
	if logger != nil {
		rc.Logger = logger
	}
	return rc
}
