// Package pwengine drives Chromium through Playwright.
package pwengine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/R167/a11ycheck/internal/browser"
)

const Name = "playwright"

// inspectTimeout bounds the element evaluation that follows a non-zero Count.
// The element may vanish in between; Playwright would otherwise auto-wait.
const inspectTimeout = time.Second

// readScript receives the first matched element and the attribute names to read.
const readScript = `(el, names) => {
	const attrs = {};
	for (const n of names) {
		if (el.hasAttribute(n)) attrs[n] = el.getAttribute(n);
	}
	return { text: el.textContent || "", attrs };
}`

type Engine struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

func (e *Engine) Name() string {
	return Name
}

func (e *Engine) Launch(ctx context.Context, opts browser.LaunchOptions) (browser.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run(&playwright.RunOptions{Browsers: []string{"chromium"}})
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	e.logger.Debug("playwright browser launched", "headless", opts.Headless, "version", b.Version())
	return &session{pw: pw, browser: b, navTimeout: opts.NavigationTimeout, logger: e.logger}, nil
}

// Install downloads the Playwright driver and Chromium.
func Install() error {
	return playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}})
}

type session struct {
	pw         *playwright.Playwright
	browser    playwright.Browser
	navTimeout time.Duration
	logger     *slog.Logger

	once     sync.Once
	closeErr error
}

func (s *session) NewPage(ctx context.Context) (browser.Page, error) {
	p, err := s.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("new page: %w", err)
	}
	if s.navTimeout > 0 {
		p.SetDefaultNavigationTimeout(float64(s.navTimeout.Milliseconds()))
	}
	return &page{page: p}, nil
}

func (s *session) Close() error {
	s.once.Do(func() {
		berr := s.browser.Close()
		perr := s.pw.Stop()
		s.closeErr = errors.Join(berr, perr)
		s.logger.Debug("playwright browser closed", "err", s.closeErr)
	})
	return s.closeErr
}

type page struct {
	page playwright.Page
}

func (p *page) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	return err
}

func (p *page) Inspect(ctx context.Context, selector string, attrs ...string) (browser.ElementState, error) {
	var state browser.ElementState
	if err := ctx.Err(); err != nil {
		return state, err
	}

	loc := p.page.Locator(selector)
	n, err := loc.Count()
	if err != nil {
		return state, fmt.Errorf("count %s: %w", selector, err)
	}
	state.Count = n
	if n == 0 {
		return state, nil
	}

	first := loc.First()
	if state.Visible, err = first.IsVisible(); err != nil {
		return state, fmt.Errorf("visibility of %s: %w", selector, err)
	}

	names := append([]string{}, attrs...)
	raw, err := first.Evaluate(readScript, names, playwright.LocatorEvaluateOptions{
		Timeout: playwright.Float(float64(inspectTimeout.Milliseconds())),
	})
	if err != nil {
		// Detached between Count and Evaluate; the caller polls again.
		if errors.Is(err, playwright.ErrTimeout) {
			return browser.ElementState{}, nil
		}
		return state, fmt.Errorf("read %s: %w", selector, err)
	}

	state.Text, state.Attrs = decodeRead(raw)
	return state, nil
}

func (p *page) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
		Type:     playwright.ScreenshotTypePng,
	})
}

// decodeRead unpacks the value readScript returns.
func decodeRead(raw interface{}) (string, map[string]string) {
	attrs := make(map[string]string)
	m, ok := raw.(map[string]interface{})
	if !ok {
		return "", attrs
	}
	text, _ := m["text"].(string)
	if am, ok := m["attrs"].(map[string]interface{}); ok {
		for k, v := range am {
			if s, ok := v.(string); ok {
				attrs[k] = s
			}
		}
	}
	return text, attrs
}
