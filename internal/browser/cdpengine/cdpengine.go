// Package cdpengine drives a local Chrome over the DevTools protocol with chromedp.
package cdpengine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/R167/a11ycheck/internal/browser"
)

const Name = "chromedp"

// inspectScript is formatted with a JSON selector and a JSON array of
// attribute names. Visibility follows Playwright: a non-empty box and not
// visibility:hidden.
const inspectScript = `(() => {
	const els = document.querySelectorAll(%s);
	const names = %s;
	const out = { count: els.length, visible: false, text: "", attrs: {} };
	if (els.length === 0) return out;
	const el = els[0];
	const rect = el.getBoundingClientRect();
	const style = window.getComputedStyle(el);
	out.visible = rect.width > 0 && rect.height > 0 && style.visibility !== "hidden";
	out.text = el.textContent || "";
	for (const n of names) {
		if (el.hasAttribute(n)) out.attrs[n] = el.getAttribute(n);
	}
	return out;
})()`

type inspectResult struct {
	Count   int               `json:"count"`
	Visible bool              `json:"visible"`
	Text    string            `json:"text"`
	Attrs   map[string]string `json:"attrs"`
}

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
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// The first Run on a fresh context starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	e.logger.Debug("chrome launched", "headless", opts.Headless)
	return &session{
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
		navTimeout:    opts.NavigationTimeout,
		logger:        e.logger,
	}, nil
}

type session struct {
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
	navTimeout    time.Duration
	logger        *slog.Logger

	mu       sync.Mutex
	tabs     []context.CancelFunc
	once     sync.Once
	closeErr error
}

func (s *session) NewPage(ctx context.Context) (browser.Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx)
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		return nil, fmt.Errorf("open tab: %w", err)
	}

	s.mu.Lock()
	s.tabs = append(s.tabs, tabCancel)
	s.mu.Unlock()
	return &page{ctx: tabCtx, navTimeout: s.navTimeout}, nil
}

func (s *session) Close() error {
	s.once.Do(func() {
		s.mu.Lock()
		for _, cancel := range s.tabs {
			cancel()
		}
		s.mu.Unlock()

		s.closeErr = chromedp.Cancel(s.browserCtx)
		s.browserCancel()
		s.allocCancel()
		s.logger.Debug("chrome closed", "err", s.closeErr)
	})
	return s.closeErr
}

type page struct {
	ctx        context.Context
	navTimeout time.Duration
}

func (p *page) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx := p.ctx
	if p.navTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(p.ctx, p.navTimeout)
		defer cancel()
	}
	return chromedp.Run(runCtx, chromedp.Navigate(url))
}

func (p *page) Inspect(ctx context.Context, selector string, attrs ...string) (browser.ElementState, error) {
	if err := ctx.Err(); err != nil {
		return browser.ElementState{}, err
	}

	script, err := buildInspectScript(selector, attrs)
	if err != nil {
		return browser.ElementState{}, err
	}

	var res inspectResult
	if err := chromedp.Run(p.ctx, chromedp.Evaluate(script, &res)); err != nil {
		return browser.ElementState{}, fmt.Errorf("inspect %s: %w", selector, err)
	}

	if res.Attrs == nil {
		res.Attrs = make(map[string]string)
	}
	return browser.ElementState{
		Count:   res.Count,
		Visible: res.Visible,
		Text:    res.Text,
		Attrs:   res.Attrs,
	}, nil
}

func (p *page) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf []byte
	// quality 100 selects PNG
	if err := chromedp.Run(p.ctx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, err
	}
	return buf, nil
}

func buildInspectScript(selector string, attrs []string) (string, error) {
	sel, err := json.Marshal(selector)
	if err != nil {
		return "", err
	}
	if attrs == nil {
		attrs = []string{}
	}
	names, err := json.Marshal(attrs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(inspectScript, sel, names), nil
}
