// Package browser defines the engine-neutral surface the checkers drive.
//
// An Engine launches a Session, a Session opens Pages, and a Page answers
// Inspect queries with an ElementState snapshot of the first element matching
// a CSS selector, plus how many elements matched. Inspect never waits: bounded
// waiting for eventual UI state lives in Expect, so every engine polls the same
// way. Checkers pair Exists with Unique, so a duplicated id or label fails
// instead of being read from whichever element comes first.
//
//	sess, err := engine.Launch(ctx, browser.LaunchOptions{Headless: true})
//	if err != nil {
//	    return err
//	}
//	defer sess.Close()
//
//	page, _ := sess.NewPage(ctx)
//	_ = page.Goto(ctx, "http://localhost:8000")
//	state, err := browser.Expect(ctx, page, "#addSlideBtn", 5*time.Second, browser.Exists, "aria-label")
package browser

import (
	"context"
	"time"
)

type LaunchOptions struct {
	Headless          bool
	NavigationTimeout time.Duration
}

type Engine interface {
	Name() string
	Launch(ctx context.Context, opts LaunchOptions) (Session, error)
}

// Session owns a running browser. Close must be safe to call more than once.
type Session interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

type Page interface {
	Goto(ctx context.Context, url string) error
	// Inspect reports on the first element matching selector and sets Count
	// to the number of matches. Only the requested attributes that are
	// present on the element appear in Attrs.
	Inspect(ctx context.Context, selector string, attrs ...string) (ElementState, error)
	// Screenshot captures the full scrollable page as PNG.
	Screenshot(ctx context.Context) ([]byte, error)
}

type ElementState struct {
	Count   int
	Visible bool
	Text    string
	Attrs   map[string]string
}

func (s ElementState) Attr(name string) (string, bool) {
	v, ok := s.Attrs[name]
	return v, ok
}
