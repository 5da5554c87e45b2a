// Package browsertest provides an in-memory browser engine for tests.
package browsertest

import (
	"context"
	"sync"

	"github.com/R167/a11ycheck/internal/browser"
)

// PNG is the placeholder image returned by Page.Screenshot.
var PNG = []byte("\x89PNG\r\n\x1a\nfake")

// Element describes what a selector resolves to. A nil entry in Page.Elements
// is the same as no entry: the selector matches nothing.
type Element struct {
	Visible bool
	Text    string
	Attrs   map[string]string
	// Matches is how many elements the selector resolves to; zero means one.
	Matches int
	// ReadyAfter hides the element for the first N inspections of its
	// selector, to exercise polling.
	ReadyAfter int
}

type Engine struct {
	Page       *Page
	LaunchErr  error
	NewPageErr error

	mu       sync.Mutex
	sessions []*Session
}

func NewEngine(page *Page) *Engine {
	return &Engine{Page: page}
}

func (e *Engine) Name() string {
	return "fake"
}

func (e *Engine) Launch(ctx context.Context, opts browser.LaunchOptions) (browser.Session, error) {
	if e.LaunchErr != nil {
		return nil, e.LaunchErr
	}
	s := &Session{engine: e, Headless: opts.Headless}
	e.mu.Lock()
	e.sessions = append(e.sessions, s)
	e.mu.Unlock()
	return s, nil
}

func (e *Engine) Sessions() []*Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Session{}, e.sessions...)
}

type Session struct {
	engine   *Engine
	Headless bool

	mu     sync.Mutex
	closes int
}

func (s *Session) NewPage(ctx context.Context) (browser.Page, error) {
	if s.engine.NewPageErr != nil {
		return nil, s.engine.NewPageErr
	}
	return s.engine.Page, nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes > 0
}

type Page struct {
	Elements      map[string]*Element
	GotoErr       error
	InspectErr    error
	ScreenshotErr error

	mu        sync.Mutex
	visited   []string
	inspected []string
	seen      map[string]int
}

func NewPage(elements map[string]*Element) *Page {
	return &Page{Elements: elements}
}

func (p *Page) Goto(ctx context.Context, url string) error {
	p.mu.Lock()
	p.visited = append(p.visited, url)
	p.mu.Unlock()
	return p.GotoErr
}

func (p *Page) Inspect(ctx context.Context, selector string, attrs ...string) (browser.ElementState, error) {
	if err := ctx.Err(); err != nil {
		return browser.ElementState{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.inspected = append(p.inspected, selector)
	if p.InspectErr != nil {
		return browser.ElementState{}, p.InspectErr
	}
	if p.seen == nil {
		p.seen = make(map[string]int)
	}
	p.seen[selector]++

	el := p.Elements[selector]
	if el == nil || p.seen[selector] <= el.ReadyAfter {
		return browser.ElementState{}, nil
	}

	count := el.Matches
	if count == 0 {
		count = 1
	}
	state := browser.ElementState{
		Count:   count,
		Visible: el.Visible,
		Text:    el.Text,
		Attrs:   make(map[string]string),
	}
	for _, name := range attrs {
		if v, ok := el.Attrs[name]; ok {
			state.Attrs[name] = v
		}
	}
	return state, nil
}

func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	if p.ScreenshotErr != nil {
		return nil, p.ScreenshotErr
	}
	return PNG, nil
}

func (p *Page) Visited() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.visited...)
}

// Inspected lists every selector passed to Inspect, in call order.
func (p *Page) Inspected() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.inspected...)
}

// WasInspected reports whether selector was queried at least once.
func (p *Page) WasInspected(selector string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seen[selector] > 0
}
