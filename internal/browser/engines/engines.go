package engines

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/R167/a11ycheck/internal/browser"
	"github.com/R167/a11ycheck/internal/browser/cdpengine"
	"github.com/R167/a11ycheck/internal/browser/pwengine"
)

const Default = pwengine.Name

var constructors = map[string]func(*slog.Logger) browser.Engine{
	pwengine.Name:  func(l *slog.Logger) browser.Engine { return pwengine.New(l) },
	cdpengine.Name: func(l *slog.Logger) browser.Engine { return cdpengine.New(l) },
}

// New returns the engine registered under name.
func New(name string, logger *slog.Logger) (browser.Engine, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown browser engine %q (available: %v)", name, Names())
	}
	return ctor(logger), nil
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for n := range constructors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func Valid(name string) bool {
	_, ok := constructors[name]
	return ok
}
