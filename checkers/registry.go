package checkers

import (
	"fmt"

	"github.com/R167/a11ycheck/checkers/buttons"
	"github.com/R167/a11ycheck/checkers/labels"
	"github.com/R167/a11ycheck/internal/checker"
)

// AllCheckers returns every checker in run order.
func AllCheckers() []checker.Checker {
	return []checker.Checker{
		labels.NewLabelChecker(),
		buttons.NewButtonChecker(),
	}
}

func GetChecker(name string) checker.Checker {
	for _, c := range AllCheckers() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Select returns the named checkers in run order, or all of them when names
// is empty. Unknown names are an error.
func Select(names []string) ([]checker.Checker, error) {
	if len(names) == 0 {
		return AllCheckers(), nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		if GetChecker(n) == nil {
			return nil, fmt.Errorf("unknown checker %q", n)
		}
		want[n] = true
	}

	var selected []checker.Checker
	for _, c := range AllCheckers() {
		if want[c.Name()] {
			selected = append(selected, c)
		}
	}
	return selected, nil
}
