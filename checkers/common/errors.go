package common

import (
	"errors"
	"fmt"
)

var (
	ErrNavigation = errors.New("navigation failed")
	ErrBrowser    = errors.New("browser session failed")
	ErrScreenshot = errors.New("screenshot failed")

	ErrAssertion         = errors.New("assertion failed")
	ErrNotVisible        = errors.New("element not visible")
	ErrTextMismatch      = errors.New("text mismatch")
	ErrAttributeMismatch = errors.New("attribute mismatch")
	ErrLocatorNotFound   = errors.New("locator matched no element")
	ErrMultipleMatches   = errors.New("locator matched more than one element")
)

type AssertionKind string

const (
	NotVisible        AssertionKind = "NotVisible"
	TextMismatch      AssertionKind = "TextMismatch"
	AttributeMismatch AssertionKind = "AttributeMismatch"
	LocatorNotFound   AssertionKind = "LocatorNotFound"
	MultipleMatches   AssertionKind = "MultipleMatches"
)

var kindSentinels = map[AssertionKind]error{
	NotVisible:        ErrNotVisible,
	TextMismatch:      ErrTextMismatch,
	AttributeMismatch: ErrAttributeMismatch,
	LocatorNotFound:   ErrLocatorNotFound,
	MultipleMatches:   ErrMultipleMatches,
}

// AssertionError reports a located element that broke its visibility, text or
// attribute contract. It matches ErrAssertion and the sentinel for its Kind.
type AssertionError struct {
	Kind     AssertionKind
	Selector string
	Want     string
	Got      string
}

func (e *AssertionError) Error() string {
	switch e.Kind {
	case LocatorNotFound:
		return fmt.Sprintf("%s: no element matches %s", e.Kind, e.Selector)
	case MultipleMatches:
		return fmt.Sprintf("%s: %s matches %s, want exactly one", e.Kind, e.Selector, e.Got)
	case NotVisible:
		return fmt.Sprintf("%s: %s is not visible", e.Kind, e.Selector)
	case TextMismatch:
		return fmt.Sprintf("%s: %s text %q does not contain %q", e.Kind, e.Selector, e.Got, e.Want)
	case AttributeMismatch:
		return fmt.Sprintf("%s: %s has %s, want %q", e.Kind, e.Selector, e.Got, e.Want)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Selector)
}

func (e *AssertionError) Is(target error) bool {
	if target == ErrAssertion {
		return true
	}
	return kindSentinels[e.Kind] == target
}
