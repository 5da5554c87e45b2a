package common

import (
	"fmt"
	"time"
)

const (
	DefaultTargetURL      = "http://localhost:8000"
	DefaultScreenshotPath = "verification/a11y_check.png"

	AriaLabelAttr = "aria-label"
)

const (
	AssertTimeout     = 5 * time.Second
	NavigationTimeout = 30 * time.Second
	PreflightTimeout  = 5 * time.Second
	PollInterval      = 100 * time.Millisecond
)

// LabelAssociation pairs a form control id with text its <label for=...> must contain.
type LabelAssociation struct {
	ElementID    string
	ExpectedText string
}

func (a LabelAssociation) Selector() string {
	return fmt.Sprintf("label[for='%s']", a.ElementID)
}

// ButtonAssertion pairs a button id with the exact accessible name it must carry.
type ButtonAssertion struct {
	ElementID         string
	ExpectedAriaLabel string
}

func (b ButtonAssertion) Selector() string {
	return "#" + b.ElementID
}

type CheckResult struct {
	Checker string `json:"checker"`
	Target  string `json:"target"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

type Report struct {
	TargetURL      string        `json:"target_url"`
	Engine         string        `json:"engine"`
	Results        []CheckResult `json:"results"`
	ScreenshotPath string        `json:"screenshot_path,omitempty"`
	Duration       time.Duration `json:"duration"`
}

func (r *Report) Passed() bool {
	if len(r.Results) == 0 {
		return false
	}
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

func (r *Report) Failed() *CheckResult {
	for i := range r.Results {
		if !r.Results[i].Passed {
			return &r.Results[i]
		}
	}
	return nil
}
