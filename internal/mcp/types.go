package mcp

import "github.com/R167/a11ycheck/checkers/common"

type CheckToolInput struct {
	URL            string `json:"url,omitempty" jsonschema:"page to check, defaults to the configured target"`
	ScreenshotPath string `json:"screenshot_path,omitempty" jsonschema:"where to write a full-page PNG"`
}

type CheckToolOutput struct {
	Passed  bool                 `json:"passed"`
	Results []common.CheckResult `json:"results"`
	Summary string               `json:"summary"`
	Report  string               `json:"report"`
}
