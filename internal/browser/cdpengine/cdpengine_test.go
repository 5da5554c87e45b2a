package cdpengine

import (
	"strings"
	"testing"
)

func TestBuildInspectScript(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		attrs    []string
		contains []string
	}{
		{
			name:     "label selector quoted",
			selector: "label[for='speedRange']",
			contains: []string{`querySelectorAll("label[for='speedRange']")`, "const names = [];"},
		},
		{
			name:     "attribute names",
			selector: "#addSlideBtn",
			attrs:    []string{"aria-label"},
			contains: []string{`querySelectorAll("#addSlideBtn")`, `const names = ["aria-label"];`},
		},
		{
			name:     "double quotes escaped",
			selector: `input[name="a"]`,
			contains: []string{`querySelectorAll("input[name=\"a\"]")`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := buildInspectScript(tt.selector, tt.attrs)
			if err != nil {
				t.Fatalf("buildInspectScript() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(script, want) {
					t.Errorf("script missing %q:\n%s", want, script)
				}
			}
		})
	}
}

func TestEngineName(t *testing.T) {
	if got := New(nil).Name(); got != "chromedp" {
		t.Errorf("Name() = %q, want %q", got, "chromedp")
	}
}
