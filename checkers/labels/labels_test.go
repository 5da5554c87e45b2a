package labels

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/R167/a11ycheck/checkers/common"
	"github.com/R167/a11ycheck/internal/browser/browsertest"
	"github.com/R167/a11ycheck/internal/checker"
	"github.com/R167/a11ycheck/internal/output"
)

func goodLabels() map[string]*browsertest.Element {
	els := make(map[string]*browsertest.Element)
	for _, a := range DefaultAssociations {
		els[a.Selector()] = &browsertest.Element{Visible: true, Text: a.ExpectedText}
	}
	return els
}

func newEnv(page *browsertest.Page, results *[]common.CheckResult) *checker.Env {
	return &checker.Env{
		Page:    page,
		Out:     output.NewNoOpOutput(),
		Timeout: 200 * time.Millisecond,
		Record:  func(r common.CheckResult) { *results = append(*results, r) },
	}
}

func TestDefaultAssociations_Order(t *testing.T) {
	want := []string{
		"transitionSelect", "transitionDurRange", "speedRange", "resolutionRange",
		"contrastRange", "slideDuration", "timelineZoom",
	}
	if len(DefaultAssociations) != len(want) {
		t.Fatalf("len(DefaultAssociations) = %d, want %d", len(DefaultAssociations), len(want))
	}
	for i, id := range want {
		if DefaultAssociations[i].ElementID != id {
			t.Errorf("DefaultAssociations[%d] = %q, want %q", i, DefaultAssociations[i].ElementID, id)
		}
	}
}

func TestLabelChecker_AllPass(t *testing.T) {
	var results []common.CheckResult
	page := browsertest.NewPage(goodLabels())
	buf := output.NewBufferedOutput()
	env := newEnv(page, &results)
	env.Out = buf

	if err := NewLabelChecker().Run(context.Background(), env); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(results) != 7 {
		t.Fatalf("got %d results, want 7", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("result %s should pass: %s", r.Target, r.Message)
		}
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d progress lines, want 7", len(lines))
	}
	if want := "  ✅ Label for transitionSelect found and associated correctly."; lines[0] != want {
		t.Errorf("first line = %q, want %q", lines[0], want)
	}
}

func TestLabelChecker_SubstringMatch(t *testing.T) {
	els := goodLabels()
	els["label[for='transitionSelect']"].Text = "Transition Type"
	els["label[for='speedRange']"].Text = "\n   Playback   Speed\n"

	var results []common.CheckResult
	err := NewLabelChecker().Run(context.Background(), newEnv(browsertest.NewPage(els), &results))
	if err != nil {
		t.Fatalf("Run() error = %v, want substring match to pass", err)
	}
}

func TestLabelChecker_Failures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(map[string]*browsertest.Element)
		wantErr  error
		wantKind common.AssertionKind
		failAt   string
	}{
		{
			name:     "missing label",
			mutate:   func(m map[string]*browsertest.Element) { delete(m, "label[for='resolutionRange']") },
			wantErr:  common.ErrLocatorNotFound,
			wantKind: common.LocatorNotFound,
			failAt:   "resolutionRange",
		},
		{
			name:     "hidden label",
			mutate:   func(m map[string]*browsertest.Element) { m["label[for='speedRange']"].Visible = false },
			wantErr:  common.ErrNotVisible,
			wantKind: common.NotVisible,
			failAt:   "speedRange",
		},
		{
			name:     "wrong text",
			mutate:   func(m map[string]*browsertest.Element) { m["label[for='timelineZoom']"].Text = "Scale" },
			wantErr:  common.ErrTextMismatch,
			wantKind: common.TextMismatch,
			failAt:   "timelineZoom",
		},
		{
			name:     "case differs",
			mutate:   func(m map[string]*browsertest.Element) { m["label[for='contrastRange']"].Text = "contrast" },
			wantErr:  common.ErrTextMismatch,
			wantKind: common.TextMismatch,
			failAt:   "contrastRange",
		},
		{
			name:     "two labels for one control",
			mutate:   func(m map[string]*browsertest.Element) { m["label[for='transitionDurRange']"].Matches = 2 },
			wantErr:  common.ErrMultipleMatches,
			wantKind: common.MultipleMatches,
			failAt:   "transitionDurRange",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			els := goodLabels()
			tt.mutate(els)
			page := browsertest.NewPage(els)

			var results []common.CheckResult
			err := NewLabelChecker().Run(context.Background(), newEnv(page, &results))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, common.ErrAssertion) {
				t.Errorf("error should match ErrAssertion: %v", err)
			}

			var ae *common.AssertionError
			if !errors.As(err, &ae) {
				t.Fatalf("error should be *AssertionError: %v", err)
			}
			if ae.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", ae.Kind, tt.wantKind)
			}

			last := results[len(results)-1]
			if last.Passed || last.Target != tt.failAt {
				t.Errorf("last result = %+v, want failure at %s", last, tt.failAt)
			}
		})
	}
}

func TestLabelChecker_StopsAtFirstFailure(t *testing.T) {
	els := goodLabels()
	delete(els, "label[for='speedRange']")
	page := browsertest.NewPage(els)

	var results []common.CheckResult
	err := NewLabelChecker().Run(context.Background(), newEnv(page, &results))
	if err == nil {
		t.Fatal("Run() should fail")
	}

	for _, later := range []string{"resolutionRange", "contrastRange", "slideDuration", "timelineZoom"} {
		if page.WasInspected("label[for='" + later + "']") {
			t.Errorf("label for %s was inspected after the failure", later)
		}
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want 2 passes and 1 failure", len(results))
	}
}

func TestLabelChecker_WaitsForLateLabel(t *testing.T) {
	els := goodLabels()
	els["label[for='slideDuration']"].ReadyAfter = 2

	var results []common.CheckResult
	err := NewLabelChecker().Run(context.Background(), newEnv(browsertest.NewPage(els), &results))
	if err != nil {
		t.Fatalf("Run() error = %v, want polling to pick up the late label", err)
	}
}

func TestLabelChecker_FailureShowsExpectedAndFound(t *testing.T) {
	els := goodLabels()
	els["label[for='transitionSelect']"].Text = "Effect"

	var results []common.CheckResult
	buf := output.NewBufferedOutput()
	env := newEnv(browsertest.NewPage(els), &results)
	env.Out = buf

	if err := NewLabelChecker().Run(context.Background(), env); err == nil {
		t.Fatal("Run() should fail")
	}

	out := buf.String()
	for _, want := range []string{
		`  ❌ TextMismatch: label[for='transitionSelect'] text "Effect" does not contain "Transition"`,
		`     expected: "Transition"`,
		`     found:    "Effect"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLabelChecker_DebugShowsLastState(t *testing.T) {
	common.SetDebugMode(true)
	t.Cleanup(func() { common.SetDebugMode(false) })

	els := goodLabels()
	els["label[for='speedRange']"].Visible = false

	var results []common.CheckResult
	buf := output.NewBufferedOutput()
	env := newEnv(browsertest.NewPage(els), &results)
	env.Out = buf

	if err := NewLabelChecker().Run(context.Background(), env); err == nil {
		t.Fatal("Run() should fail")
	}

	out := buf.String()
	if !strings.Contains(out, "[DEBUG] waiting up to 200ms for label[for='speedRange']") {
		t.Errorf("missing wait debug line:\n%s", out)
	}
	if !strings.Contains(out, `[DEBUG] label[for='speedRange']: count=1 visible=false text="Speed"`) {
		t.Errorf("missing last-state debug line:\n%s", out)
	}
}
