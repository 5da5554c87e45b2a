package buttons

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R167/a11ycheck/checkers/common"
	"github.com/R167/a11ycheck/internal/browser/browsertest"
	"github.com/R167/a11ycheck/internal/checker"
	"github.com/R167/a11ycheck/internal/output"
)

func button(label string) *browsertest.Element {
	return &browsertest.Element{Visible: true, Attrs: map[string]string{"aria-label": label}}
}

func run(t *testing.T, els map[string]*browsertest.Element) (*browsertest.Page, []common.CheckResult, *output.BufferedOutput, error) {
	t.Helper()
	page := browsertest.NewPage(els)
	out := output.NewBufferedOutput()
	var results []common.CheckResult
	env := &checker.Env{
		Page:    page,
		Out:     out,
		Timeout: 200 * time.Millisecond,
		Record:  func(r common.CheckResult) { results = append(results, r) },
	}
	err := NewButtonChecker().Run(context.Background(), env)
	return page, results, out, err
}

func TestButtonChecker_AllPass(t *testing.T) {
	_, results, out, err := run(t, map[string]*browsertest.Element{
		"#addSlideBtn":    button("Add Images"),
		"#deleteSlideBtn": button("Delete Clip"),
	})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "addSlideBtn", results[0].Target)
	assert.Equal(t, "deleteSlideBtn", results[1].Target)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `  ✅ Button #addSlideBtn has aria-label "Add Images".`, lines[0])
}

func TestButtonChecker_ExactMatchRequired(t *testing.T) {
	tests := []struct {
		name  string
		label string
	}{
		{"singular", "Add Image"},
		{"lower case", "add images"},
		{"superstring", "Add Images Now"},
		{"trailing space", "Add Images "},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, results, _, err := run(t, map[string]*browsertest.Element{
				"#addSlideBtn":    button(tt.label),
				"#deleteSlideBtn": button("Delete Clip"),
			})

			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrAttributeMismatch)
			assert.ErrorIs(t, err, common.ErrAssertion)
			assert.Contains(t, err.Error(), "addSlideBtn")
			assert.False(t, page.WasInspected("#deleteSlideBtn"), "later buttons must not be evaluated")
			require.Len(t, results, 1)
			assert.False(t, results[0].Passed)
		})
	}
}

func TestButtonChecker_MissingAttribute(t *testing.T) {
	_, _, out, err := run(t, map[string]*browsertest.Element{
		"#addSlideBtn":    {Visible: true},
		"#deleteSlideBtn": button("Delete Clip"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAttributeMismatch)
	assert.Contains(t, err.Error(), "no aria-label")

	assert.Equal(t,
		"  ❌ AttributeMismatch: #addSlideBtn has no aria-label, want \"Add Images\"\n"+
			"     expected: \"Add Images\"\n"+
			"     found:    no aria-label\n",
		out.String())
}

func TestButtonChecker_MissingButton(t *testing.T) {
	_, _, _, err := run(t, map[string]*browsertest.Element{
		"#addSlideBtn": button("Add Images"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrLocatorNotFound)
}

func TestButtonChecker_HiddenButtonStillChecked(t *testing.T) {
	hidden := button("Add Images")
	hidden.Visible = false

	_, _, _, err := run(t, map[string]*browsertest.Element{
		"#addSlideBtn":    hidden,
		"#deleteSlideBtn": button("Delete Clip"),
	})
	assert.NoError(t, err, "attribute check does not require visibility")
}

func TestButtonChecker_DuplicateIDRejected(t *testing.T) {
	dup := button("Add Images")
	dup.Matches = 2

	page, results, out, err := run(t, map[string]*browsertest.Element{
		"#addSlideBtn":    dup,
		"#deleteSlideBtn": button("Delete Clip"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMultipleMatches)
	assert.False(t, page.WasInspected("#deleteSlideBtn"))
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Contains(t, out.String(), "     found:    2 elements")
}
