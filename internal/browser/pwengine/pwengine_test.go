package pwengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRead(t *testing.T) {
	tests := []struct {
		name      string
		raw       interface{}
		wantText  string
		wantAttrs map[string]string
	}{
		{
			name:      "text and attribute",
			raw:       map[string]interface{}{"text": "Add", "attrs": map[string]interface{}{"aria-label": "Add Images"}},
			wantText:  "Add",
			wantAttrs: map[string]string{"aria-label": "Add Images"},
		},
		{
			name:      "empty attribute kept",
			raw:       map[string]interface{}{"text": "", "attrs": map[string]interface{}{"aria-label": ""}},
			wantAttrs: map[string]string{"aria-label": ""},
		},
		{
			name:      "no attrs",
			raw:       map[string]interface{}{"text": "Speed"},
			wantText:  "Speed",
			wantAttrs: map[string]string{},
		},
		{
			name:      "unexpected shape",
			raw:       "nope",
			wantAttrs: map[string]string{},
		},
		{
			name:      "nil",
			raw:       nil,
			wantAttrs: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, attrs := decodeRead(tt.raw)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantAttrs, attrs)
		})
	}
}

func TestEngineName(t *testing.T) {
	assert.Equal(t, "playwright", New(nil).Name())
}
