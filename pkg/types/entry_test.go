package types_test

import (
	"testing"

	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestSingleEntry_DestinationName(t *testing.T) {
	tests := []struct {
		name  string
		entry types.SingleEntry
		want  string
	}{
		{"no rename", types.SingleEntry{Name: "vimrc", To: "~"}, "vimrc"},
		{"rename", types.SingleEntry{Name: "vimrc", To: "~", Rename: strPtr(".vimrc")}, ".vimrc"},
		{"empty rename falls back", types.SingleEntry{Name: "vimrc", To: "~", Rename: strPtr("")}, "vimrc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.DestinationName())
		})
	}
}

func TestConfigEntry_Target(t *testing.T) {
	entries := []types.ConfigEntry{
		types.SingleEntry{Name: "vimrc", To: "~"},
		types.MultipleEntry{Names: []string{"a", "b"}, To: "~/.config"},
	}

	assert.Equal(t, "~", entries[0].Target())
	assert.Equal(t, "~/.config", entries[1].Target())
}
