package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDiff(t *testing.T) {
	tests := []struct {
		name    string
		before  string
		after   string
		added   int
		removed int
		empty   bool
	}{
		{
			name:  "new file",
			after: "{\n    \"targets\": []\n}\n",
			added: 3,
		},
		{
			name:   "identical",
			before: "{\n}\n",
			after:  "{\n}\n",
			empty:  true,
		},
		{
			name:    "changed line",
			before:  "a\nb\nc\n",
			after:   "a\nB\nc\n",
			added:   1,
			removed: 1,
		},
		{
			name:    "removed and added",
			before:  "a\nb\nc\nd\n",
			after:   "a\nc\nd\ne\nf\n",
			added:   2,
			removed: 1,
		},
		{
			name:   "missing trailing newline",
			before: "a\nb",
			after:  "a\nb\n",
			empty:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff, err := RenderDiff("binding.gyp", []byte(tt.before), []byte(tt.after))
			require.NoError(t, err)
			assert.Equal(t, "binding.gyp", diff.Name)
			assert.Equal(t, tt.empty, diff.Empty())
			assert.Equal(t, tt.added, diff.Added)
			assert.Equal(t, tt.removed, diff.Removed)
			if !tt.empty {
				assert.Contains(t, diff.Text, "--- a/binding.gyp")
				assert.Contains(t, diff.Text, "+++ b/binding.gyp")
			}
		})
	}
}
