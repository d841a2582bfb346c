package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectMetadata_TargetName(t *testing.T) {
	assert.Equal(t, "foo", ProjectMetadata{Name: "foo"}.TargetName())
	assert.Equal(t, DefaultTargetName, ProjectMetadata{}.TargetName())
}

func TestDetectHelpers(t *testing.T) {
	tests := []struct {
		name         string
		deps         map[string]string
		includes     []string
		dependencies []string
	}{
		{
			name: "no dependencies",
		},
		{
			name:         "node-addon-api",
			deps:         map[string]string{"node-addon-api": "^3.0.0"},
			includes:     []string{NodeAddonAPIInclude},
			dependencies: []string{NodeAddonAPIDependency},
		},
		{
			name:     "nan",
			deps:     map[string]string{"nan": "2.14.0"},
			includes: []string{NANInclude},
		},
		{
			name:         "both helpers",
			deps:         map[string]string{"nan": "2.14.0", "node-addon-api": "1.0.0", "lodash": "4"},
			includes:     []string{NodeAddonAPIInclude, NANInclude},
			dependencies: []string{NodeAddonAPIDependency},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			helpers := DetectHelpers(ProjectMetadata{Dependencies: tt.deps})
			assert.Equal(t, tt.includes, helpers.IncludeDirs())
			assert.Equal(t, tt.dependencies, helpers.Dependencies())
			assert.Equal(t, len(tt.includes) > 0, helpers.Any())
		})
	}
}

func TestDisplayVersion(t *testing.T) {
	tests := map[string]string{
		"1.0.0":        "v1.0.0",
		"^3.2":         "v3.2.0",
		"~2.14.1":      "v2.14.1",
		"latest":       "latest",
		">=1.0 <2":     ">=1.0 <2",
		"":             "",
		"1.0.0-beta.1": "v1.0.0-beta.1",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, DisplayVersion(input), "input %q", input)
	}
}
