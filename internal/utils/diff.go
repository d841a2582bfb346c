package utils

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"
)

// ManifestDiff is a unified diff between two versions of a manifest file
type ManifestDiff struct {
	Name    string
	Text    string
	Added   int
	Removed int
}

// Empty reports whether both versions were identical
func (d ManifestDiff) Empty() bool {
	return d.Text == ""
}

// RenderDiff computes the unified diff turning before into after. An empty
// before renders every line of after as an addition.
func RenderDiff(name string, before, after []byte) (ManifestDiff, error) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(before),
		B:        splitLines(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
	if err != nil {
		return ManifestDiff{}, err
	}

	result := ManifestDiff{Name: name, Text: text}
	if text == "" {
		return result, nil
	}
	result.Added, result.Removed = diffStats(text)
	return result, nil
}

// diffStats counts added and removed lines of a unified diff
func diffStats(text string) (added, removed int) {
	fileDiff, err := diff.ParseFileDiff([]byte(text))
	if err == nil {
		stat := fileDiff.Stat()
		return int(stat.Added + stat.Changed), int(stat.Deleted + stat.Changed)
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(content), "\n")
	if last := len(lines) - 1; lines[last] == "" {
		lines = lines[:last]
	} else {
		lines[last] += "\n"
	}
	return lines
}
