package utils

import (
	"bytes"
	"strings"
	"testing"
)

func newTestDiagnostics(t *testing.T, level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var out, errOut bytes.Buffer
	return NewDiagnosticSystemWithWriters(level, &out, &errOut), &out, &errOut
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	d, out, errOut := newTestDiagnostics(t, DiagnosticInfo)

	d.Info("scanning %s", "src")
	d.Success("done")
	d.Verbose("hidden verbose")
	d.Debug("hidden debug")
	d.Error("broken %d", 1)

	if !strings.Contains(out.String(), "[INFO] scanning src") {
		t.Errorf("expected info line, got %q", out.String())
	}
	if !strings.Contains(out.String(), "[SUCCESS] done") {
		t.Errorf("expected success line, got %q", out.String())
	}
	if strings.Contains(out.String(), "hidden") {
		t.Errorf("verbose and debug output should be suppressed at info level: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "[ERROR] broken 1") {
		t.Errorf("expected error on the error stream, got %q", errOut.String())
	}
}

func TestDiagnosticSystem_QuietSuppressesProgress(t *testing.T) {
	d, out, _ := newTestDiagnostics(t, DiagnosticError)

	d.StartProgress("Parsing package.json")
	d.EndProgress(true, "")
	d.Section("Generate binding.gyp")
	d.Info("nope")

	if out.Len() != 0 {
		t.Errorf("expected no output in quiet mode, got %q", out.String())
	}
}

func TestDiagnosticSystem_Progress(t *testing.T) {
	d, out, _ := newTestDiagnostics(t, DiagnosticInfo)

	d.StartProgress("Parsing local package.json...")
	d.EndProgress(true, "")
	d.StartProgress("include dir exists")
	d.EndProgress(false, "include dir missing")
	// ending twice is a no-op
	d.EndProgress(true, "ignored")

	got := out.String()
	if !strings.Contains(got, "✔ Parsing local package.json...") {
		t.Errorf("expected success marker, got %q", got)
	}
	if !strings.Contains(got, "✖ include dir missing") {
		t.Errorf("expected failure marker, got %q", got)
	}
	if strings.Contains(got, "ignored") {
		t.Errorf("EndProgress without a spinner should print nothing, got %q", got)
	}
	if strings.Contains(got, "\r") {
		t.Errorf("spinner frames should not be drawn on a non-terminal writer")
	}
}

func TestDiagnosticSystem_Diff(t *testing.T) {
	d, out, _ := newTestDiagnostics(t, DiagnosticInfo)

	diff, err := RenderDiff("binding.gyp", nil, []byte("{\n    \"targets\": []\n}\n"))
	if err != nil {
		t.Fatalf("RenderDiff failed: %v", err)
	}
	d.Diff(diff)

	got := out.String()
	for _, want := range []string{"binding.gyp", "+{", "+    \"targets\": []", "+3", "-0"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in diff output, got %q", want, got)
		}
	}
}

func TestDiagnosticSystem_DiffNoChanges(t *testing.T) {
	d, out, _ := newTestDiagnostics(t, DiagnosticInfo)

	diff, err := RenderDiff("binding.gyp", []byte("{}\n"), []byte("{}\n"))
	if err != nil {
		t.Fatalf("RenderDiff failed: %v", err)
	}
	d.Diff(diff)

	if !strings.Contains(out.String(), "no changes") {
		t.Errorf("expected a no changes marker, got %q", out.String())
	}
}

func TestDiagnosticSystem_SummaryOrder(t *testing.T) {
	d, out, _ := newTestDiagnostics(t, DiagnosticInfo)

	d.Summary("Update complete", []string{"Sources", "Added", "Removed"}, map[string]interface{}{
		"Removed": 1,
		"Sources": 4,
		"Added":   2,
	})

	got := out.String()
	sources := strings.Index(got, "Sources: 4")
	added := strings.Index(got, "Added: 2")
	removed := strings.Index(got, "Removed: 1")
	if sources < 0 || added < sources || removed < added {
		t.Errorf("summary keys out of order: %q", got)
	}
}

func TestDiagnosticSystem_ListIndent(t *testing.T) {
	d, out, _ := newTestDiagnostics(t, DiagnosticInfo)

	d.List("top")
	d.Indent()
	d.List("nested")
	d.Unindent()
	d.Unindent()
	d.List("back")

	want := "- top\n  - nested\n- back\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}
