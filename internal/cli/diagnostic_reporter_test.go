package cli

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/gypgen/internal/errors"
)

func TestDiagnosticReporter_ReportWarning(t *testing.T) {
	var buf bytes.Buffer
	NewDiagnosticReporter(false, &buf).ReportWarning("This is a test warning")

	assert.Contains(t, buf.String(), "! This is a test warning")
}

func TestDiagnosticReporter_PreconditionError(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewDiagnosticReporter(false, &buf)

	reporter.ReportError(errors.NewManifestExistsError("/project/binding.gyp"))

	output := buf.String()
	assert.Contains(t, output, "> Unable to initialize, manifest already exists")
	assert.Contains(t, output, "Run with --update")
	assert.NotContains(t, output, "ERROR:")
	assert.NotContains(t, output, "/project/binding.gyp")
}

func TestDiagnosticReporter_PreconditionErrorVerbose(t *testing.T) {
	var buf bytes.Buffer
	NewDiagnosticReporter(true, &buf).ReportError(errors.NewManifestMissingError("/project/binding.gyp"))

	assert.Contains(t, buf.String(), "File: /project/binding.gyp")
}

func TestDiagnosticReporter_FullReport(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewDiagnosticReporter(false, &buf)

	cause := stderrors.New("permission denied")
	err := errors.WrapFileSystemError("read directory", "/project/src", cause).
		WithSuggestion("Check the directory permissions\nor run with elevated rights")

	reporter.ReportError(err)

	output := buf.String()
	assert.Contains(t, output, "ERROR: File System Error")
	assert.Contains(t, output, "Message: failed to read directory '/project/src'")
	assert.Contains(t, output, "Context:")
	assert.Contains(t, output, "   Operation: read directory")
	assert.Contains(t, output, "   Path: /project/src")
	assert.Contains(t, output, "   1. Check the directory permissions")
	assert.Contains(t, output, "      or run with elevated rights")
	assert.Contains(t, output, "Run with --verbose")
	assert.NotContains(t, output, "Underlying cause")

	// context keys are printed in sorted order
	assert.Less(t, strings.Index(output, "Operation:"), strings.Index(output, "Path:"))
}

func TestDiagnosticReporter_VerboseReport(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewDiagnosticReporter(true, &buf)

	cause := stderrors.New("unexpected end of JSON input")
	reporter.ReportError(errors.WrapConfigurationError("binding.gyp", "parse", cause))

	output := buf.String()
	assert.Contains(t, output, "ERROR: Configuration Error")
	assert.Contains(t, output, "Underlying cause: unexpected end of JSON input")
	assert.Contains(t, output, "Error Chain:")
	assert.Contains(t, output, "  2. unexpected end of JSON input")
}

func TestDiagnosticReporter_PlainError(t *testing.T) {
	var buf bytes.Buffer
	NewDiagnosticReporter(false, &buf).ReportError(stderrors.New(`unknown flag: --bogus`))

	output := buf.String()
	assert.Contains(t, output, "ERROR: Unknown Error")
	assert.Contains(t, output, "Message: unknown flag: --bogus")
}

func TestDiagnosticReporter_NilError(t *testing.T) {
	var buf bytes.Buffer
	NewDiagnosticReporter(true, &buf).ReportError(nil)
	assert.Empty(t, buf.String())
}

func TestFormatContextKey(t *testing.T) {
	assert.Equal(t, "Config Type", formatContextKey("config_type"))
	assert.Equal(t, "Key", formatContextKey("key"))
}
