package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/gypgen/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a reporter writing to out
func NewDiagnosticReporter(verbose bool, out io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     out,
	}
}

// ReportWarning prints a single warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints err with whatever context it carries. Refused
// operations and missing cache keys get a single red line; everything else
// gets the full report.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	var gypErr errors.GypError
	if !stderrors.As(err, &gypErr) {
		r.reportBasicError(err)
		return
	}

	code := gypErr.ErrorCode()
	if code.IsPrecondition() || code == errors.KeyNotFoundErrorCode {
		r.reportShortError(err, gypErr)
		return
	}
	r.reportGypError(err, gypErr)
}

// reportShortError prints the message and the first suggestion only
func (r *DiagnosticReporter) reportShortError(err error, gypErr errors.GypError) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(r.out, "\n> %s\n", capitalize(messageOf(err)))
	if suggestions := gypErr.Suggestions(); len(suggestions) > 0 {
		fmt.Fprintf(r.out, "  %s\n", suggestions[0])
	}
	if r.verbose && !gypErr.Location().IsEmpty() {
		fmt.Fprintf(r.out, "  File: %s\n", gypErr.Location())
	}
	fmt.Fprintln(r.out)
}

// reportGypError reports a GypError with full context and suggestions
func (r *DiagnosticReporter) reportGypError(err error, gypErr errors.GypError) {
	r.printErrorHeader(gypErr.ErrorCode())

	fmt.Fprintf(r.out, "Message: %s\n\n", messageOf(err))

	if r.verbose {
		if cause := gypErr.Unwrap(); cause != nil {
			fmt.Fprintf(r.out, "Underlying cause: %s\n\n", cause.Error())
		}
	}

	if loc := gypErr.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "File: %s\n\n", loc)
	}

	if context := gypErr.Context(); len(context) > 0 {
		r.printContext(context)
	}

	if suggestions := gypErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	if r.verbose {
		r.printErrorChain(err)
	} else {
		fmt.Fprintf(r.out, "Run with --verbose for more detailed output\n")
	}
	fmt.Fprintln(r.out)
}

// reportBasicError reports an error without structured context
func (r *DiagnosticReporter) reportBasicError(err error) {
	r.printErrorHeader(errors.UnknownErrorCode)
	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
}

// printErrorHeader prints a formatted error header for code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var errorTypeStr string

	switch code {
	case errors.FileSystemErrorCode:
		errorTypeStr = "File System Error"
	case errors.ConfigurationErrorCode:
		errorTypeStr = "Configuration Error"
	case errors.StoreErrorCode:
		errorTypeStr = "Cache Error"
	case errors.ManifestExistsErrorCode, errors.ManifestMissingErrorCode:
		errorTypeStr = "Precondition Error"
	default:
		errorTypeStr = "Unknown Error"
	}

	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(r.out, "\nERROR: %s\n", errorTypeStr)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+7))
}

// printContext prints context entries sorted by key
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.out, "\n")
}

// printSuggestions prints numbered suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.out, "\n")
}

// printErrorChain prints every wrapped error, outermost first
func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.out, "Error Chain:\n")
	level := 1
	for err != nil {
		fmt.Fprintf(r.out, "  %d. %s\n", level, err.Error())
		err = stderrors.Unwrap(err)
		level++
	}
}

// messageOf returns the message of the outermost GypError, without location
// or cause, falling back to the full error text
func messageOf(err error) string {
	var base *errors.BaseError
	if stderrors.As(err, &base) && base.Message != "" {
		return base.Message
	}
	return err.Error()
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		parts[i] = capitalize(part)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
