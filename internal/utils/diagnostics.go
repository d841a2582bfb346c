package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// DiagnosticSystem provides structured, user-friendly output
type DiagnosticSystem struct {
	level     DiagnosticLevel
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
	indent    int
	progress  *Spinner
}

// NewDiagnosticSystemWithWriters creates a diagnostic system writing to the given streams
func NewDiagnosticSystemWithWriters(level DiagnosticLevel, output, errorOut io.Writer) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: shouldUseColors(output),
		showTime:  level >= DiagnosticVerbose,
		output:    output,
		errorOut:  errorOut,
		indent:    0,
	}
}

// Level returns the configured diagnostic level
func (d *DiagnosticSystem) Level() DiagnosticLevel {
	return d.level
}

// Error outputs error messages (always shown unless silent)
func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	if d.level >= DiagnosticError {
		d.writeMessage(d.errorOut, "ERROR", color.FgRed, format, args...)
	}
}

// Warn outputs warning messages
func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	if d.level >= DiagnosticWarn {
		d.writeMessage(d.output, "WARN", color.FgYellow, format, args...)
	}
}

// Info outputs informational messages
func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "INFO", color.FgBlue, format, args...)
	}
}

// Success outputs success messages with emphasis
func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "SUCCESS", color.FgGreen, format, args...)
	}
}

// Verbose outputs detailed messages (verbose mode only)
func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	if d.level >= DiagnosticVerbose {
		d.writeMessage(d.output, "VERBOSE", color.FgHiBlack, format, args...)
	}
}

// Debug outputs debug messages (highest verbosity)
func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	if d.level >= DiagnosticDebug {
		d.writeMessage(d.output, "DEBUG", color.FgMagenta, format, args...)
	}
}

// Section creates a prominent section header
func (d *DiagnosticSystem) Section(title string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "\n %s\n\n", d.paint(fmt.Sprintf("> %s", title), color.FgCyan, color.Bold))
	}
}

// Subsection creates a subsection header
func (d *DiagnosticSystem) Subsection(title string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "\n%s:\n", title)
	}
}

// List outputs a bulleted list item
func (d *DiagnosticSystem) List(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		message := fmt.Sprintf(format, args...)
		fmt.Fprintf(d.output, "%s- %s\n", d.getIndent(), message)
	}
}

// Result prints a bare value on regular output regardless of level
func (d *DiagnosticSystem) Result(value string) {
	fmt.Fprintln(d.output, value)
}

// Indent increases the indentation level
func (d *DiagnosticSystem) Indent() {
	d.indent++
}

// Unindent decreases the indentation level
func (d *DiagnosticSystem) Unindent() {
	if d.indent > 0 {
		d.indent--
	}
}

// Summary outputs a final summary with statistics in the given key order
func (d *DiagnosticSystem) Summary(title string, keys []string, stats map[string]interface{}) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "\n%s\n", d.paint(title, color.Bold))
		for _, key := range keys {
			fmt.Fprintf(d.output, "   %s: %v\n", key, stats[key])
		}
		fmt.Fprintln(d.output)
	}
}

// StartProgress starts a spinner for a long running step. A previous
// spinner that was never ended is stopped first.
func (d *DiagnosticSystem) StartProgress(message string) {
	if d.level < DiagnosticInfo {
		return
	}
	if d.progress != nil {
		d.progress.Stop()
	}
	d.progress = NewSpinner(d.output, message).WithColors(d.useColors)
	d.progress.Start()
}

// EndProgress stops the current spinner and prints its outcome. An empty
// message reuses the spinner's message.
func (d *DiagnosticSystem) EndProgress(success bool, message string) {
	if d.progress == nil {
		return
	}
	spin := d.progress
	d.progress = nil
	if success {
		spin.Succeed(message)
	} else {
		spin.Fail(message)
	}
}

// Diff prints a colorized unified diff under a file header
func (d *DiagnosticSystem) Diff(diff ManifestDiff) {
	if d.level < DiagnosticInfo {
		return
	}

	fmt.Fprintf(d.output, "\n %s\n", d.paint(diff.Name, color.FgHiBlack, color.Bold))
	if diff.Empty() {
		fmt.Fprintf(d.output, " %s\n\n", d.paint("no changes", color.FgHiBlack))
		return
	}
	for _, line := range strings.Split(strings.TrimRight(diff.Text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprintln(d.output, d.paint(line, color.Bold))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprintln(d.output, d.paint(line, color.FgCyan))
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(d.output, d.paint(line, color.FgGreen))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(d.output, d.paint(line, color.FgRed))
		default:
			fmt.Fprintln(d.output, d.paint(line, color.FgHiBlack))
		}
	}
	fmt.Fprintf(d.output, " %s %s\n\n",
		d.paint(fmt.Sprintf("+%d", diff.Added), color.FgGreen),
		d.paint(fmt.Sprintf("-%d", diff.Removed), color.FgRed))
}

// writeMessage is the internal message writing function
func (d *DiagnosticSystem) writeMessage(writer io.Writer, level string, attr color.Attribute, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	var output strings.Builder
	output.WriteString(d.getIndent())

	if d.showTime {
		output.WriteString(time.Now().Format("15:04:05 "))
	}

	output.WriteString(d.paint(fmt.Sprintf("[%s]", level), attr))
	output.WriteString(" ")
	output.WriteString(message)
	output.WriteString("\n")

	fmt.Fprint(writer, output.String())
}

// paint applies color attributes when colors are enabled
func (d *DiagnosticSystem) paint(text string, attrs ...color.Attribute) string {
	if !d.useColors {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

// getIndent returns the current indentation string
func (d *DiagnosticSystem) getIndent() string {
	return strings.Repeat("  ", d.indent)
}

// shouldUseColors determines if colors should be used for w
func shouldUseColors(w io.Writer) bool {
	// Check if NO_COLOR is set (standard)
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check if FORCE_COLOR is set
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	return isTerminal(w)
}

// isTerminal reports whether w is a terminal file descriptor
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
