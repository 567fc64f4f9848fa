// Package actions speaks the workflow-command protocol of the GitHub Actions
// runner: plain info lines, collapsible log groups, warning and error
// annotations, and secret masking. The format is fixed by the runner, so the
// logger writes it directly instead of going through a logging library.
package actions

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type Logger struct {
	out       io.Writer
	groupOpen bool
}

// NewLogger creates a Logger writing workflow commands to out
func NewLogger(out io.Writer) *Logger {
	return &Logger{out: out}
}

// Info writes a plain log line
func (l *Logger) Info(format string, args ...any) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

// StartGroup opens a collapsible log group, closing any group left open
func (l *Logger) StartGroup(name string) {
	l.EndGroup()
	fmt.Fprintf(l.out, "::group::%s\n", escapeData(name))
	l.groupOpen = true
}

// EndGroup closes the open log group, if any
func (l *Logger) EndGroup() {
	if l.groupOpen {
		fmt.Fprintln(l.out, "::endgroup::")
		l.groupOpen = false
	}
}

// Warning writes a warning annotation; the run continues
func (l *Logger) Warning(format string, args ...any) {
	fmt.Fprintf(l.out, "::warning::%s\n", escapeData(fmt.Sprintf(format, args...)))
}

// Error writes an error annotation
func (l *Logger) Error(format string, args ...any) {
	fmt.Fprintf(l.out, "::error::%s\n", escapeData(fmt.Sprintf(format, args...)))
}

// SetFailed closes any open group and writes the failure annotation. Error
// annotations render outside of groups, so the message stays visible even
// when the failure happened mid-group.
func (l *Logger) SetFailed(format string, args ...any) {
	l.EndGroup()
	l.Error(format, args...)
}

// AddMask registers a secret so the runner redacts it from the log. The
// runner rejects empty masks, so those are skipped.
func (l *Logger) AddMask(value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(l.out, "::add-mask::%s\n", escapeData(value))
}

// escapeData applies the runner's data escaping for command payloads
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// GetInput reads an action input the way the runner delivers it: the env
// variable INPUT_<NAME> with spaces mapped to underscores.
func GetInput(name string) string {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	return strings.TrimSpace(os.Getenv(key))
}
