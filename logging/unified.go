package logging

import (
	"fmt"
	"io"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/jsonview/tui/theme"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// UnifiedLogger writes one message both as a styled line for the user and
// as a structured entry for the log sinks.
//
//	ulog := logging.NewUnifiedLogger("validate")
//	ulog.Success("Valid JSON").Field("file", path).Log()
type UnifiedLogger struct {
	component  string
	writer     io.Writer
	structured *logrus.Entry
}

// NewUnifiedLogger creates a unified logger for a component. Pretty lines go
// to the shared stderr sink.
func NewUnifiedLogger(component string) *UnifiedLogger {
	return &UnifiedLogger{
		component:  component,
		writer:     GetGlobalOutput(),
		structured: NewLogger(component),
	}
}

// WithWriter redirects the pretty output.
func (u *UnifiedLogger) WithWriter(w io.Writer) *UnifiedLogger {
	u.writer = w
	return u
}

// Component returns the component name for this logger.
func (u *UnifiedLogger) Component() string { return u.component }

// Structured returns the underlying logrus entry.
func (u *UnifiedLogger) Structured() *logrus.Entry { return u.structured }

func (u *UnifiedLogger) entry(level logrus.Level, msg, icon string) *LogEntry {
	return &LogEntry{logger: u, msg: msg, level: level, icon: icon, fields: logrus.Fields{}}
}

// Debug is hidden from pretty output unless the logger is at debug level.
func (u *UnifiedLogger) Debug(msg string) *LogEntry {
	return u.entry(logrus.DebugLevel, msg, theme.IconBullet)
}

// Info returns a LogEntry at INFO level.
func (u *UnifiedLogger) Info(msg string) *LogEntry {
	return u.entry(logrus.InfoLevel, msg, theme.IconInfo)
}

// Warn returns a LogEntry at WARN level.
func (u *UnifiedLogger) Warn(msg string) *LogEntry {
	return u.entry(logrus.WarnLevel, msg, theme.IconWarning)
}

// Error returns a LogEntry at ERROR level.
func (u *UnifiedLogger) Error(msg string) *LogEntry {
	return u.entry(logrus.ErrorLevel, msg, theme.IconError)
}

// Success is logged at INFO level with status=success.
func (u *UnifiedLogger) Success(msg string) *LogEntry {
	e := u.entry(logrus.InfoLevel, msg, theme.IconSuccess)
	e.fields["status"] = "success"
	return e
}

// LogEntry accumulates options until Log writes it.
type LogEntry struct {
	logger     *UnifiedLogger
	msg        string
	level      logrus.Level
	fields     logrus.Fields
	icon       string
	prettyMsg  string
	prettyOnly bool
	structOnly bool
}

// Field adds a structured field. Fields do not appear in the pretty line.
func (e *LogEntry) Field(key string, value interface{}) *LogEntry {
	e.fields[key] = value
	return e
}

// Err attaches an error as the "error" field.
func (e *LogEntry) Err(err error) *LogEntry {
	if err != nil {
		e.fields["error"] = err.Error()
	}
	return e
}

// Pretty replaces the styled line; the structured message is unchanged.
func (e *LogEntry) Pretty(styled string) *LogEntry {
	e.prettyMsg = styled
	return e
}

// PrettyOnly skips the structured entry.
func (e *LogEntry) PrettyOnly() *LogEntry {
	e.prettyOnly = true
	return e
}

// StructuredOnly skips the pretty line.
func (e *LogEntry) StructuredOnly() *LogEntry {
	e.structOnly = true
	return e
}

// Log writes the entry.
func (e *LogEntry) Log() {
	structured := e.logger.structured
	pretty := e.render()

	if !e.structOnly && (e.level < logrus.DebugLevel || structured.Logger.IsLevelEnabled(e.level)) {
		fmt.Fprintln(e.logger.writer, pretty)
	}
	if !e.prettyOnly {
		e.fields["pretty_text"] = ansiRegex.ReplaceAllString(pretty, "")
		structured.WithFields(e.fields).Log(e.level, e.msg)
	}
}

func (e *LogEntry) render() string {
	if e.prettyMsg != "" {
		return e.prettyMsg
	}
	t := theme.DefaultTheme
	line := e.icon + " " + e.msg
	switch {
	case e.level == logrus.WarnLevel:
		return t.Warning.Render(line)
	case e.level == logrus.ErrorLevel:
		return t.Error.Render(line)
	case e.level == logrus.DebugLevel:
		return t.Muted.Render(line)
	case e.fields["status"] == "success":
		return t.Success.Render(line)
	default:
		return t.Info.Render(line)
	}
}
