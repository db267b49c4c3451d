package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/jsonview/config"
	"github.com/grovetools/jsonview/pkg/paths"
)

// Environment variables read by NewLogger.
const (
	EnvLogLevel  = "JSONVIEW_LOG_LEVEL"
	EnvLogCaller = "JSONVIEW_LOG_CALLER"
	EnvDebug     = "JSONVIEW_DEBUG"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	levelOverride *logrus.Level
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	var logCfg Config
	if cfg, err := config.LoadDefault(); err == nil {
		if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	}

	entry := newLogger(component, logCfg, isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
	loggers[component] = entry
	return entry
}

// newLogger builds a logger from an explicit configuration. interactive
// tells whether stderr is a terminal.
func newLogger(component string, logCfg Config, interactive bool) *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(resolveLevel(logCfg))

	if os.Getenv(EnvLogCaller) == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}
	logger.SetFormatter(formatterFor(logCfg.Format.Preset, logCfg.Format))

	if logCfg.File.Enabled {
		if hook, err := newFileHook(logCfg.File); err != nil {
			logger.Warnf("Failed to open log file: %v", err)
		} else {
			logger.AddHook(hook)
		}
	}

	if shouldLogToStderr(logCfg.Format.StructuredToStderr, logger.GetLevel(), interactive) {
		logger.SetOutput(GetGlobalOutput())
	} else {
		logger.SetOutput(io.Discard)
	}

	return logger.WithField("component", component)
}

func resolveLevel(logCfg Config) logrus.Level {
	if levelOverride != nil {
		return *levelOverride
	}
	levelStr := "info"
	if env := os.Getenv(EnvLogLevel); env != "" {
		levelStr = env
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func formatterFor(preset string, format FormatConfig) logrus.Formatter {
	switch preset {
	case "json":
		return &logrus.JSONFormatter{}
	case "simple":
		return &TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}}
	default:
		return &TextFormatter{Config: format}
	}
}

func shouldLogToStderr(mode string, level logrus.Level, interactive bool) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		isDebug := os.Getenv(EnvDebug) == "1" || level >= logrus.DebugLevel
		return isDebug || !interactive
	}
}

// SetLevel changes the level of every logger, including ones created
// later. The CLI uses it for --verbose.
func SetLevel(level logrus.Level) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	levelOverride = &level
	for _, entry := range loggers {
		entry.Logger.SetLevel(level)
		if level >= logrus.DebugLevel {
			entry.Logger.SetOutput(GetGlobalOutput())
		}
	}
}

// SetFormatter replaces the formatter of every existing logger.
func SetFormatter(f logrus.Formatter) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, entry := range loggers {
		entry.Logger.SetFormatter(f)
	}
}

// fileHook writes every entry to the log file with its own formatter, so
// the file can be JSON while stderr stays text.
type fileHook struct {
	mu        sync.Mutex
	writer    io.Writer
	formatter logrus.Formatter
}

func newFileHook(sink FileSinkConfig) (*fileHook, error) {
	path := sink.Path
	if path == "" {
		path = paths.LogFile()
	}
	path = expandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	var formatter logrus.Formatter = &TextFormatter{Config: FormatConfig{}, Plain: true}
	if sink.Format == "json" {
		formatter = &logrus.JSONFormatter{}
	}
	return &fileHook{writer: file, formatter: formatter}, nil
}

func (h *fileHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *fileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.writer.Write(line)
	return err
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
