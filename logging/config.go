package logging

// Config is the logging section of jsonview.yml.
type Config struct {
	// Level is the minimum level written: debug, info, warn or error.
	// JSONVIEW_LOG_LEVEL takes precedence.
	Level string `yaml:"level"`

	// ReportCaller adds file, line and function to each entry.
	// JSONVIEW_LOG_CALLER=true enables it too.
	ReportCaller bool `yaml:"report_caller"`

	File   FileSinkConfig `yaml:"file"`
	Format FormatConfig   `yaml:"format"`
}

// FileSinkConfig configures the file sink. It is off unless enabled.
type FileSinkConfig struct {
	Enabled bool `yaml:"enabled"`
	// Path defaults to jsonview.log in the state directory.
	Path   string `yaml:"path"`
	Format string `yaml:"format,omitempty"` // "text" (default) or "json"
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset           string `yaml:"preset"`
	DisableTimestamp bool   `yaml:"disable_timestamp"`
	DisableComponent bool   `yaml:"disable_component"`
	// StructuredToStderr is "auto" (default), "always" or "never". In auto
	// mode entries reach stderr only when debugging or when stderr is not a
	// terminal.
	StructuredToStderr string `yaml:"structured_to_stderr"`
}
