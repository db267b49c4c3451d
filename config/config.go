package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/format"
	"github.com/grovetools/jsonview/pkg/paths"
)

// EnvConfigPath names an explicit config file, bypassing discovery.
const EnvConfigPath = "JSONVIEW_CONFIG"

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames are searched for in each directory, in order.
var configNames = []string{
	"jsonview.yml",
	"jsonview.yaml",
	"jsonview.toml",
	".jsonview.yml",
	".jsonview.yaml",
	".jsonview.toml",
}

var overrideNames = []string{
	"jsonview.override.yml",
	"jsonview.override.yaml",
	"jsonview.override.toml",
}

// Load reads one configuration file on top of the defaults, without
// consulting the global or project layers.
func Load(path string) (*Config, error) {
	raw, err := readLayer(path)
	if err != nil {
		return nil, err
	}
	return finalize(raw)
}

// LoadDefault loads configuration for the current directory. When
// JSONVIEW_CONFIG is set, that file is loaded instead.
func LoadDefault() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the
// given directory:
// 1. Global config (~/.config/jsonview/jsonview.yml) - base layer
// 2. Project config (jsonview.yml found upward from startDir) - overrides global
// 3. Local override (jsonview.override.yml next to the project file) - overrides all
//
// Every layer is optional; with none present the defaults are returned.
func LoadFrom(startDir string) (*Config, error) {
	return LoadFromWithLogger(startDir, logrus.New())
}

// LoadFromWithLogger is LoadFrom with debug output sent to logger.
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	layered, err := loadLayers(startDir, logger)
	if err != nil {
		return nil, err
	}
	return layered.Final, nil
}

// LoadLayered loads every layer for startDir without discarding them, for
// `config show`.
func LoadLayered(startDir string) (*LayeredConfig, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return loadLayers(startDir, logger)
}

func loadLayers(startDir string, logger *logrus.Logger) (*LayeredConfig, error) {
	layered := &LayeredConfig{}

	// 1. Global config (optional)
	if globalPath := findGlobalConfig(); globalPath != "" {
		logger.WithField("path", globalPath).Debug("Loading global configuration")
		raw, err := readLayer(globalPath)
		if err != nil {
			logger.WithError(err).Warn("Failed to load global configuration, continuing without it")
		} else {
			layered.Layers = append(layered.Layers, Layer{Source: SourceGlobal, Path: globalPath, Raw: raw})
		}
	}

	// 2. Project config (optional, but errors in it are fatal)
	projectPath, err := FindConfigFile(startDir)
	if err == nil {
		logger.WithField("path", projectPath).Debug("Loading project configuration")
		raw, err := readLayer(projectPath)
		if err != nil {
			return nil, err
		}
		layered.Layers = append(layered.Layers, Layer{Source: SourceProject, Path: projectPath, Raw: raw})

		// 3. Override files next to the project config
		projectDir := filepath.Dir(projectPath)
		for _, name := range overrideNames {
			overridePath := filepath.Join(projectDir, name)
			if _, err := os.Stat(overridePath); err != nil {
				continue
			}
			logger.WithField("path", overridePath).Debug("Loading local override configuration")
			raw, err := readLayer(overridePath)
			if err != nil {
				logger.WithError(err).Warn("Failed to parse override file, skipping")
				continue
			}
			layered.Layers = append(layered.Layers, Layer{Source: SourceOverride, Path: overridePath, Raw: raw})
		}
	} else if !errors.Is(err, errors.ErrCodeConfigNotFound) {
		return nil, err
	}

	merged := map[string]interface{}{}
	for _, layer := range layered.Layers {
		merged = mergeMaps(merged, layer.Raw)
	}

	cfg, err := finalize(merged)
	if err != nil {
		return nil, err
	}
	layered.Final = cfg

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(cfg); err == nil {
			logger.Debugf("Merged configuration:\n%s", string(data))
		}
	}
	return layered, nil
}

// LoadFromBytes parses YAML configuration from a byte array.
func LoadFromBytes(data []byte) (*Config, error) {
	raw, err := parseRaw(data, "yaml")
	if err != nil {
		return nil, err
	}
	return finalize(raw)
}

// LoadFromTOML parses TOML configuration from a byte array.
func LoadFromTOML(data []byte) (*Config, error) {
	raw, err := parseRaw(data, "toml")
	if err != nil {
		return nil, err
	}
	return finalize(raw)
}

// finalize validates the merged raw map against the schema, decodes it and
// applies defaults and semantic checks.
func finalize(raw map[string]interface{}) (*Config, error) {
	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}
	if err := validator.Validate(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "schema validation failed")
	}

	cfg, err := decode(raw)
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var indentType = reflect.TypeOf(format.Indent{})

// indentHook lets indent be written as a number or a string.
func indentHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != indentType {
		return data, nil
	}
	return format.ParseIndent(fmt.Sprint(data))
}

func decode(raw map[string]interface{}) (*Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &cfg,
		DecodeHook: indentHook,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create config decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode configuration")
	}
	return &cfg, nil
}

func readLayer(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	syntax := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		syntax = "toml"
	}
	raw, err := parseRaw(data, syntax)
	if err != nil {
		if coded, ok := err.(*errors.CodedError); ok {
			coded.WithDetail("path", path)
		}
		return nil, err
	}
	return raw, nil
}

func parseRaw(data []byte, syntax string) (map[string]interface{}, error) {
	expanded := []byte(expandEnvVars(string(data)))
	raw := map[string]interface{}{}

	switch syntax {
	case "toml":
		if err := toml.Unmarshal(expanded, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
	default:
		if err := yaml.Unmarshal(expanded, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
		}
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return raw, nil
}

// FindConfigFile searches for a project configuration file from startDir up
// to the filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

// findGlobalConfig returns the first global config file that exists.
func findGlobalConfig() string {
	for _, path := range paths.GlobalConfigFiles() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
