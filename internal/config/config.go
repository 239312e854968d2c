package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Property names as a Gradle build would pass them with -P.
const (
	PropTarget           = "compose.desktop.preview.target"
	PropIDEPort          = "compose.desktop.preview.ide.port"
	PropJavaHome         = "java.home"
	PropPreviewClasspath = "compose.desktop.preview.classpath"
	PropUITooling        = "compose.desktop.preview.ui.tooling"
	PropHostClasspath    = "compose.desktop.preview.host.classpath"
)

// Config holds everything the configure command needs.
type Config struct {
	Target   string `yaml:"target" toml:"target" mapstructure:"compose.desktop.preview.target"`
	IDEPort  string `yaml:"ide_port" toml:"ide_port" mapstructure:"compose.desktop.preview.ide.port"`
	JavaHome string `yaml:"java_home" toml:"java_home" mapstructure:"java.home"`

	PreviewClasspath []string `yaml:"preview_classpath" toml:"preview_classpath" mapstructure:"compose.desktop.preview.classpath"`
	UITooling        []string `yaml:"ui_tooling" toml:"ui_tooling" mapstructure:"compose.desktop.preview.ui.tooling"`
	HostClasspath    []string `yaml:"host_classpath" toml:"host_classpath" mapstructure:"compose.desktop.preview.host.classpath"`

	// GradleUserHome overrides where the Gradle files cache is looked up.
	GradleUserHome string `yaml:"gradle_user_home" toml:"gradle_user_home" mapstructure:"gradle.user.home"`

	LogLevel string `yaml:"log_level" toml:"log_level" mapstructure:"previewkit.log.level"`
	LogJSON  bool   `yaml:"log_json" toml:"log_json" mapstructure:"previewkit.log.json"`
}

// PropertyError reports a missing or malformed property.
type PropertyError struct {
	Name   string
	Reason string
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("property %q: %s", e.Name, e.Reason)
}

// Default returns a Config with defaults applied.
func Default() *Config {
	return &Config{
		LogLevel: "info",
	}
}

// LoadFile decodes a YAML or TOML file onto cfg, chosen by extension.
// Fields absent from the file keep their current value.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return nil
}

// ApplyProperties decodes key=value properties onto cfg.
// Classpath properties are path-lists; booleans and numbers are parsed from strings.
// Unknown keys are ignored, the way a build ignores properties it does not read.
func ApplyProperties(cfg *Config, props map[string]string) error {
	if len(props) == 0 {
		return nil
	}

	input := make(map[string]any, len(props))
	for k, v := range props {
		input[k] = v
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(string(os.PathListSeparator)),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return fmt.Errorf("failed to create property decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("failed to decode properties: %w", err)
	}
	return nil
}

// ApplyEnv fills unset fields from the environment.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	fill := func(dst *string, keys ...string) {
		if *dst != "" {
			return
		}
		for _, k := range keys {
			if v := getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}

	fill(&cfg.Target, "PREVIEWKIT_TARGET")
	fill(&cfg.IDEPort, "PREVIEWKIT_IDE_PORT")
	fill(&cfg.JavaHome, "PREVIEWKIT_JAVA_HOME", "JAVA_HOME")
	fill(&cfg.GradleUserHome, "GRADLE_USER_HOME")
}

// Validate checks the properties the configure command cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Target) == "" {
		errs = append(errs, &PropertyError{Name: PropTarget, Reason: "not set"})
	}
	if strings.TrimSpace(c.IDEPort) == "" {
		errs = append(errs, &PropertyError{Name: PropIDEPort, Reason: "not set"})
	}
	if strings.TrimSpace(c.JavaHome) == "" {
		errs = append(errs, &PropertyError{Name: PropJavaHome, Reason: "not set and JAVA_HOME is empty"})
	}
	return errors.Join(errs...)
}
