// Package config loads the editor configuration from YAML with struct-tag defaults.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Editor  EditorConfig  `yaml:"editor"`
	Submit  SubmitConfig  `yaml:"submit"`
	Drafts  DraftsConfig  `yaml:"drafts"`
	Logging LoggingConfig `yaml:"logging"`
}

type EditorConfig struct {
	// Renderer selects the markdown pipeline: "classic" or "mmark".
	Renderer    string `yaml:"renderer" default:"classic"`
	SyntaxTheme string `yaml:"syntax_theme" default:"gruvbox"`
	// Demo disables draft persistence for the whole session.
	Demo bool `yaml:"demo" default:"false"`
	// PollIntervalMs is how often the session probes for the markdown
	// converter before the first render.
	PollIntervalMs int `yaml:"poll_interval_ms" default:"100"`
}

type SubmitConfig struct {
	Endpoint string `yaml:"endpoint" default:"http://localhost:8080/post/create"`
}

type DraftsConfig struct {
	// Path to the sqlite draft database. Empty means an in-memory store
	// that does not survive restarts.
	Path string `yaml:"path" default:""`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

var AppConfig *Config

func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	// Try to read and parse the config file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		AppConfig = config
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	AppConfig = config
	return nil
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
