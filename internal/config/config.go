// Package config loads trainer settings from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Selection strategies.
const (
	StrategySmart  = "smart"
	StrategyScore  = "score"
	StrategyRandom = "random"
)

// Config holds all trainer settings.
type Config struct {
	DataFile  string `yaml:"data_file" validate:"required"`
	ItemCount int    `yaml:"item_count" validate:"gt=0,lte=1000"`
	Strategy  string `yaml:"strategy" validate:"oneof=smart score random"`
	Rounds    int    `yaml:"rounds" validate:"gte=0"` // 0 means until input ends
	Seed      int64  `yaml:"seed"`                    // 0 means time based
	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// Default returns the settings used when no file or flag overrides them.
func Default() Config {
	return Config{
		DataFile:  "data/cj.csv",
		ItemCount: 10,
		Strategy:  StrategySmart,
		LogLevel:  "info",
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. Unknown keys are rejected to catch typos.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field constraint and reports all violations.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
