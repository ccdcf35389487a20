// Package config loads the CLI settings from an optional config file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/convert"
)

// Config holds the conversion settings. Any field left empty by the file
// takes its env-default value.
type Config struct {
	Input    string   `yaml:"input" toml:"input" json:"input" env-default:"request.json" validate:"required"`
	From     string   `yaml:"from" toml:"from" json:"from" validate:"omitempty,oneof=json yaml yml toml"`
	To       []string `yaml:"to" toml:"to" json:"to" env-default:"yaml,toml" validate:"min=1,dive,oneof=json yaml yml toml"`
	OutDir   string   `yaml:"out_dir" toml:"out_dir" json:"out_dir"`
	FailFast bool     `yaml:"fail_fast" toml:"fail_fast" json:"fail_fast"`
	MaxBytes int64    `yaml:"max_bytes" toml:"max_bytes" json:"max_bytes" validate:"gte=0"`
	LogLevel string   `yaml:"log_level" toml:"log_level" json:"log_level" env-default:"info" validate:"oneof=trace debug info warn error"`
	Language string   `yaml:"language" toml:"language" json:"language" env-default:"en" validate:"oneof=en ja"`
}

var validate = validator.New()

// Load reads path (YAML, TOML or JSON by extension) and validates the result.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config defaults: %w", err)
		}
	} else {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the field constraints. Call it again after flags override
// loaded values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Targets resolves To into formats, in order.
func (c *Config) Targets() ([]tariffconv.Format, error) {
	out := make([]tariffconv.Format, 0, len(c.To))
	for _, s := range c.To {
		f, err := tariffconv.ParseFormat(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Options builds the conversion options. The input format stays empty when
// From is unset so convert.File can infer it from the extension.
func (c *Config) Options() (convert.Options, error) {
	to, err := c.Targets()
	if err != nil {
		return convert.Options{}, err
	}
	opt := convert.Options{To: to, FailFast: c.FailFast, MaxBytes: c.MaxBytes}
	if c.From != "" {
		f, err := tariffconv.ParseFormat(c.From)
		if err != nil {
			return convert.Options{}, err
		}
		opt.From = f
	}
	return opt, nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Input: %s\n"+
			"From: %s\n"+
			"To: %s\n"+
			"OutDir: %s\n"+
			"FailFast: %t\n"+
			"MaxBytes: %d\n"+
			"LogLevel: %s\n"+
			"Language: %s\n",
		c.Input,
		c.From,
		strings.Join(c.To, ","),
		c.OutDir,
		c.FailFast,
		c.MaxBytes,
		c.LogLevel,
		c.Language,
	)
}
