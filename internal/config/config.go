package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the complete toolchain configuration
type Config struct {
	REPL   REPLConfig   `toml:"repl" yaml:"repl"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Limits LimitsConfig `toml:"limits" yaml:"limits"`
	Log    LogConfig    `toml:"log" yaml:"log"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// REPLConfig holds interactive loop settings
type REPLConfig struct {
	Prompt string `toml:"prompt" yaml:"prompt"`
	Banner bool   `toml:"banner" yaml:"banner"`
}

// OutputConfig holds terminal output settings
type OutputConfig struct {
	// Color is "auto", "always" or "never".
	Color string `toml:"color" yaml:"color"`
}

// LimitsConfig bounds recursion in the parser and the evaluator
type LimitsConfig struct {
	MaxParseDepth int `toml:"max_parse_depth" yaml:"max_parse_depth"`
	MaxEvalDepth  int `toml:"max_eval_depth" yaml:"max_eval_depth"`
}

// LogConfig holds commonlog settings
type LogConfig struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	File      string `toml:"file" yaml:"file"`
}

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	// EnvVar names a configuration file that overrides the search path.
	EnvVar = "MONO_CONFIG"
)

// Default returns the configuration used when no file is found
func Default() *Config {
	cfg := &Config{REPL: REPLConfig{Banner: true}}
	cfg.applyDefaults()
	return cfg
}

// Load reads a TOML or YAML file, chosen by extension. Missing keys take
// their default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// banner defaults to on, so it is seeded before decoding
	cfg := Config{REPL: REPLConfig{Banner: true}}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.Path = path
	return &cfg, nil
}

// Discover returns the first configuration found in this order: explicit
// (when non-empty), $MONO_CONFIG, ./.mono.toml, ./.mono.yaml, then
// <user config dir>/mono/config.toml. Defaults are returned when none exist.
func Discover(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if env := os.Getenv(EnvVar); env != "" {
		return Load(env)
	}

	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// SearchPaths lists the implicit configuration locations in priority order
func SearchPaths() []string {
	paths := []string{".mono.toml", ".mono.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, "mono", "config.toml"),
			filepath.Join(dir, "mono", "config.yaml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = ">> "
	}
	if c.Output.Color == "" {
		c.Output.Color = ColorAuto
	}
	if c.Limits.MaxParseDepth == 0 {
		c.Limits.MaxParseDepth = 200
	}
	if c.Limits.MaxEvalDepth == 0 {
		c.Limits.MaxEvalDepth = 1000
	}
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color must be %q, %q or %q, got %q", ColorAuto, ColorAlways, ColorNever, c.Output.Color)
	}
	if c.Limits.MaxParseDepth < 0 {
		return fmt.Errorf("limits.max_parse_depth must be positive, got %d", c.Limits.MaxParseDepth)
	}
	if c.Limits.MaxEvalDepth < 0 {
		return fmt.Errorf("limits.max_eval_depth must be positive, got %d", c.Limits.MaxEvalDepth)
	}
	if c.Log.Verbosity < -4 || c.Log.Verbosity > 2 {
		return fmt.Errorf("log.verbosity must be between -4 and 2, got %d", c.Log.Verbosity)
	}
	return nil
}

// UseColor resolves the color setting; tty reports whether output is a
// terminal.
func (c *Config) UseColor(tty bool) bool {
	switch c.Output.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return tty
}

// Encode writes the configuration as TOML
func (c *Config) Encode() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", err
	}
	return buf.String(), nil
}
