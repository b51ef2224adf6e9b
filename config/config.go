// Package config loads calculator preferences from TOML or YAML files and
// the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/session"
)

// EnvPrefix is the prefix of environment variables read by ApplyEnv in the
// calculator commands.
const EnvPrefix = "SCICALC"

// Config holds calculator preferences.
type Config struct {
	// Angle is the initial angle mode, DEG or RAD.
	Angle string `toml:"angle" yaml:"angle"`
	// Lenient enables lenient parsing and evaluation.
	Lenient bool `toml:"lenient" yaml:"lenient"`
	// Scientific is whether sessions start in scientific mode.
	Scientific bool `toml:"scientific" yaml:"scientific"`
	// HistorySize is the number of calculations a session remembers.
	HistorySize int `toml:"history_size" yaml:"history_size"`
	// LogLevel is debug, info, warn, or error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// Format is a printf verb for results, e.g. "%.4f". Empty means the
	// calculator's own formatting.
	Format string `toml:"format" yaml:"format"`
	// Aliases maps extra function names to the functions they call, e.g.
	// sqrt2 = "√".
	Aliases map[string]string `toml:"aliases" yaml:"aliases"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Angle:       "DEG",
		Scientific:  true,
		HistorySize: session.DefaultHistorySize,
		LogLevel:    "info",
	}
}

// Format is a configuration file format.
type Format int

const (
	// FormatTOML is the default format.
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DetectFormat determines the format of a configuration file from its
// extension. Anything other than .yaml or .yml is TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads a configuration file. Settings missing from the file keep
// their defaults. Environment variables in path are expanded.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read config: %w", err)
	}
	cfg := Default()
	switch f := DetectFormat(path); f {
	case FormatTOML:
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("couldn't parse config %s: %w", path, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("couldn't parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables named with the
// given prefix: prefix_ANGLE, prefix_LENIENT, prefix_SCIENTIFIC,
// prefix_HISTORY_SIZE, prefix_LOG_LEVEL, and prefix_FORMAT. Unset variables
// change nothing.
func (c *Config) ApplyEnv(prefix string) error {
	var errs []error
	env := func(name string) (string, bool) {
		return os.LookupEnv(prefix + "_" + name)
	}
	boolean := func(name string, p *bool) {
		if v, ok := env(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s_%s: %w", prefix, name, err))
				return
			}
			*p = b
		}
	}
	if v, ok := env("ANGLE"); ok {
		c.Angle = v
	}
	boolean("LENIENT", &c.Lenient)
	boolean("SCIENTIFIC", &c.Scientific)
	if v, ok := env("HISTORY_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s_HISTORY_SIZE: %w", prefix, err))
		} else {
			c.HistorySize = n
		}
	}
	if v, ok := env("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := env("FORMAT"); ok {
		c.Format = v
	}
	return errors.Join(errs...)
}

// Validate checks every setting and reports all problems found.
func (c *Config) Validate() error {
	var errs []error
	if _, err := scicalc.ParseAngleMode(c.Angle); err != nil {
		errs = append(errs, err)
	}
	if c.HistorySize < 0 {
		errs = append(errs, fmt.Errorf("history size %d is negative", c.HistorySize))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := checkFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	for _, name := range c.aliasNames() {
		if !validAlias(name) {
			errs = append(errs, fmt.Errorf("invalid alias name %q", name))
			continue
		}
		if _, ok := scicalc.LookupFunc(c.Aliases[name]); !ok {
			errs = append(errs, fmt.Errorf("alias %s: unknown function %q", name, c.Aliases[name]))
		}
	}
	return errors.Join(errs...)
}

// AngleMode returns the configured angle mode, or degrees if it is invalid.
func (c *Config) AngleMode() scicalc.AngleMode {
	mode, _ := scicalc.ParseAngleMode(c.Angle)
	return mode
}

// ParseOptions returns the parsing options for the configured aliases and
// leniency. Invalid aliases are skipped.
func (c *Config) ParseOptions() []scicalc.ParseOption {
	var opts []scicalc.ParseOption
	for _, name := range c.aliasNames() {
		if f, ok := scicalc.LookupFunc(c.Aliases[name]); ok && validAlias(name) {
			opts = append(opts, scicalc.ParseFunc(name, f))
		}
	}
	if c.Lenient {
		opts = append(opts, scicalc.Lenient())
	}
	return opts
}

// Level returns the configured log level, or info if it is invalid.
func (c *Config) Level() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// checkFormat reports whether f is a printf format for a single float64.
func checkFormat(f string) error {
	if f == "" {
		return nil
	}
	if !strings.Contains(f, "%") {
		return fmt.Errorf("format %q has no verb", f)
	}
	if out := fmt.Sprintf(f, 1.5); strings.Contains(out, "%!") {
		return fmt.Errorf("format %q does not print a number: %s", f, out)
	}
	return nil
}

// validAlias reports whether name can be a function name without taking over
// numbers or operators: it starts with a letter and contains no operator,
// decimal point, or space.
func validAlias(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsLetter(r) {
		return false
	}
	return !strings.ContainsAny(name, scicalc.Operators+". \t")
}

func (c *Config) aliasNames() []string {
	names := make([]string, 0, len(c.Aliases))
	for name := range c.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
