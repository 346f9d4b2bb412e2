package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KEYDRAFT_"

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := Decode(path, data, cfg); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses data into cfg using the format implied by the extension of
// path. Fields absent from data keep their current value; unknown fields
// are an error.
func Decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return tomlError(path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

func tomlError(path string, err error) error {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
	}
	return pe
}

type envSetter func(c *Config, v string) error

func setString(field func(*Config) *string) envSetter {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func setBool(field func(*Config) *bool) envSetter {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func setInt(field func(*Config) *int) envSetter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

// envMapping lists the supported overrides, without the prefix.
var envMapping = map[string]envSetter{
	"STORAGE_BACKEND":      setString(func(c *Config) *string { return &c.Storage.Backend }),
	"STORAGE_KEY":          setString(func(c *Config) *string { return &c.Storage.Key }),
	"STORAGE_DIR":          setString(func(c *Config) *string { return &c.Storage.Dir }),
	"STORAGE_REDIS_URL":    setString(func(c *Config) *string { return &c.Storage.RedisURL }),
	"LOGGING_LEVEL":        setString(func(c *Config) *string { return &c.Logging.Level }),
	"LOGGING_FILE":         setString(func(c *Config) *string { return &c.Logging.File }),
	"LOGGING_CONSOLE":      setBool(func(c *Config) *bool { return &c.Logging.Console }),
	"LOGGING_MAX_SIZE_MB":  setInt(func(c *Config) *int { return &c.Logging.MaxSizeMB }),
	"LOGGING_MAX_BACKUPS":  setInt(func(c *Config) *int { return &c.Logging.MaxBackups }),
	"LOGGING_MAX_AGE_DAYS": setInt(func(c *Config) *int { return &c.Logging.MaxAgeDays }),
	"LOGGING_COMPRESS":     setBool(func(c *Config) *bool { return &c.Logging.Compress }),
	"EDITOR_PLACEHOLDER":   setString(func(c *Config) *string { return &c.Editor.Placeholder }),
}

// ApplyEnv applies KEYDRAFT_ overrides found by lookup. Values that cannot
// be parsed are reported together as a *ValidationError.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var problems []Problem
	for name, set := range envMapping {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		if err := set(cfg, v); err != nil {
			problems = append(problems, Problem{
				Path:    EnvPrefix + name,
				Code:    CodeInvalidValue,
				Message: fmt.Sprintf("cannot parse %q", v),
			})
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "keydraft", "config.toml"), nil
}
