package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/keydraft/internal/engine/content"
	"github.com/dshills/keydraft/internal/logging"
	"github.com/dshills/keydraft/internal/shortcut"
	"github.com/dshills/keydraft/internal/storage"
	"github.com/dshills/keydraft/internal/style"
)

// DefaultPlaceholder is the text shown in an empty document.
const DefaultPlaceholder = "Tell a story..."

// Config is the complete keydraft configuration.
type Config struct {
	Storage   StorageConfig         `toml:"storage" yaml:"storage"`
	Logging   LoggingConfig         `toml:"logging" yaml:"logging"`
	Editor    EditorConfig          `toml:"editor" yaml:"editor"`
	Shortcuts []ShortcutConfig      `toml:"shortcuts" yaml:"shortcuts"`
	Styles    map[string]style.Spec `toml:"styles" yaml:"styles"`
}

// StorageConfig selects where the document is kept.
type StorageConfig struct {
	Backend  string `toml:"backend" yaml:"backend"`
	Key      string `toml:"key" yaml:"key"`
	Dir      string `toml:"dir" yaml:"dir"`
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level      string `toml:"level" yaml:"level"`
	File       string `toml:"file" yaml:"file"`
	Console    bool   `toml:"console" yaml:"console"`
	MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `toml:"compress" yaml:"compress"`
}

// EditorConfig holds presentation settings.
type EditorConfig struct {
	Placeholder string `toml:"placeholder" yaml:"placeholder"`
}

// ShortcutConfig is one trigger rule. Exactly one of Block and Inline is set.
type ShortcutConfig struct {
	Trigger  string `toml:"trigger" yaml:"trigger"`
	Consumed int    `toml:"consumed" yaml:"consumed"`
	Block    string `toml:"block" yaml:"block"`
	Inline   string `toml:"inline" yaml:"inline"`
}

// Rule converts the entry to a shortcut rule.
func (s ShortcutConfig) Rule() (shortcut.Rule, error) {
	r := shortcut.Rule{Trigger: s.Trigger, Consumed: s.Consumed}
	switch {
	case s.Block != "" && s.Inline != "":
		return r, fmt.Errorf("%w: trigger %q sets both block and inline", shortcut.ErrInvalidRule, s.Trigger)
	case s.Block != "":
		r.Command = shortcut.SetBlockType(content.BlockType(s.Block))
	case s.Inline != "":
		r.Command = shortcut.ToggleInlineStyle(content.InlineStyle(strings.ToUpper(s.Inline)))
	}
	return r, r.Validate()
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: storage.BackendFile,
			Key:     storage.DefaultKey,
			Dir:     ".",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  logging.DefaultMaxSizeMB,
			MaxBackups: logging.DefaultMaxBackups,
			MaxAgeDays: logging.DefaultMaxAgeDays,
		},
		Editor: EditorConfig{Placeholder: DefaultPlaceholder},
	}
}

var backends = []string{storage.BackendFile, storage.BackendMemory, storage.BackendRedis}

// Validate checks the whole configuration and returns a *ValidationError
// listing every problem, or nil.
func (c *Config) Validate() error {
	var problems []Problem
	add := func(path string, code ProblemCode, format string, args ...any) {
		problems = append(problems, Problem{Path: path, Code: code, Message: fmt.Sprintf(format, args...)})
	}

	backend := strings.ToLower(c.Storage.Backend)
	if backend != "" && !slices.Contains(backends, backend) {
		add("storage.backend", CodeInvalidEnum, "%q is not one of %s", c.Storage.Backend, strings.Join(backends, ", "))
	}
	if backend == storage.BackendRedis && c.Storage.RedisURL == "" {
		add("storage.redis_url", CodeRequiredMissing, "required by the redis backend")
	}
	if key := c.Storage.Key; key != "" && (strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".")) {
		add("storage.key", CodeInvalidValue, "%q cannot be used as a key", key)
	}

	if c.Logging.Level != "" {
		if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
			add("logging.level", CodeInvalidEnum, "%q is not debug, info, warn or error", c.Logging.Level)
		}
	}
	for name, v := range map[string]int{
		"logging.max_size_mb":  c.Logging.MaxSizeMB,
		"logging.max_backups":  c.Logging.MaxBackups,
		"logging.max_age_days": c.Logging.MaxAgeDays,
	} {
		if v < 0 {
			add(name, CodeOutOfRange, "must not be negative, got %d", v)
		}
	}

	seen := make(map[string]int, len(c.Shortcuts))
	for i, s := range c.Shortcuts {
		path := fmt.Sprintf("shortcuts[%d]", i)
		if _, err := s.Rule(); err != nil {
			add(path, CodeInvalidValue, "%v", err)
			continue
		}
		if j, dup := seen[s.Trigger]; dup {
			add(path+".trigger", CodeInvalidValue, "%q already defined by shortcuts[%d]", s.Trigger, j)
			continue
		}
		seen[s.Trigger] = i
	}

	names := make([]string, 0, len(c.Styles))
	for name := range c.Styles {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if _, err := c.Styles[name].Attributes(); err != nil {
			add("styles."+name, CodeInvalidValue, "%v", err)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	slices.SortStableFunc(problems, func(a, b Problem) int { return strings.Compare(a.Path, b.Path) })
	return &ValidationError{Problems: problems}
}

// StorageOptions returns the storage backend settings.
func (c *Config) StorageOptions() storage.Config {
	return storage.Config{
		Backend:  c.Storage.Backend,
		Key:      c.Storage.Key,
		Dir:      c.Storage.Dir,
		RedisURL: c.Storage.RedisURL,
	}
}

// LoggingOptions returns the logger settings.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		Level:      c.Logging.Level,
		File:       c.Logging.File,
		Console:    c.Logging.Console,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAgeDays: c.Logging.MaxAgeDays,
		Compress:   c.Logging.Compress,
	}
}

// ShortcutTable builds the rule table. No configured shortcuts means the
// default table.
func (c *Config) ShortcutTable() (*shortcut.Table, error) {
	if len(c.Shortcuts) == 0 {
		return shortcut.DefaultTable(), nil
	}
	rules := make([]shortcut.Rule, 0, len(c.Shortcuts))
	for _, s := range c.Shortcuts {
		r, err := s.Rule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return shortcut.NewTable(rules...)
}

// StyleTable returns the default style table with the configured styles
// layered on top.
func (c *Config) StyleTable() (*style.Table, error) {
	return style.DefaultTable().ApplySpecs(c.Styles)
}

// Placeholder returns the configured placeholder or the default.
func (c *Config) Placeholder() string {
	if c.Editor.Placeholder == "" {
		return DefaultPlaceholder
	}
	return c.Editor.Placeholder
}
