// Package config loads the jsonedit configuration file over the embedded
// defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jsonedit/pkg/settings"
)

//go:embed default_config.yaml
var defaultConfig []byte

// Config is the file layout.
type Config struct {
	Editor  Editor           `yaml:"editor"`
	UI      UI               `yaml:"ui"`
	Session Session          `yaml:"session"`
	Themes  map[string]Theme `yaml:"themes"`
}

// Editor holds document formatting and import options.
type Editor struct {
	Indent   int    `yaml:"indent"`
	Minified bool   `yaml:"minified"`
	Lenient  bool   `yaml:"lenient"`
	From     string `yaml:"from"`
}

// UI holds display options.
type UI struct {
	Theme           string `yaml:"theme"`
	NoColor         bool   `yaml:"no_color"`
	ShowLineNumbers bool   `yaml:"show_line_numbers"`
	HighlightStyle  string `yaml:"highlight_style"`
}

// Session holds persistence options.
type Session struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Theme is a palette of terminal colors: ANSI 256 numbers or "#rrggbb".
type Theme struct {
	Accent     string `yaml:"accent"`
	Key        string `yaml:"key"`
	String     string `yaml:"string"`
	Number     string `yaml:"number"`
	Boolean    string `yaml:"boolean"`
	Null       string `yaml:"null"`
	Container  string `yaml:"container"`
	Muted      string `yaml:"muted"`
	Error      string `yaml:"error"`
	Success    string `yaml:"success"`
	SelectedFG string `yaml:"selected_fg"`
	SelectedBG string `yaml:"selected_bg"`
	HeaderFG   string `yaml:"header_fg"`
	HeaderBG   string `yaml:"header_bg"`
	Insert     string `yaml:"insert"`
	Delete     string `yaml:"delete"`
}

// DefaultYAML returns a copy of the embedded default file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultConfig...)
}

// Default returns the embedded defaults.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfig, &cfg); err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return cfg
}

// DefaultPath is $XDG_CONFIG_HOME/jsonedit/config.yaml, falling back to
// ~/.config.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, settings.CliBinaryName, "config.yaml")
}

// Load reads path over the defaults. An empty path loads DefaultPath when it
// exists. A missing explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Merge(&cfg, data); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Merge decodes data on top of cfg. Keys absent from data keep their value;
// themes merge by name.
func Merge(cfg *Config, data []byte) error {
	themes := cfg.Themes
	cfg.Themes = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Themes = themes
		return fmt.Errorf("decode config: %w", err)
	}
	merged := make(map[string]Theme, len(themes)+len(cfg.Themes))
	for name, th := range themes {
		merged[name] = th
	}
	for name, th := range cfg.Themes {
		merged[name] = overlay(merged[name], th)
	}
	cfg.Themes = merged
	return cfg.Validate()
}

// overlay fills empty fields of top from base.
func overlay(base, top Theme) Theme {
	pick := func(b, t string) string {
		if t != "" {
			return t
		}
		return b
	}
	return Theme{
		Accent:     pick(base.Accent, top.Accent),
		Key:        pick(base.Key, top.Key),
		String:     pick(base.String, top.String),
		Number:     pick(base.Number, top.Number),
		Boolean:    pick(base.Boolean, top.Boolean),
		Null:       pick(base.Null, top.Null),
		Container:  pick(base.Container, top.Container),
		Muted:      pick(base.Muted, top.Muted),
		Error:      pick(base.Error, top.Error),
		Success:    pick(base.Success, top.Success),
		SelectedFG: pick(base.SelectedFG, top.SelectedFG),
		SelectedBG: pick(base.SelectedBG, top.SelectedBG),
		HeaderFG:   pick(base.HeaderFG, top.HeaderFG),
		HeaderBG:   pick(base.HeaderBG, top.HeaderBG),
		Insert:     pick(base.Insert, top.Insert),
		Delete:     pick(base.Delete, top.Delete),
	}
}

// Validate checks value ranges and the selected theme.
func (c Config) Validate() error {
	if c.Editor.Indent < 0 || c.Editor.Indent > 8 {
		return fmt.Errorf("editor.indent must be between 0 and 8, got %d", c.Editor.Indent)
	}
	if _, ok := c.Themes[c.UI.Theme]; !ok {
		return fmt.Errorf("ui.theme %q is not defined (have %s)", c.UI.Theme, strings.Join(c.ThemeNames(), ", "))
	}
	return nil
}

// IndentString is the pretty-print unit for Editor.Indent.
func (c Config) IndentString() string {
	return strings.Repeat(" ", c.Editor.Indent)
}

// Theme returns the selected palette.
func (c Config) Theme() Theme {
	return c.Themes[c.UI.Theme]
}

// ThemeNames lists the defined themes, sorted.
func (c Config) ThemeNames() []string {
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SessionPath is the database location, or "" when persistence is off.
func (c Config) SessionPath(fallback string) string {
	if !c.Session.Enabled {
		return ""
	}
	if c.Session.Path != "" {
		return c.Session.Path
	}
	return fallback
}
