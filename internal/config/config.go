// Package config layers runtime settings: built-in defaults, then an
// optional YAML config file, then CRATES_* environment variables, then
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const defaultBaseURL = "https://crates.io/api/v1"

// Config holds runtime settings for the CLI app. Rates are in events per
// second, matching the config file.
type Config struct {
	BaseURL   string `mapstructure:"base_url" yaml:"base_url"`
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	DataDir   string `mapstructure:"data_dir" yaml:"data_dir"`

	TickRate       float64 `mapstructure:"tick_rate" yaml:"tick_rate"`
	FrameRate      float64 `mapstructure:"frame_rate" yaml:"frame_rate"`
	KeyRefreshRate float64 `mapstructure:"key_refresh_rate" yaml:"key_refresh_rate"`
	PageSize       uint64  `mapstructure:"page_size" yaml:"page_size"`

	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	CacheEnabled bool   `mapstructure:"cache_enabled" yaml:"cache_enabled"`

	Keybindings map[string]map[string]string `mapstructure:"keybindings" yaml:"keybindings"`
}

// Load resolves the effective configuration. flags may be nil; when given
// they win over every other layer. configFile forces a specific file
// instead of the default search path.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "crates-cli"))
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("CRATES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
		// Dashed CLI spellings of the underscored config keys.
		for key, name := range map[string]string{
			"base_url":         "base-url",
			"log_level":        "log-level",
			"tick_rate":        "tick-rate",
			"frame_rate":       "frame-rate",
			"key_refresh_rate": "key-refresh-rate",
			"page_size":        "page-size",
			"data_dir":         "data-dir",
			"cache_enabled":    "cache",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}

	// Viper lowercases keys, which would fold chords like "G" into "g".
	// Keybindings are read from the file directly to stay case-sensitive.
	cfg.Keybindings = DefaultKeybindings()
	if file := v.ConfigFileUsed(); file != "" {
		overlay, err := keybindingsFromFile(file)
		if err != nil {
			return Config{}, err
		}
		mergeKeybindings(cfg.Keybindings, overlay)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func keybindingsFromFile(path string) (map[string]map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var doc struct {
		Keybindings map[string]map[string]string `yaml:"keybindings"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse keybindings in %s: %w", path, err)
	}
	return doc.Keybindings, nil
}

func mergeKeybindings(base, overlay map[string]map[string]string) {
	for scope, entries := range overlay {
		if base[scope] == nil {
			base[scope] = make(map[string]string, len(entries))
		}
		for seq, cmd := range entries {
			base[scope][seq] = cmd
		}
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("user_agent", def.UserAgent)
	v.SetDefault("tick_rate", def.TickRate)
	v.SetDefault("frame_rate", def.FrameRate)
	v.SetDefault("key_refresh_rate", def.KeyRefreshRate)
	v.SetDefault("page_size", def.PageSize)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("cache_enabled", def.CacheEnabled)
}

// Default is the built-in configuration, also what --print-default-config
// emits.
func Default() Config {
	return Config{
		BaseURL:        defaultBaseURL,
		UserAgent:      "crates-cli (github.com/glabrego/crates-cli)",
		TickRate:       1.0,
		FrameRate:      15.0,
		KeyRefreshRate: 2.0,
		PageSize:       25,
		LogLevel:       "off",
		CacheEnabled:   true,
		Keybindings:    DefaultKeybindings(),
	}
}

func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if strings.HasSuffix(c.BaseURL, "/") {
		return fmt.Errorf("base_url must not end with '/': %s", c.BaseURL)
	}
	if c.UserAgent == "" {
		return errors.New("user_agent is required")
	}
	if c.TickRate <= 0 || c.FrameRate <= 0 || c.KeyRefreshRate <= 0 {
		return errors.New("tick_rate, frame_rate and key_refresh_rate must be positive")
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		return fmt.Errorf("page_size must be in [1,100]: %d", c.PageSize)
	}
	return nil
}

// TickInterval converts the per-second tick rate into a duration.
func (c Config) TickInterval() time.Duration {
	return rateToInterval(c.TickRate)
}

func (c Config) KeyRefreshInterval() time.Duration {
	return rateToInterval(c.KeyRefreshRate)
}

func rateToInterval(perSecond float64) time.Duration {
	if perSecond <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / perSecond)
}

// LogPath is the log file location inside the data dir.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "crates-cli.log")
}

// CachePath is the sqlite response cache location.
func (c Config) CachePath() string {
	return filepath.Join(c.DataDir, "cache.db")
}

func defaultDataDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "crates-cli")
	}
	return "."
}

// PrintDefault writes the built-in configuration as YAML, ready to be
// saved as a config file.
func PrintDefault(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Default()); err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	return enc.Close()
}

// DefaultKeybindings is the stock chord table, overridable per scope from
// the config file.
func DefaultKeybindings() map[string]map[string]string {
	return map[string]map[string]string{
		"global": {
			"ctrl+c": "quit",
			"?":      "switch_mode:help",
		},
		"summary": {
			"q":         "quit",
			"j":         "scroll_down",
			"k":         "scroll_up",
			"down":      "scroll_down",
			"up":        "scroll_up",
			"g g":       "scroll_top",
			"G":         "scroll_bottom",
			"tab":       "next_summary_mode",
			"shift+tab": "previous_summary_mode",
			"r":         "reload_summary",
			"/":         "switch_mode:search",
			"enter":     "switch_mode:picker",
		},
		"picker": {
			"q":     "quit",
			"j":     "scroll_down",
			"k":     "scroll_up",
			"down":  "scroll_down",
			"up":    "scroll_up",
			"g g":   "scroll_top",
			"G":     "scroll_bottom",
			"n":     "increment_page",
			"p":     "decrement_page",
			"s":     "toggle_sort_by:reload:forward",
			"S":     "toggle_sort_by:reload:backward",
			"/":     "switch_mode:search",
			"f":     "switch_mode:filter",
			"enter": "toggle_show_detail",
			"r":     "reload_data",
			"y":     "copy_install_command",
			"o":     "open_docs_in_browser",
			"O":     "open_cratesio_in_browser",
			"esc":   "switch_mode:summary",
		},
		"search": {
			"enter": "submit_search",
			"esc":   "switch_mode:picker",
		},
		"filter": {
			"enter": "switch_mode:picker",
			"esc":   "switch_mode:picker",
		},
		"popup": {
			"esc":   "close_popup",
			"enter": "close_popup",
		},
		"help": {
			"esc": "switch_to_last_mode",
			"q":   "switch_to_last_mode",
			"j":   "scroll_down",
			"k":   "scroll_up",
		},
	}
}
