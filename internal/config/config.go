// Package config loads cattimer settings from defaults, a YAML file,
// CATTIMER_* environment variables and command-line flags, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/cattimer/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. CATTIMER_WORK_MINUTES.
const EnvPrefix = "CATTIMER"

// EnvConfigPath names the variable that points at an alternate config file.
const EnvConfigPath = "CATTIMER_CONFIG"

var ErrConfigExists = errors.New("config file already exists")

// AlertConfig selects the completion cues.
type AlertConfig struct {
	Bell    bool   `yaml:"bell" mapstructure:"bell"`
	Command string `yaml:"command" mapstructure:"command"`
}

// Config holds all runtime settings.
type Config struct {
	WorkMinutes  int         `yaml:"work_minutes" mapstructure:"work_minutes"`
	BreakMinutes int         `yaml:"break_minutes" mapstructure:"break_minutes"`
	Strategy     string      `yaml:"strategy" mapstructure:"strategy"`
	TickMs       int         `yaml:"tick_ms" mapstructure:"tick_ms"`
	DBPath       string      `yaml:"db_path" mapstructure:"db_path"`
	LogEvents    bool        `yaml:"log_events" mapstructure:"log_events"`
	LogPath      string      `yaml:"log_path" mapstructure:"log_path"`
	Alert        AlertConfig `yaml:"alert" mapstructure:"alert"`
}

// DefaultConfig returns the built-in settings: a 25 minute work phase, a
// 5 minute break and the drift-corrected deadline strategy.
func DefaultConfig() Config {
	dir := Dir()
	return Config{
		WorkMinutes:  25,
		BreakMinutes: 5,
		Strategy:     string(domain.StrategyDeadline),
		TickMs:       1000,
		DBPath:       filepath.Join(dir, "cattimer.db"),
		LogEvents:    false,
		LogPath:      filepath.Join(dir, "cattimer.log"),
		Alert:        AlertConfig{Bell: true},
	}
}

// Dir is the per-user data directory, ~/.cattimer.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cattimer"
	}
	return filepath.Join(home, ".cattimer")
}

// Path is the config file location: $CATTIMER_CONFIG when set, otherwise
// ~/.cattimer/config.yaml.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return expandHome(p)
	}
	return filepath.Join(Dir(), "config.yaml")
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"work":     "work_minutes",
	"break":    "break_minutes",
	"strategy": "strategy",
}

// Load resolves the effective configuration. An empty path means Path().
// A missing file is not an error. Only flags the user actually set
// override lower layers; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	if path == "" {
		path = Path()
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.LogPath = expandHome(cfg.LogPath)
	cfg.Strategy = strings.ToLower(strings.TrimSpace(cfg.Strategy))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the timer cannot run with.
func (c Config) Validate() error {
	if c.WorkMinutes < 0 {
		return fmt.Errorf("work_minutes must be >= 0, got %d", c.WorkMinutes)
	}
	if c.BreakMinutes < 0 {
		return fmt.Errorf("break_minutes must be >= 0, got %d", c.BreakMinutes)
	}
	if !domain.ValidStrategies[c.Strategy] {
		return fmt.Errorf("invalid strategy %q (valid: deadline, decrement)", c.Strategy)
	}
	if c.TickMs <= 0 {
		return fmt.Errorf("tick_ms must be > 0, got %d", c.TickMs)
	}
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	return nil
}

// WriteDefault writes DefaultConfig as YAML to path. An existing file is
// kept unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrConfigExists)
		}
	}

	body, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	content := "# cattimer configuration\n# Environment variables CATTIMER_<KEY> override these values.\n" + string(body)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// YAML renders c the way WriteDefault lays out a file.
func (c Config) YAML() (string, error) {
	body, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return string(body), nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("work_minutes", d.WorkMinutes)
	v.SetDefault("break_minutes", d.BreakMinutes)
	v.SetDefault("strategy", d.Strategy)
	v.SetDefault("tick_ms", d.TickMs)
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("log_events", d.LogEvents)
	v.SetDefault("log_path", d.LogPath)
	v.SetDefault("alert.bell", d.Alert.Bell)
	v.SetDefault("alert.command", d.Alert.Command)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
