// Package config loads usersearch settings from defaults, an optional TOML
// file and USERSEARCH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. USERSEARCH_LOOKUP_LATENCY.
	EnvPrefix = "USERSEARCH"
	// FileName is the config file name inside the config directory.
	FileName = "config.toml"
)

// Keys understood by the loader.
const (
	KeyLookupLatency    = "lookup.latency"
	KeyLogFile          = "log.file"
	KeyLogLevel         = "log.level"
	KeyTraceEndpoint    = "trace.endpoint"
	KeyTraceServiceName = "trace.service_name"
	KeyTraceInsecure    = "trace.insecure"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// ErrConfigExists is returned by WriteDefault when the target already exists.
var ErrConfigExists = errors.New("config file already exists")

// Config is the fully resolved configuration.
type Config struct {
	Lookup LookupConfig `mapstructure:"lookup"`
	Log    LogConfig    `mapstructure:"log"`
	Trace  TraceConfig  `mapstructure:"trace"`
}

// LookupConfig tunes the mock backend.
type LookupConfig struct {
	Latency time.Duration `mapstructure:"latency"`
}

// LogConfig controls the log file. An empty File disables logging.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// TraceConfig selects the OTLP endpoint. Empty Endpoint disables export
// unless OTEL_EXPORTER_OTLP_ENDPOINT is set.
type TraceConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Lookup: LookupConfig{Latency: 400 * time.Millisecond},
		Log:    LogConfig{Level: "info"},
		Trace:  TraceConfig{ServiceName: "usersearch", Insecure: true},
	}
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	d := Default()
	v := viper.New()
	v.SetDefault(KeyLookupLatency, d.Lookup.Latency)
	v.SetDefault(KeyLogFile, d.Log.File)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyTraceEndpoint, d.Trace.Endpoint)
	v.SetDefault(KeyTraceServiceName, d.Trace.ServiceName)
	v.SetDefault(KeyTraceInsecure, d.Trace.Insecure)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultPath returns $XDG_CONFIG_HOME/usersearch/config.toml (or the
// platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "usersearch", FileName), nil
}

// Load reads path into v (if path is non-empty and exists) and decodes the
// result. A missing file at the default location is not an error; an
// explicitly requested file that is missing is.
func Load(v *viper.Viper, path string, explicit bool) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Lookup.Latency < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %s", ErrInvalidConfig, KeyLookupLatency, c.Lookup.Latency)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, KeyLogLevel, s)
	}
}

// fileLayout mirrors Config for TOML output; durations are written as
// strings so the file stays hand-editable.
type fileLayout struct {
	Lookup struct {
		Latency string `toml:"latency"`
	} `toml:"lookup"`
	Log struct {
		File  string `toml:"file"`
		Level string `toml:"level"`
	} `toml:"log"`
	Trace struct {
		Endpoint    string `toml:"endpoint"`
		ServiceName string `toml:"service_name"`
		Insecure    bool   `toml:"insecure"`
	} `toml:"trace"`
}

// Marshal renders cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	var f fileLayout
	f.Lookup.Latency = cfg.Lookup.Latency.String()
	f.Log.File = cfg.Log.File
	f.Log.Level = cfg.Log.Level
	f.Trace.Endpoint = cfg.Trace.Endpoint
	f.Trace.ServiceName = cfg.Trace.ServiceName
	f.Trace.Insecure = cfg.Trace.Insecure

	data, err := toml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// WriteDefault writes the default configuration to path, creating parent
// directories. It refuses to overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}
	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
