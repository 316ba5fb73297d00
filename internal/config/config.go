package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName   = "playsync"
	envPrefix = "PLAYSYNC_"

	defaultBaseURL = "http://localhost:8000"
	defaultListen  = ":8000"
)

type Config struct {
	BaseURL           string        `koanf:"base_url"` // server root, e.g. "http://localhost:8000"
	UserID            string        `koanf:"user_id"`
	QueueID           string        `koanf:"queue_id"`
	RandomOrder       bool          `koanf:"random_order"` // load the queue from /tracks/random
	TickInterval      time.Duration `koanf:"tick_interval"`
	HeartbeatInterval time.Duration `koanf:"heartbeat_interval"`
	LogLevel          string        `koanf:"log_level"`     // "debug", "info", "warn" or "error"
	LogFile           string        `koanf:"log_file"`      // terminal client only, default under the xdg state dir
	Notifications     bool          `koanf:"notifications"` // desktop notifications on track change and sync loss

	// Reference server settings
	Server ServerConfig `koanf:"server"`
}

// ServerConfig holds the reference server configuration.
type ServerConfig struct {
	Listen      string   `koanf:"listen"`       // e.g. ":8000"
	DBPath      string   `koanf:"db_path"`      // sqlite file, default under the xdg data dir
	CORSOrigins []string `koanf:"cors_origins"` // allowed browser origins
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files in order (last wins), then applies
// PLAYSYNC_* environment overrides. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	// PLAYSYNC_BASE_URL -> base_url, PLAYSYNC_SERVER__LISTEN -> server.listen
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Normalize base URL (remove trailing slash)
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
	}
	if cfg.Server.DBPath != "" && cfg.Server.DBPath != ":memory:" {
		cfg.Server.DBPath = expandPath(cfg.Server.DBPath)
	}

	return cfg, nil
}

func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if key == "server.cors_origins" {
		return key, strings.Split(value, ",")
	}
	return key, value
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/playsync/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetBaseURL returns the server root with the default applied.
func (c *Config) GetBaseURL() string {
	if c.BaseURL == "" {
		return defaultBaseURL
	}
	return c.BaseURL
}

// HasSession returns true if both the user and the queue are configured.
func (c *Config) HasSession() bool {
	return strings.TrimSpace(c.UserID) != "" && strings.TrimSpace(c.QueueID) != ""
}

// GetLogLevel parses log_level, defaulting to info.
func (c *Config) GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// GetLogFile returns the terminal client's log file path.
func (c *Config) GetLogFile() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}

// GetServerConfig returns the server configuration with defaults applied.
func (c *Config) GetServerConfig() (ServerConfig, error) {
	cfg := c.Server
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	if cfg.DBPath == "" {
		path, err := xdg.DataFile(filepath.Join(appName, appName+".db"))
		if err != nil {
			return cfg, err
		}
		cfg.DBPath = path
	}
	var origins []string
	for _, o := range cfg.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, strings.TrimSuffix(o, "/"))
		}
	}
	cfg.CORSOrigins = origins
	return cfg, nil
}
