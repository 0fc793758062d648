// Package config layers defaults, a config file, VISTA_* environment
// variables and command-line flags into the CLI configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the CLI configuration.
type Config struct {
	Tour    string
	Log     LogConfig
	Assets  AssetsConfig
	Session SessionConfig
	Redis   RedisConfig
	HTTP    HTTPConfig
	MCP     MCPConfig
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// AssetsConfig holds asset resolution settings.
type AssetsConfig struct {
	Base string
}

// SessionConfig selects the session store.
type SessionConfig struct {
	Store string // "memory", "file" or "redis"
	Dir   string
	TTL   time.Duration
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Addr string
}

// MCPConfig holds the MCP server settings.
type MCPConfig struct {
	Transport string
	Addr      string
	BaseURL   string `mapstructure:"base_url"`
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"tour":           "tour",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"asset-base":     "assets.base",
	"store":          "session.store",
	"session-dir":    "session.dir",
	"session-ttl":    "session.ttl",
	"redis-addr":     "redis.addr",
	"redis-password": "redis.password",
	"redis-db":       "redis.db",
	"addr":           "http.addr",
	"transport":      "mcp.transport",
	"mcp-addr":       "mcp.addr",
	"mcp-base-url":   "mcp.base_url",
}

// Load reads configuration from, in increasing precedence: defaults, the
// config file, VISTA_* environment variables and explicitly set flags.
// An empty path looks for an optional vista.{yaml,toml,json} in the working directory.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("tour", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("assets.base", "")
	v.SetDefault("session.store", "file")
	v.SetDefault("session.dir", ".vista/sessions")
	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("mcp.transport", "stdio")
	v.SetDefault("mcp.addr", ":8081")
	v.SetDefault("mcp.base_url", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("vista")
	}

	v.SetEnvPrefix("VISTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
