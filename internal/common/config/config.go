// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	API      APIConfig      `mapstructure:"api"`
	Server   ServerConfig   `mapstructure:"server"`
	Session  SessionConfig  `mapstructure:"session"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig points the console at the RFP service.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// ServerConfig holds the web console listener settings.
type ServerConfig struct {
	Address    string `mapstructure:"address"`
	CookieName string `mapstructure:"cookie_name"`
	SessionTTL int    `mapstructure:"session_ttl"` // seconds
}

// SessionConfig selects where per-browser workspaces are kept.
type SessionConfig struct {
	Store     string `mapstructure:"store"` // memory | redis
	KeyPrefix string `mapstructure:"key_prefix"`
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

func (a APIConfig) TimeoutDuration() time.Duration {
	return GetDuration(a.Timeout)
}

func (s ServerConfig) SessionTTLDuration() time.Duration {
	return time.Duration(s.SessionTTL) * time.Second
}
