/*
Package config manages TOML config for the careerserve API.
*/
package config

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/shawnasapp/careerserve/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Search   SearchConfig   `toml:"search"`
	Data     DataConfig     `toml:"data"`
	Cache    CacheConfig    `toml:"cache"`
	Upstream UpstreamConfig `toml:"upstream"`
}

// ServerConfig has HTTP server related options.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	CORSOrigins string `toml:"cors_origins"`
	StaticDir   string `toml:"static_dir"`
	RequestLog  bool   `toml:"request_log"`
}

// SearchConfig holds query handling options.
type SearchConfig struct {
	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
	MinQuery     int `toml:"min_query"`
}

// DataConfig points at the prepopulated data files.
type DataConfig struct {
	CareersPath  string `toml:"careers"`
	CollegesPath string `toml:"colleges"`
	ClustersPath string `toml:"clusters"`
}

// CacheConfig holds TTL cache options.
type CacheConfig struct {
	TTLMinutes int `toml:"ttl_minutes"`
}

// UpstreamConfig holds CareerOneStop API credentials. The upstream proxy is
// disabled in local-only mode; credentials are only reported on /health.
type UpstreamConfig struct {
	Enabled bool   `toml:"enabled"`
	UserID  string `toml:"user_id"`
	Token   string `toml:"token"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:       ":5177",
			RequestLog: true,
		},
		Search: SearchConfig{
			DefaultLimit: 12,
			MaxLimit:     100,
			MinQuery:     1,
		},
		Data: DataConfig{
			CareersPath:  "data/prepopulated-careers.json",
			CollegesPath: "data/prepopulated-colleges.json",
			ClustersPath: "data/clusters.yaml",
		},
		Cache: CacheConfig{
			TTLMinutes: 60,
		},
		Upstream: UpstreamConfig{
			Enabled: false,
		},
	}
}

// Load reads config from a TOML file over the built-in defaults. A missing
// or malformed file degrades to defaults with a warning, never an error.
// Upstream credentials fall back to the environment the way the original
// deployment provided them.
func Load(configPath string) *Config {
	cfg := DefaultConfig()

	if configPath != "" {
		if !utils.FileExists(configPath) {
			log.Warnf("Config file not found at %s. Using built-in defaults...", configPath)
		} else if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
			log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
			cfg = DefaultConfig()
		} else {
			log.Debugf("Loaded config from %s", utils.GetAbsolutePath(configPath))
		}
	}

	if cfg.Upstream.UserID == "" {
		cfg.Upstream.UserID = os.Getenv("CAREERONESTOP_USER_ID")
	}
	if cfg.Upstream.Token == "" {
		cfg.Upstream.Token = os.Getenv("CAREERONESTOP_TOKEN")
	}
	return cfg
}

// Save writes the config into a TOML file.
func Save(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}

// MaskToken renders a credential for logs without exposing it.
func MaskToken(token string) string {
	if token == "" {
		return "MISSING"
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
