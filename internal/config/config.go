package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Calendar provider types
const (
	CalendarBuiltin = "builtin"
	CalendarRemote  = "remote"
	CalendarFile    = "file"
)

// Storage backends
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// CalendarConfig represents holiday provider configuration
type CalendarConfig struct {
	Type         string `mapstructure:"type"`          // "builtin", "remote" or "file"
	APIURL       string `mapstructure:"api_url"`       // For remote type, {year} and {country} are replaced
	FallbackFile string `mapstructure:"fallback_file"` // Holiday file; the source for "file", a fallback otherwise
	CacheTTL     string `mapstructure:"cache_ttl"`
}

// PlannerConfig represents planning defaults
type PlannerConfig struct {
	Country     string `mapstructure:"country"`
	Region      string `mapstructure:"region"`
	WeekendDays []int  `mapstructure:"weekend_days"`
	Budget      int    `mapstructure:"budget"` // -1 = country allowance
}

// StorageConfig represents preference storage configuration
type StorageConfig struct {
	Type string `mapstructure:"type"` // "file" or "sqlite"
	Path string `mapstructure:"path"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Addr            string   `mapstructure:"addr"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	ShutdownTimeout string   `mapstructure:"shutdown_timeout"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("calendar.type", CalendarBuiltin)
	v.SetDefault("calendar.api_url", "")
	v.SetDefault("calendar.fallback_file", "")
	v.SetDefault("calendar.cache_ttl", "24h")
	v.SetDefault("planner.country", "")
	v.SetDefault("planner.region", "")
	v.SetDefault("planner.weekend_days", []int{6, 0})
	v.SetDefault("planner.budget", -1)
	v.SetDefault("storage.type", StorageFile)
	v.SetDefault("storage.path", defaultStoragePath())
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "preferences.json"
	}
	return home + "/.stretch-my-time-off/preferences.json"
}

// Load loads configuration from file. With an empty configPath a missing
// config file is not an error and defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.stretch-my-time-off")
		v.AddConfigPath("/etc/stretch-my-time-off")
	}

	// Read environment variables, e.g. STRETCH_PLANNER_COUNTRY
	v.SetEnvPrefix("stretch")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate Calendar config
	switch c.Calendar.Type {
	case CalendarBuiltin, CalendarRemote:
	case CalendarFile:
		if c.Calendar.FallbackFile == "" {
			return fmt.Errorf("calendar.fallback_file is required for file type")
		}
	default:
		return fmt.Errorf("calendar.type must be 'builtin', 'remote' or 'file', got '%s'", c.Calendar.Type)
	}

	// Validate Planner config
	for _, day := range c.Planner.WeekendDays {
		if day < 0 || day > 6 {
			return fmt.Errorf("planner.weekend_days must be between 0 and 6, got %d", day)
		}
	}
	if c.Planner.Budget < -1 {
		return fmt.Errorf("planner.budget must be -1 or more, got %d", c.Planner.Budget)
	}

	// Validate Storage config
	switch c.Storage.Type {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("storage.type must be 'file' or 'sqlite', got '%s'", c.Storage.Type)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}

	return nil
}

// GetCacheTTL returns cache TTL duration
func (c *CalendarConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// GetShutdownTimeout returns the graceful shutdown timeout
func (c *ServerConfig) GetShutdownTimeout() time.Duration {
	if c.ShutdownTimeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return duration
}

// GetAddr returns the listen address
func (c *ServerConfig) GetAddr() string {
	if c.Addr == "" {
		return ":8080"
	}
	return c.Addr
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Calendar.APIURL = os.ExpandEnv(c.Calendar.APIURL)
	c.Calendar.FallbackFile = os.ExpandEnv(c.Calendar.FallbackFile)
	c.Storage.Path = os.ExpandEnv(c.Storage.Path)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
