package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"contactsearch/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version    int            `toml:"version"`
	Database   DatabaseConfig `toml:"database"`
	Log        LogConfig      `toml:"log"`
	Query      QueryConfig    `toml:"query"`
	UISettings UISettings     `toml:"ui"`
}

// DatabaseConfig locates the record store
type DatabaseConfig struct {
	Path   string `toml:"path" env:"CONTACTSEARCH_DB_PATH"`
	Memory bool   `toml:"memory" env:"CONTACTSEARCH_DB_MEMORY"` // use a throwaway in-memory store
}

// LogConfig controls the log file
type LogConfig struct {
	File  string `toml:"file" env:"CONTACTSEARCH_LOG_FILE"`
	Level string `toml:"level" env:"CONTACTSEARCH_LOG_LEVEL"`
}

// QueryConfig tunes the contact query
type QueryConfig struct {
	CacheSize int `toml:"cache_size" env:"CONTACTSEARCH_QUERY_CACHE_SIZE"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ToastSeconds int  `toml:"toast_seconds" env:"CONTACTSEARCH_TOAST_SECONDS"`
	TableHeight  int  `toml:"table_height" env:"CONTACTSEARCH_TABLE_HEIGHT"`
	ShowHelp     bool `toml:"show_help" env:"CONTACTSEARCH_SHOW_HELP"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "contactsearch", "config.toml")
}

// NewConfigService creates a config service for path; empty means DefaultPath
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, writing the defaults when it is missing.
// Environment variables override file values.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
		if err := cs.SaveToPath(cfg, cs.filePath); err != nil {
			return nil, err
		}
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with the CONTACTSEARCH_* environment variables that are set
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.normalize()
	return nil
}

// normalize replaces unusable values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Database.Path == "" {
		c.Database.Path = def.Database.Path
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Query.CacheSize < 0 {
		c.Query.CacheSize = 0
	}
	if c.UISettings.ToastSeconds <= 0 {
		c.UISettings.ToastSeconds = def.UISettings.ToastSeconds
	}
	if c.UISettings.TableHeight <= 0 {
		c.UISettings.TableHeight = def.UISettings.TableHeight
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dataDir, err := os.UserHomeDir()
	if err != nil {
		dataDir = "."
	}

	return &Config{
		Version: 1,
		Database: DatabaseConfig{
			Path: filepath.Join(dataDir, ".contactsearch", "contacts.db"),
		},
		Log: LogConfig{
			File:  "contactsearch.log",
			Level: "info",
		},
		Query: QueryConfig{
			CacheSize: 32,
		},
		UISettings: UISettings{
			ToastSeconds: 4,
			TableHeight:  12,
			ShowHelp:     true,
		},
	}
}
