package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete files-manager configuration.
//
// This structure captures all configurable aspects of the service including:
//   - Logging configuration
//   - HTTP server settings
//   - Session store selection and configuration (store-specific)
//   - Metadata store selection and configuration (store-specific)
//   - Content store selection and configuration (store-specific)
//   - Background job queue sizing
//
// Configuration sources (in order of precedence):
//  1. Environment variables (FILESMANAGER_*)
//  2. Configuration file (YAML or TOML)
//  3. Default values (lowest priority)
//
// Store Configuration Pattern:
// Each store implementation defines its own configuration type and factory
// function. The Config struct contains type-specific sections (e.g.
// metadata.badger, content.s3) and only the section matching the selected
// type is used.
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging"`

	// Server contains HTTP server settings
	Server ServerConfig `mapstructure:"server"`

	// Sessions specifies the session store type and type-specific configuration
	Sessions SessionsConfig `mapstructure:"sessions"`

	// Metadata specifies the metadata store type and type-specific configuration
	Metadata MetadataConfig `mapstructure:"metadata"`

	// Content specifies the content store type and type-specific configuration
	Content ContentConfig `mapstructure:"content"`

	// Queue contains background job queue settings
	Queue QueueConfig `mapstructure:"queue"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (empty means all interfaces)
	Host string `mapstructure:"host"`

	// Port is the TCP port the HTTP server listens on
	Port int `mapstructure:"port" validate:"required,gt=0,lte=65535"`

	// ReadTimeout bounds the time spent reading a request
	ReadTimeout time.Duration `mapstructure:"read_timeout" validate:"required,gt=0"`

	// WriteTimeout bounds the time spent writing a response
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"required,gt=0"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0"`
}

// SessionsConfig specifies session store configuration.
//
// The Type field determines which store implementation is used.
// Only the corresponding type-specific configuration section is used.
type SessionsConfig struct {
	// Type specifies which session store implementation to use
	// Valid values: memory, badger
	Type string `mapstructure:"type" validate:"required,oneof=memory badger"`

	// TTL is the lifetime of a session token
	TTL time.Duration `mapstructure:"ttl" validate:"required,gt=0"`

	// Memory contains memory-specific configuration
	// Only used when Type = "memory"
	Memory map[string]any `mapstructure:"memory"`

	// Badger contains BadgerDB-specific configuration
	// Only used when Type = "badger"
	Badger map[string]any `mapstructure:"badger"`
}

// MetadataConfig specifies metadata store configuration.
//
// The Type field determines which store implementation is used.
// Only the corresponding type-specific configuration section is used.
type MetadataConfig struct {
	// Type specifies which metadata store implementation to use
	// Valid values: memory, badger
	Type string `mapstructure:"type" validate:"required,oneof=memory badger"`

	// Memory contains memory-specific configuration
	// Only used when Type = "memory"
	Memory map[string]any `mapstructure:"memory"`

	// Badger contains BadgerDB-specific configuration
	// Only used when Type = "badger"
	Badger map[string]any `mapstructure:"badger"`
}

// ContentConfig specifies content store configuration.
//
// The Type field determines which store implementation is used.
// Only the corresponding type-specific configuration section is used.
type ContentConfig struct {
	// Type specifies which content store implementation to use
	// Valid values: filesystem, memory, s3
	Type string `mapstructure:"type" validate:"required,oneof=filesystem memory s3"`

	// Filesystem contains filesystem-specific configuration
	// Only used when Type = "filesystem"
	Filesystem map[string]any `mapstructure:"filesystem"`

	// Memory contains memory-specific configuration
	// Only used when Type = "memory"
	Memory map[string]any `mapstructure:"memory"`

	// S3 contains S3-specific configuration
	// Only used when Type = "s3"
	S3 map[string]any `mapstructure:"s3"`
}

// QueueConfig contains background job queue settings.
type QueueConfig struct {
	// FileBuffer is the capacity of the thumbnail job queue
	FileBuffer int `mapstructure:"file_buffer" validate:"required,gt=0"`

	// UserBuffer is the capacity of the welcome job queue
	UserBuffer int `mapstructure:"user_buffer" validate:"required,gt=0"`
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (FILESMANAGER_*)
//  2. Configuration file
//  3. Default values
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: Configuration loading or validation error
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Configure viper
	setupViper(v, configPath)

	// Read configuration file if it exists
	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Legacy environment variables take effect only where the prefixed
	// form and config file left the field unset
	applyLegacyEnv(&cfg)

	// Apply defaults for any missing values
	ApplyDefaults(&cfg)

	// Validate configuration
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Set up environment variable support
	// Environment variables use FILESMANAGER_ prefix and underscores
	// Example: FILESMANAGER_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("FILESMANAGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register the known keys so environment-only values survive Unmarshal;
	// viper resolves env variables only for keys it has seen
	for _, key := range []string{
		"logging.level", "logging.output",
		"server.host", "server.port",
		"server.read_timeout", "server.write_timeout", "server.shutdown_timeout",
		"sessions.type", "sessions.ttl",
		"metadata.type",
		"content.type",
		"queue.file_buffer", "queue.user_buffer",
	} {
		v.SetDefault(key, nil)
	}

	// Configure config file search
	if configPath != "" {
		// Use explicitly specified config file
		v.SetConfigFile(configPath)
	} else {
		// Use default location: $XDG_CONFIG_HOME/files-manager/config.{yaml,toml}
		configDir := getConfigDir()
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml") // Primary format
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		// Check if error is "config file not found"
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found is acceptable - use defaults
			return nil
		}
		// Other errors are problems
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// applyLegacyEnv honors the unprefixed environment variables the service
// has historically accepted: PORT for the listen port and FOLDER_PATH for
// the filesystem content store root.
func applyLegacyEnv(cfg *Config) {
	if cfg.Server.Port == 0 {
		if raw := os.Getenv("PORT"); raw != "" {
			var port int
			if _, err := fmt.Sscanf(raw, "%d", &port); err == nil {
				cfg.Server.Port = port
			}
		}
	}

	if folder := os.Getenv("FOLDER_PATH"); folder != "" {
		if cfg.Content.Filesystem == nil {
			cfg.Content.Filesystem = make(map[string]any)
		}
		if _, ok := cfg.Content.Filesystem["path"]; !ok {
			cfg.Content.Filesystem["path"] = folder
		}
	}
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to current
// directory (.) if home directory cannot be determined.
func getConfigDir() string {
	// Check XDG_CONFIG_HOME
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "files-manager")
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		// If we can't get home dir, use current directory as last resort
		return "."
	}

	return filepath.Join(home, ".config", "files-manager")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}
