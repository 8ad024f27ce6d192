package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("Default config should validate, got: %v", err)
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "VERBOSE"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for bad log level")
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for out-of-range port")
	}
}

func TestValidate_BadStoreType(t *testing.T) {
	cfg := validConfig()
	cfg.Metadata.Type = "mongo"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for unknown metadata store type")
	}
}

func TestValidate_BadgerNeedsPath(t *testing.T) {
	cfg := validConfig()
	cfg.Metadata.Type = "badger"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for badger without path")
	}
	if !strings.Contains(err.Error(), "path is required") {
		t.Errorf("Unexpected error: %v", err)
	}

	// in_memory lifts the requirement
	cfg.Metadata.Badger["in_memory"] = true
	if err := Validate(cfg); err != nil {
		t.Errorf("in_memory badger should validate without a path, got: %v", err)
	}

	// and so does a path
	cfg.Metadata.Badger["in_memory"] = false
	cfg.Metadata.Badger["path"] = "/var/lib/filesmanager"
	if err := Validate(cfg); err != nil {
		t.Errorf("badger with path should validate, got: %v", err)
	}
}

func TestValidate_NegativeTTL(t *testing.T) {
	cfg := validConfig()
	cfg.Sessions.TTL = -1

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for negative session TTL")
	}
}
