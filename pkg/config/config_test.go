package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("Expected default port 5000, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default level INFO, got %s", cfg.Logging.Level)
	}
	if cfg.Sessions.TTL != 24*time.Hour {
		t.Errorf("Expected default session TTL 24h, got %v", cfg.Sessions.TTL)
	}
	if cfg.Metadata.Type != "memory" {
		t.Errorf("Expected default metadata store memory, got %s", cfg.Metadata.Type)
	}
	if cfg.Content.Type != "filesystem" {
		t.Errorf("Expected default content store filesystem, got %s", cfg.Content.Type)
	}
	if path := cfg.Content.Filesystem["path"]; path != "/tmp/files_manager" {
		t.Errorf("Expected default content path /tmp/files_manager, got %v", path)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: debug
server:
  port: 8080
sessions:
  ttl: 1h
metadata:
  type: badger
  badger:
    in_memory: true
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected level normalized to DEBUG, got %s", cfg.Logging.Level)
	}
	if cfg.Sessions.TTL != time.Hour {
		t.Errorf("Expected session TTL 1h, got %v", cfg.Sessions.TTL)
	}
	if cfg.Metadata.Type != "badger" {
		t.Errorf("Expected metadata store badger, got %s", cfg.Metadata.Type)
	}
}

func TestLoad_MissingConfigFileIsFine(t *testing.T) {
	if _, err := Load(""); err != nil {
		t.Fatalf("Load without config file should use defaults, got: %v", err)
	}
}

func TestLoad_LegacyPortEnv(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected PORT env to set port 9090, got %d", cfg.Server.Port)
	}
}

func TestLoad_LegacyFolderPathEnv(t *testing.T) {
	t.Setenv("FOLDER_PATH", "/var/data/files")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if path := cfg.Content.Filesystem["path"]; path != "/var/data/files" {
		t.Errorf("Expected FOLDER_PATH env to set content path, got %v", path)
	}
}

func TestLoad_PrefixedEnv(t *testing.T) {
	t.Setenv("FILESMANAGER_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected env-set level normalized to DEBUG, got %s", cfg.Logging.Level)
	}
}
