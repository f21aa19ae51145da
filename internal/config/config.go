// ABOUTME: Configuration for memopad backends, identity and server settings.
// ABOUTME: XDG JSON config file, then .env and MEMOPAD_* environment overrides.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds memopad settings.
type Config struct {
	// Backend selects the blob store: sqlite, badger, charm, postgres or memory.
	Backend string `json:"backend"`

	// DataPath is the sqlite file or badger directory. Empty means the XDG default.
	DataPath string `json:"data_path,omitempty"`

	PostgresURL string `json:"postgres_url,omitempty"`

	// CharmHost is the charm server for the charm backend and SSO login.
	CharmHost string `json:"charm_host,omitempty"`

	// AutoSync syncs the charm backend after each write.
	AutoSync bool `json:"auto_sync"`

	FirebaseAPIKey    string `json:"firebase_api_key,omitempty"`
	FirebaseProjectID string `json:"firebase_project_id,omitempty"`

	// ListenAddr is where `memopad serve` listens.
	ListenAddr string `json:"listen_addr"`

	// APISecret, when set, signs bearer tokens the HTTP API requires on memo
	// and tag routes.
	APISecret string `json:"api_secret,omitempty"`

	LogLevel string `json:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:    "sqlite",
		AutoSync:   true,
		ListenAddr: "127.0.0.1:3300",
		LogLevel:   "warn",
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "memopad")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load reads the config file (defaults when missing), loads a .env file from
// the working directory if present, and applies environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}

	// Missing .env is the normal case.
	_ = godotenv.Load()
	applyEnv(cfg)

	return cfg, nil
}

// LoadFile reads only the config file, with defaults when it is missing.
func LoadFile() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Update applies fn to the config file contents and writes the result.
// Environment overrides are never persisted.
func Update(fn func(*Config)) (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	fn(cfg)
	if err := Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Backend, "MEMOPAD_BACKEND")
	setString(&cfg.DataPath, "MEMOPAD_DATA_PATH")
	setString(&cfg.PostgresURL, "MEMOPAD_POSTGRES_URL")
	setString(&cfg.CharmHost, "MEMOPAD_CHARM_HOST")
	setString(&cfg.FirebaseAPIKey, "MEMOPAD_FIREBASE_API_KEY")
	setString(&cfg.FirebaseProjectID, "MEMOPAD_FIREBASE_PROJECT_ID")
	setString(&cfg.ListenAddr, "MEMOPAD_LISTEN_ADDR")
	setString(&cfg.APISecret, "MEMOPAD_API_SECRET")
	setString(&cfg.LogLevel, "MEMOPAD_LOG_LEVEL")
	if v := os.Getenv("MEMOPAD_AUTO_SYNC"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AutoSync = b
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Save writes configuration to disk.
func Save(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0600)
}

// Exists returns true if a config file exists.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
