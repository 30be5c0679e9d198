package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables that override values from the config file.
const (
	EnvAPIKey   = "GOOGLE_API_KEY"
	EnvModel    = "MODEL_NAME"
	EnvSaveDir  = "GEMINAL_SAVE_DIR"
	EnvLogLevel = "GEMINAL_LOG_LEVEL"
)

const appDirName = ".geminal"

// Config represents the application configuration
type Config struct {
	APIKey            string  `json:"api_key"`
	Model             string  `json:"model"`
	Temperature       float64 `json:"temperature"`
	MaxTokens         int     `json:"max_tokens"`
	APITimeoutSeconds int     `json:"api_timeout_seconds"`
	SaveDir           string  `json:"save_dir"`
	LogLevel          string  `json:"log_level"`
	LogFormat         string  `json:"log_format"`
	LogFile           string  `json:"log_file"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		APIKey:            "",
		Model:             "gemini-2.5-flash",
		Temperature:       0.7,
		MaxTokens:         0,
		APITimeoutSeconds: 60,
		SaveDir:           DefaultSaveDir(),
		LogLevel:          "info",
		LogFormat:         "json",
		LogFile:           "",
	}
}

// Load loads configuration from the specified path and applies environment
// overrides. If the file doesn't exist, creates one with default values.
func Load(configPath string) (Config, error) {
	cfg, err := loadFile(configPath)
	if err != nil {
		return Config{}, err
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

func loadFile(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	// Start from defaults so fields missing in older files keep sane values.
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides config values with non-empty environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvAPIKey)); v != "" {
		c.APIKey = v
	}
	if v := strings.TrimSpace(getenv(EnvModel)); v != "" {
		c.Model = v
	}
	if v := strings.TrimSpace(getenv(EnvSaveDir)); v != "" {
		c.SaveDir = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("Google API key is required (set %s or api_key in the config file)", EnvAPIKey)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got: %f", c.Temperature)
	}

	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative, got: %d", c.MaxTokens)
	}

	if c.APITimeoutSeconds <= 0 {
		return fmt.Errorf("api_timeout_seconds must be positive, got: %d", c.APITimeoutSeconds)
	}

	if strings.TrimSpace(c.SaveDir) == "" {
		return fmt.Errorf("save_dir is required")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	return filepath.Join(appDir(), "config.json")
}

// DefaultSaveDir returns the directory saved conversations live in.
func DefaultSaveDir() string {
	return filepath.Join(appDir(), "conversations")
}

// DefaultLogPath returns the default log file location.
func DefaultLogPath() string {
	return filepath.Join(appDir(), "logs", "geminal.log")
}

func appDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(homeDir) == "" {
		return appDirName
	}
	return filepath.Join(homeDir, appDirName)
}
