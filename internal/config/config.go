package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// DatabaseURL is the PostgreSQL connection string
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// AdminUsername receives swap-request notifications (defaults to "admin")
	AdminUsername string `yaml:"adminUsername,omitempty"`

	// ScheduleParsePolicy controls malformed teaching-schedule range
	// handling during generation: "skip" ignores the single entry,
	// "block" treats the faculty member as unavailable
	ScheduleParsePolicy string `yaml:"scheduleParsePolicy,omitempty" validate:"omitempty,oneof=skip block"`

	// GmailUserID and GmailSender configure outbound email notifications
	GmailUserID string `yaml:"gmailUserID,omitempty"`
	GmailSender string `yaml:"gmailSender,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration with an environment
// suffix. For example, env="test" looks for "invigilate_config.test.yaml".
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}
	if cfg.ScheduleParsePolicy == "" {
		cfg.ScheduleParsePolicy = "skip"
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// findConfigFile searches for the config file in the current directory
// and the user's home directory. If env is provided it is added as an
// extension (e.g. "invigilate_config.test.yaml").
func findConfigFile(env string) (string, error) {
	configFileName := "invigilate_config.yaml"
	if env != "" {
		configFileName = "invigilate_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
