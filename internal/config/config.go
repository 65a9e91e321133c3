// Package config provides centralized configuration management
// using Viper for configuration loading and validation.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	DRI      DRIConfig      `mapstructure:"dri"`
}

// AppConfig contains application-level configuration.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DatabaseConfig contains database configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LLMConfig contains external model credentials and model names.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`
	GroqAPIKey   string `mapstructure:"groq_api_key"`
	GroqModel    string `mapstructure:"groq_model"`
}

// PlannerConfig tunes the weekly plan generation loop.
type PlannerConfig struct {
	MaxRetries int `mapstructure:"max_retries"`
	PlanDays   int `mapstructure:"plan_days"`
}

// TelegramConfig contains the bot credentials. Optional: the bot front end
// is only started when a token is present.
type TelegramConfig struct {
	BotToken    string `mapstructure:"bot_token"`
	WebhookURL  string `mapstructure:"webhook_url"`
	AllowUserID int64  `mapstructure:"allow_user_id"`
}

// DRIConfig holds the key for the remote dietary-reference-intake
// calculator. Optional: without a key, targets use the manual formula.
type DRIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Load reads configuration from an optional YAML file and the environment.
// Environment variables use the MEALMIND_ prefix with underscores for
// nesting, e.g. MEALMIND_LLM_GEMINI_API_KEY.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/mealmind")
	}

	v.SetEnvPrefix("MEALMIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults plus env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "mealmind")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.path", "mealmind.db")

	v.SetDefault("llm.gemini_model", "gemini-2.0-flash")
	v.SetDefault("llm.groq_model", "llama-3.3-70b-versatile")

	v.SetDefault("planner.max_retries", 3)
	v.SetDefault("planner.plan_days", 7)
}

// Validate checks invariants that would otherwise surface as runtime errors.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Planner.MaxRetries < 0 {
		return fmt.Errorf("planner.max_retries must not be negative")
	}
	if c.Planner.PlanDays < 1 {
		return fmt.Errorf("planner.plan_days must be at least 1")
	}
	return nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
