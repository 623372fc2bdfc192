package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Reports   ReportsConfig   `mapstructure:"reports"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// AssistantConfig selects the answering strategy: "ai" runs questions
// through the configured completion provider, "rules" uses the built-in
// keyword matcher and needs no credentials.
type AssistantConfig struct {
	Mode      string         `mapstructure:"mode"`
	Generator ProviderConfig `mapstructure:"generator"`
}

type ProviderConfig struct {
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	APIKeyEnv string `mapstructure:"api_key_env"`
	APIKey    string `mapstructure:"api_key"`
}

// ReportsConfig holds default report paths for the CLI commands.
type ReportsConfig struct {
	Orders    string `mapstructure:"orders"`
	Inventory string `mapstructure:"inventory"`
}

// LoadConfig loads configuration from config.yaml and environment
// variables. A missing config file is fine; defaults and env vars apply.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.sellerpulse/")
	v.AddConfigPath("/etc/sellerpulse/")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("assistant.mode", "rules")
	v.SetDefault("assistant.generator.provider", "perplexity")
	v.SetDefault("assistant.generator.model", "sonar")
	v.SetDefault("assistant.generator.api_key_env", "PERPLEXITY_API_KEY")
	v.SetDefault("reports.orders", "orders.tsv")
	v.SetDefault("reports.inventory", "inventory.tsv")

	// Enable environment variable override with SELLERPULSE_ prefix
	v.SetEnvPrefix("SELLERPULSE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
