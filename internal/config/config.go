// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import "github.com/spf13/viper"

type Config struct {
	LogLevel string
	Prompt   string
}

// LoadConfig reads settings via viper. Every setting has a default, so
// a bare environment is a valid configuration.
func LoadConfig() *Config {
	viper.AutomaticEnv()
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HELIOS_PROMPT", "")

	return &Config{
		LogLevel: viper.GetString("LOG_LEVEL"),
		Prompt:   viper.GetString("HELIOS_PROMPT"),
	}
}
