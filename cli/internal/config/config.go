// Package config loads prisma-fts settings from flags, files and the environment.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem used for config, .env probing and batch files.
var AppFs = afero.NewOsFs()

const (
	configName = ".prisma-fts"
	envPrefix  = "PRISMA_FTS"
)

// Config holds the application configuration
type Config struct {
	DatabaseURL        string
	Debug              bool
	CacheSize          int
	ValidateConditions bool
	DefaultTable       string
}

// LoadConfig loads configuration from, in rising priority, defaults, the
// config file, .env files and the environment. configFile overrides the
// search for .prisma-fts.yaml when set.
func LoadConfig(configFile string) (*Config, error) {
	v, err := newViper(configFile)
	if err != nil {
		return nil, err
	}

	// Load .env file if it exists
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	// Load .env.local if it exists (higher priority)
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:        v.GetString("database_url"),
		Debug:              v.GetBool("debug"),
		CacheSize:          v.GetInt("cache_size"),
		ValidateConditions: v.GetBool("validate_conditions"),
		DefaultTable:       v.GetString("default_table"),
	}
	if cfg.CacheSize < 0 {
		return nil, fmt.Errorf("cache_size must not be negative, got %d", cfg.CacheSize)
	}
	return cfg, nil
}

func newViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetFs(AppFs)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "prisma-fts"))
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	// The bare DATABASE_URL is honoured too.
	if err := v.BindEnv("database_url", envPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, err
	}

	v.SetDefault("debug", false)
	v.SetDefault("cache_size", 256)
	v.SetDefault("validate_conditions", true)
	v.SetDefault("default_table", "")
	return v, nil
}

// SaveConfig writes cfg to ~/.config/prisma-fts/.prisma-fts.yaml.
func SaveConfig(cfg *Config) (string, error) {
	v := viper.New()
	v.SetFs(AppFs)
	v.Set("debug", cfg.Debug)
	v.Set("cache_size", cfg.CacheSize)
	v.Set("validate_conditions", cfg.ValidateConditions)
	v.Set("default_table", cfg.DefaultTable)

	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(home, ".config", "prisma-fts")
	if err := AppFs.MkdirAll(configPath, 0755); err != nil {
		return "", err
	}

	configFile := filepath.Join(configPath, configName+".yaml")
	return configFile, v.WriteConfigAs(configFile)
}
