package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

// LookupErrorPolicy selects the verdict when the active lexicon cannot be
// fetched: "allow" fails open, "reject" fails closed pending manual review.
type LookupErrorPolicy string

const (
	LookupErrorAllow  LookupErrorPolicy = "allow"
	LookupErrorReject LookupErrorPolicy = "reject"
)

type ModerationConfig struct {
	OnLookupError          LookupErrorPolicy `mapstructure:"on_lookup_error"`
	SpamKeywords           []string          `mapstructure:"spam_keywords"`
	DuplicateWindowMinutes int               `mapstructure:"duplicate_window_minutes"`
	MaxPostsPerMinute      int               `mapstructure:"max_posts_per_minute"`
}

type RateLimitConfig struct {
	SweepInterval string                            `mapstructure:"sweep_interval"`
	Routes        map[string]map[string]interface{} `mapstructure:"routes"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}

	setDefaultValues()

	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.Moderation.OnLookupError == "" {
		globalConfig.Moderation.OnLookupError = LookupErrorAllow
	}
	if globalConfig.Moderation.DuplicateWindowMinutes <= 0 {
		globalConfig.Moderation.DuplicateWindowMinutes = 5
	}
	if globalConfig.Moderation.MaxPostsPerMinute <= 0 {
		globalConfig.Moderation.MaxPostsPerMinute = 3
	}
	if globalConfig.RateLimit.SweepInterval == "" {
		globalConfig.RateLimit.SweepInterval = "5m"
	}
}

func GetConfig() *Config {
	return &globalConfig
}
