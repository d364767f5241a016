package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"go-doctor-directory/pkg/validator"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	Log   LogConfig
	Data  DataConfig
	Cache CacheConfig
	Redis RedisConfig
}

type AppConfig struct {
	Port string `mapstructure:"APP_PORT" validate:"required,numeric"`
	Env  string `mapstructure:"APP_ENV"`
}

type LogConfig struct {
	Level string `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn warning error"`
}

type DataConfig struct {
	// SourcePath overrides the bundled doctor asset when set.
	SourcePath      string `mapstructure:"DATA_SOURCE_PATH"`
	SuggestionLimit int    `mapstructure:"SUGGESTION_LIMIT" validate:"min=1,max=5"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"CACHE_ENABLED"`
	TTL     time.Duration `mapstructure:"CACHE_TTL"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST" validate:"required"`
	Port     string `mapstructure:"REDIS_PORT" validate:"required,numeric"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" validate:"min=0"`
}

var defaults = map[string]any{
	"APP_PORT":         "8080",
	"APP_ENV":          "development",
	"LOG_LEVEL":        "info",
	"DATA_SOURCE_PATH": "",
	"SUGGESTION_LIMIT": 5,
	"CACHE_ENABLED":    false,
	"CACHE_TTL":        "10m",
	"REDIS_HOST":       "localhost",
	"REDIS_PORT":       "6379",
	"REDIS_PASSWORD":   "",
	"REDIS_DB":         0,
}

// LoadConfig reads .env from the working directory when present, then the environment.
func LoadConfig() (*Config, error) {
	return LoadConfigFile(".env")
}

func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	cacheTTL, err := time.ParseDuration(v.GetString("CACHE_TTL"))
	if err != nil {
		cacheTTL = 10 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port: v.GetString("APP_PORT"),
			Env:  v.GetString("APP_ENV"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Data: DataConfig{
			SourcePath:      v.GetString("DATA_SOURCE_PATH"),
			SuggestionLimit: v.GetInt("SUGGESTION_LIMIT"),
		},
		Cache: CacheConfig{
			Enabled: v.GetBool("CACHE_ENABLED"),
			TTL:     cacheTTL,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
	}

	cv := validator.NewValidator()
	if err := cv.Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", cv.FormatValidationErrors(err))
	}

	return config, nil
}
