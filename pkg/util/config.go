package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	OnUnresolvedAbort = "abort"
	OnUnresolvedSkip  = "skip"
)

type Config struct {
	TracksDir       string  `mapstructure:"tracks_dir" validate:"required"`
	IndexPath       string  `mapstructure:"index_path" validate:"required"`
	ToleranceMeters float64 `mapstructure:"tolerance_meters" validate:"gte=0"`
	BuildWorkers    int     `mapstructure:"build_workers" validate:"gte=1"`
	OnUnresolved    string  `mapstructure:"on_unresolved" validate:"oneof=abort skip"`
	APIPort         int     `mapstructure:"api_port" validate:"gt=0,lte=65535"`
	APITimeout      string  `mapstructure:"api_timeout" validate:"required"`
	RateLimitRPS    float64 `mapstructure:"rate_limit_rps" validate:"gte=0"`
	LogLevel        string  `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

func SetConfigDefaults() {
	viper.SetDefault("tracks_dir", "./data/gpx_files")
	viper.SetDefault("index_path", "./data/output/matches.json")
	viper.SetDefault("tolerance_meters", 0.0)
	viper.SetDefault("build_workers", 4)
	viper.SetDefault("on_unresolved", OnUnresolvedAbort)
	viper.SetDefault("api_port", 6060)
	viper.SetDefault("api_timeout", "30s")
	viper.SetDefault("rate_limit_rps", 0.0)
	viper.SetDefault("log_level", "info")
}

// ReadConfig reads ./data/config.yaml if present. Environment variables prefixed
// with GPXMATCH_ override file values.
func ReadConfig() error {
	SetConfigDefaults()
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.SetEnvPrefix("GPXMATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("fatal error config file: %w", err)
		}
	}
	return nil
}

// LoadConfig unmarshals the current viper state into a validated Config.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return WrapErrorf(err, ErrBadParamInput, "invalid config: %v", err)
	}
	return nil
}
