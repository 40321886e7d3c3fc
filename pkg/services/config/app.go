package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrProfileNotFound = errors.New("profile not found")

const envPrefix = "FINATLAS"

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// AppConfig is the process level configuration of the CLI and web server.
type AppConfig struct {
	Server         ServerConfig    `mapstructure:"server"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
	MaxUploadMB    int64           `mapstructure:"max_upload_mb"`
	LogLevel       string          `mapstructure:"log_level"`
	ProfilesPath   string          `mapstructure:"profiles_path"`
	DefaultProfile string          `mapstructure:"default_profile"`
	AWSRegion      string          `mapstructure:"aws_region"`
}

func (c AppConfig) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("rate_limit.rps", 5.0)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("max_upload_mb", 10)
	v.SetDefault("log_level", "info")
	v.SetDefault("profiles_path", "")
	v.SetDefault("default_profile", DefaultProfile)
	v.SetDefault("aws_region", "")
}

// LoadAppConfig reads the optional config file at path, then applies
// FINATLAS_* environment overrides (FINATLAS_SERVER_PORT, FINATLAS_LOG_LEVEL, ...).
func LoadAppConfig(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("max_upload_mb must be positive, got %d", cfg.MaxUploadMB)
	}
	return &cfg, nil
}
