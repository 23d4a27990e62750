// file: internal/config/config.go
// version: 1.2.0
// guid: 9e5c7a13-2d48-4b6f-a0e3-1c8f6d94b257

package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Cache store tuning.
	DefaultTTL    time.Duration `yaml:"default_ttl"`
	MaxEntries    int           `yaml:"max_entries"`
	SweepInterval time.Duration `yaml:"sweep_interval"`

	// TTL applied by the response-cache middleware.
	ResponseTTL time.Duration `yaml:"response_ttl"`

	// HTTP server.
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`

	// Rate limiting (0 disables). IdleTTL bounds how long an idle
	// client's bucket is remembered.
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute"`
	RateLimitBurst     int           `yaml:"rate_limit_burst"`
	RateLimitIdleTTL   time.Duration `yaml:"rate_limit_idle_ttl,omitempty"`

	// Admin surface protection. AdminPasswordHash, when set, takes
	// precedence over AdminPassword and is compared with bcrypt.
	AdminUsername     string `yaml:"admin_username"`
	AdminPassword     string `yaml:"admin_password,omitempty"`
	AdminPasswordHash string `yaml:"admin_password_hash,omitempty"`

	// Static bearer token accepted on the admin surface as an
	// alternative to basic auth (empty disables).
	APIToken string `yaml:"api_token,omitempty"`
}

var AppConfig Config

// InitConfig initializes the application configuration from viper
func InitConfig() {
	// Set defaults
	viper.SetDefault("default_ttl", 5*time.Minute)
	viper.SetDefault("max_entries", 1000)
	viper.SetDefault("sweep_interval", 60*time.Second)
	viper.SetDefault("response_ttl", 5*time.Minute)
	viper.SetDefault("host", "localhost")
	viper.SetDefault("port", "8080")
	viper.SetDefault("read_timeout", 15*time.Second)
	viper.SetDefault("write_timeout", 15*time.Second)
	viper.SetDefault("idle_timeout", 60*time.Second)

	AppConfig = Config{
		DefaultTTL:         viper.GetDuration("default_ttl"),
		MaxEntries:         viper.GetInt("max_entries"),
		SweepInterval:      viper.GetDuration("sweep_interval"),
		ResponseTTL:        viper.GetDuration("response_ttl"),
		Host:               viper.GetString("host"),
		Port:               viper.GetString("port"),
		ReadTimeout:        viper.GetDuration("read_timeout"),
		WriteTimeout:       viper.GetDuration("write_timeout"),
		IdleTimeout:        viper.GetDuration("idle_timeout"),
		RateLimitPerMinute: viper.GetInt("rate_limit_per_minute"),
		RateLimitBurst:     viper.GetInt("rate_limit_burst"),
		RateLimitIdleTTL:   viper.GetDuration("rate_limit_idle_ttl"),
		AdminUsername:      viper.GetString("admin_username"),
		AdminPassword:      viper.GetString("admin_password"),
		AdminPasswordHash:  viper.GetString("admin_password_hash"),
		APIToken:           viper.GetString("api_token"),
	}

	// Normalize obviously broken values rather than failing startup.
	if AppConfig.DefaultTTL <= 0 {
		AppConfig.DefaultTTL = 5 * time.Minute
	}
	if AppConfig.MaxEntries <= 0 {
		AppConfig.MaxEntries = 1000
	}
	if AppConfig.SweepInterval <= 0 {
		AppConfig.SweepInterval = 60 * time.Second
	}
	if AppConfig.ResponseTTL <= 0 {
		AppConfig.ResponseTTL = AppConfig.DefaultTTL
	}
}
