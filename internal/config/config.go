package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Backend  BackendConfig  `mapstructure:"backend"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Wizard   WizardConfig   `mapstructure:"wizard"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Port    int    `mapstructure:"port"`
	Env     string `mapstructure:"env"`
	BaseURL string `mapstructure:"base_url"`
}

// BackendConfig points at the external auth/envelope backend. Secret
// keys the transport codec that wraps every payload.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Secret  string        `mapstructure:"secret"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WizardConfig carries the envelope wizard policy knobs.
type WizardConfig struct {
	CanvasWidth  float64 `mapstructure:"canvas_width"`
	CanvasHeight float64 `mapstructure:"canvas_height"`
	// Size ceilings in MB; the upload policy converts to bytes.
	MaxFileMB     int64 `mapstructure:"max_file_mb"`
	MaxEnvelopeMB int64 `mapstructure:"max_envelope_mb"`
	// SessionTTL bounds how long an abandoned session's staged data
	// survives in Redis. Zero means unbounded, the wizard's default.
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Backend.Timeout = cfg.Backend.Timeout * time.Second

	// Canvas defaults follow the wizard's letter-size preview.
	if cfg.Wizard.CanvasWidth == 0 {
		cfg.Wizard.CanvasWidth = 850
	}
	if cfg.Wizard.CanvasHeight == 0 {
		cfg.Wizard.CanvasHeight = 1100
	}
	if cfg.Wizard.MaxFileMB == 0 {
		cfg.Wizard.MaxFileMB = 25
	}
	if cfg.Wizard.MaxEnvelopeMB == 0 {
		cfg.Wizard.MaxEnvelopeMB = 100
	}

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
