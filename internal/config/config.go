package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// ExchangeConfig configures the external exchange-rate API client
// and the daily refresh schedule.
type ExchangeConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	Timeout       string `mapstructure:"timeout"`
	RateLimit     int    `mapstructure:"rate_limit"`
	RefreshHours  int    `mapstructure:"refresh_hours"`
	RefreshOnBoot bool   `mapstructure:"refresh_on_boot"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AppSubConfig struct {
	PageSize int `mapstructure:"page_size"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	Exchange ExchangeConfig `mapstructure:"exchange"`
	Log      LogConfig      `mapstructure:"log"`
	App      AppSubConfig   `mapstructure:"app"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		// defaults for optional sections
		v.SetDefault("server.address", "0.0.0.0")
		v.SetDefault("server.port", 8080)
		v.SetDefault("database.path", "data/finance.db")
		v.SetDefault("jwt.expire_hours", 24)
		v.SetDefault("exchange.base_url", "https://api.exchangerate-api.com/v4/latest")
		v.SetDefault("exchange.timeout", "10s")
		v.SetDefault("exchange.rate_limit", 5)
		v.SetDefault("exchange.refresh_hours", 24)
		v.SetDefault("exchange.refresh_on_boot", true)
		v.SetDefault("log.level", "info")
		v.SetDefault("app.page_size", 10)

		// environment overrides, e.g. PFM_SERVER_PORT=9000
		v.SetEnvPrefix("PFM") // personal finance manager
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
