package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Refresh  RefreshConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
	TokenTTL      time.Duration
}

type StorageConfig struct {
	Root    string
	BaseURL string
}

type RefreshConfig struct {
	PollInterval time.Duration
	Channel      string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "storeadmin")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "storeadmin")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("AUTH_JWT_SECRET", "")
	viper.SetDefault("AUTH_ADMIN_EMAIL", "")
	viper.SetDefault("AUTH_ADMIN_PASSWORD", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")
	viper.SetDefault("STORAGE_ROOT", "data/storage")
	viper.SetDefault("STORAGE_BASE_URL", "/storage/")
	viper.SetDefault("REFRESH_POLL_INTERVAL", "10s")
	viper.SetDefault("REFRESH_CHANNEL", "orders_changed")
	viper.SetDefault("LOG_LEVEL", "info")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	pollInterval, err := time.ParseDuration(viper.GetString("REFRESH_POLL_INTERVAL"))
	if err != nil {
		return nil, err
	}

	tokenTTL, err := time.ParseDuration(viper.GetString("AUTH_TOKEN_TTL"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Auth: AuthConfig{
			JWTSecret:     viper.GetString("AUTH_JWT_SECRET"),
			AdminEmail:    viper.GetString("AUTH_ADMIN_EMAIL"),
			AdminPassword: viper.GetString("AUTH_ADMIN_PASSWORD"),
			TokenTTL:      tokenTTL,
		},
		Storage: StorageConfig{
			Root:    viper.GetString("STORAGE_ROOT"),
			BaseURL: viper.GetString("STORAGE_BASE_URL"),
		},
		Refresh: RefreshConfig{
			PollInterval: pollInterval,
			Channel:      viper.GetString("REFRESH_CHANNEL"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
