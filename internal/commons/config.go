package commons

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"storeadmin/internal/config"
)

// fileConfig mirrors config.Config with string durations, which yaml
// cannot decode directly into time.Duration.
type fileConfig struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		Name            string `yaml:"name"`
		SSLMode         string `yaml:"sslmode"`
		MaxOpenConns    int    `yaml:"maxopenconns"`
		MaxIdleConns    int    `yaml:"maxidleconns"`
		ConnMaxLifetime string `yaml:"connmaxlifetime"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret     string `yaml:"jwtsecret"`
		AdminEmail    string `yaml:"adminemail"`
		AdminPassword string `yaml:"adminpassword"`
		TokenTTL      string `yaml:"tokenttl"`
	} `yaml:"auth"`
	Storage struct {
		Root    string `yaml:"root"`
		BaseURL string `yaml:"baseurl"`
	} `yaml:"storage"`
	Refresh struct {
		PollInterval string `yaml:"pollinterval"`
		Channel      string `yaml:"channel"`
	} `yaml:"refresh"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// LoadConfig reads a yaml config file. Environment-driven defaults live
// in config.Load; this path is used when a file is passed explicitly.
func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	connMaxLifetime, err := parseDuration(fc.Database.ConnMaxLifetime, 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("parsing database.connmaxlifetime: %w", err)
	}
	tokenTTL, err := parseDuration(fc.Auth.TokenTTL, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("parsing auth.tokenttl: %w", err)
	}
	pollInterval, err := parseDuration(fc.Refresh.PollInterval, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("parsing refresh.pollinterval: %w", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port: fc.Server.Port,
		},
		Database: config.DatabaseConfig{
			Host:            fc.Database.Host,
			Port:            fc.Database.Port,
			User:            fc.Database.User,
			Password:        fc.Database.Password,
			Name:            fc.Database.Name,
			SSLMode:         fc.Database.SSLMode,
			MaxOpenConns:    fc.Database.MaxOpenConns,
			MaxIdleConns:    fc.Database.MaxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
		},
		Auth: config.AuthConfig{
			JWTSecret:     fc.Auth.JWTSecret,
			AdminEmail:    fc.Auth.AdminEmail,
			AdminPassword: fc.Auth.AdminPassword,
			TokenTTL:      tokenTTL,
		},
		Storage: config.StorageConfig{
			Root:    fc.Storage.Root,
			BaseURL: fc.Storage.BaseURL,
		},
		Refresh: config.RefreshConfig{
			PollInterval: pollInterval,
			Channel:      fc.Refresh.Channel,
		},
		Log: config.LogConfig{
			Level: fc.Log.Level,
		},
	}

	return cfg, nil
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}
