package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig() error {
	paths := []string{"config.yml", "./config/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return err
	}
	if err := v.Struct(cfg.Search); err != nil {
		return err
	}
	Config = cfg
	applyDefaults(&Config)
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 16181
	}
	if cfg.Search.MinStopoverMinutes == 0 {
		cfg.Search.MinStopoverMinutes = 30
	}
	if cfg.Search.MaxStopoverMinutes == 0 {
		cfg.Search.MaxStopoverMinutes = 6 * 60
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "travel-registry.db"
	}
}
