package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv names the environment variable holding the transit data portal
// API key. Its absence switches the dataset loader to local-only mode.
const APIKeyEnv = "TRANSIT_API_KEY"

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from
// config.yml, then applies defaults.
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
	if err := v.Struct(cfg); err != nil {
		return err
	}
	Config = cfg
	applyDefaults(&Config)
	return nil
}

// APIKey returns the configured remote-source credential, "" when absent.
func APIKey() string {
	return os.Getenv(APIKeyEnv)
}

func applyDefaults(cfg *AppConfig) {
	if cfg.GTFS.CacheTTLHours == 0 {
		cfg.GTFS.CacheTTLHours = 24
	}
	if cfg.Resolver.Limit == 0 {
		cfg.Resolver.Limit = 5
	}
	if cfg.GTFSRT.TimeoutMS == 0 {
		cfg.GTFSRT.TimeoutMS = 10000
	}
}
