package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default values applied after load when the file leaves them unset.
const (
	DefaultPort            = 8080
	DefaultBaseURL         = "https://open-bus-stride-api.hasadna.org.il"
	DefaultTimeoutMS       = 30000
	DefaultPageSize        = 1000
	DefaultMaxRetries      = 3
	DefaultRetryInitialMS  = 500
	DefaultRetryMaxMS      = 10000
	DefaultLookbackMinutes = 180
	DefaultRefreshMinutes  = 1
	DefaultMaxRecords      = 100000
	DefaultReferenceLat    = 32.090260
	DefaultReferenceLon    = 34.782621
)

// LoadAppConfig loads and validates the application configuration.
// An empty path falls back to config.yml in the working directory.
func LoadAppConfig(path string) (*AppConfig, error) {
	paths := []string{path}
	if path == "" {
		paths = []string{"config.yml", "./config/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultAppConfig returns a configuration with all defaults applied,
// used when no config file is present.
func DefaultAppConfig() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Stride.BaseURL == "" {
		cfg.Stride.BaseURL = DefaultBaseURL
	}
	if cfg.Stride.TimeoutMS == 0 {
		cfg.Stride.TimeoutMS = DefaultTimeoutMS
	}
	if cfg.Stride.PageSize == 0 {
		cfg.Stride.PageSize = DefaultPageSize
	}
	if cfg.Stride.MaxRetries == 0 {
		cfg.Stride.MaxRetries = DefaultMaxRetries
	}
	if cfg.Stride.RetryInitialMS == 0 {
		cfg.Stride.RetryInitialMS = DefaultRetryInitialMS
	}
	if cfg.Stride.RetryMaxMS == 0 {
		cfg.Stride.RetryMaxMS = DefaultRetryMaxMS
	}
	if cfg.Analysis.LookbackMinutes == 0 {
		cfg.Analysis.LookbackMinutes = DefaultLookbackMinutes
	}
	if cfg.Analysis.RefreshIntervalMinutes == 0 {
		cfg.Analysis.RefreshIntervalMinutes = DefaultRefreshMinutes
	}
	if cfg.Analysis.MaxRecords == 0 {
		cfg.Analysis.MaxRecords = DefaultMaxRecords
	}
	if cfg.Analysis.ReferenceLat == 0 && cfg.Analysis.ReferenceLon == 0 {
		cfg.Analysis.ReferenceLat = DefaultReferenceLat
		cfg.Analysis.ReferenceLon = DefaultReferenceLon
	}
}
