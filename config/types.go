package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// StrideConfig contains Stride API client configuration
type StrideConfig struct {
	BaseURL        string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gte=0"`
	PageSize       int    `yaml:"pageSize" validate:"gte=0"`
	MaxRetries     int    `yaml:"maxRetries" validate:"gte=0"`
	RetryInitialMS int    `yaml:"retryInitialMS" validate:"gte=0"`
	RetryMaxMS     int    `yaml:"retryMaxMS" validate:"gte=0"`
}

// AnalysisConfig contains the tracked line and distance-analysis settings
type AnalysisConfig struct {
	LineRef                string  `yaml:"lineRef"`
	RouteMkt               string  `yaml:"routeMkt"`
	RouteNameFilter        string  `yaml:"routeNameFilter"`
	RouteDirection         string  `yaml:"routeDirection"`
	LookbackMinutes        int     `yaml:"lookbackMinutes" validate:"gte=0"`
	RefreshIntervalMinutes int     `yaml:"refreshIntervalMinutes" validate:"gte=0"`
	MaxRecords             int     `yaml:"maxRecords" validate:"gte=0"`
	ReferenceLat           float64 `yaml:"referenceLat"`
	ReferenceLon           float64 `yaml:"referenceLon"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Stride   StrideConfig   `yaml:"stride"`
	Analysis AnalysisConfig `yaml:"analysis"`
}
