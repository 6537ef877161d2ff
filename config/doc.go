// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Defaults cover the public Stride API endpoint and the Reading terminal
// reference point, so an empty file is a working configuration.
package config
