// Package config provides configuration loading and validation for streamkit
// applications.
//
// It uses Viper to load configuration from files and environment variables,
// supporting multiple formats (YAML, JSON, TOML) and environment-specific
// overrides.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("progress-server", &cfg)
//
// Environment variables override file values using underscore-separated
// paths (e.g., LOGGING_LEVEL, SSE_HEARTBEAT_INTERVAL).
package config
