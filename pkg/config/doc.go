// Package config loads the exporter configuration from environment
// variables into an immutable Config value. Configuration is resolved once
// at startup; components receive the Config explicitly instead of reading
// the environment themselves.
package config
