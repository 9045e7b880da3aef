package config

import "os"

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host string
	Port string
}

// TLSConfig holds HTTPS settings
type TLSConfig struct {
	Enabled    bool
	CertFile   string
	KeyFile    string
	MinVersion string
}

// DataConfig holds on-disk storage locations
type DataConfig struct {
	Path   string
	DBPath string
}

// ImageConfig holds the remote image search provider settings
type ImageConfig struct {
	Endpoint string
	APIKey   string
}

// Config is the full server configuration
type Config struct {
	Server ServerConfig
	TLS    TLSConfig
	Data   DataConfig
	Images ImageConfig
}

// LoadConfig reads configuration from environment variables with defaults
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		TLS: TLSConfig{
			Enabled:    getEnv("TLS_ENABLED", "false") == "true",
			CertFile:   getEnv("TLS_CERT_FILE", "./certs/server.crt"),
			KeyFile:    getEnv("TLS_KEY_FILE", "./certs/server.key"),
			MinVersion: getEnv("TLS_MIN_VERSION", "1.2"),
		},
		Data: DataConfig{
			Path:   getEnv("DATA_PATH", "./data"),
			DBPath: getEnv("DB_PATH", "./data/lesson-deck.db"),
		},
		Images: ImageConfig{
			Endpoint: getEnv("IMAGE_API_ENDPOINT", "https://api.pexels.com/v1/search"),
			APIKey:   os.Getenv("IMAGE_API_KEY"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
