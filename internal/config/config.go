package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	// Remote collaborators
	DocumentStoreURL string
	AssetResolverURL string
	RemoteTimeout    time.Duration

	// Redis
	EnableRedis bool
	RedisURL    string

	// Server
	Port        string
	Environment string

	// CORS
	CORSOrigins []string

	// Features
	EnableMetrics bool
}

func New() *Config {
	c := &Config{
		// Remote collaborators
		DocumentStoreURL: getEnv("DOCUMENT_STORE_URL", "http://localhost:7575"),
		AssetResolverURL: getEnv("ASSET_RESOLVER_URL", "http://localhost:7576"),
		RemoteTimeout:    time.Duration(getEnvAsInt("REMOTE_TIMEOUT_SECONDS", 15)) * time.Second,

		// Redis
		EnableRedis: getEnvAsBool("ENABLE_REDIS", false),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// CORS
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		// Features
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}

	return c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
