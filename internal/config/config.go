// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	// Environment is "development", "production", etc. Anything other than
	// development enforces the secret requirements below.
	Environment string

	JWTSecretKey string
	JWTAlgorithm string

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	TextModel         string
	VisionModel       string
	// UseMockAI bypasses the completion gateway and echoes the input back.
	UseMockAI bool

	DatabasePath string
}

// ConfigError describes a missing or invalid configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + ": " + e.Reason
}

// Load reads configuration from environment variables or .env file.
// It terminates the process if a required secret is missing outside development.
func Load() *Config {
	env := strings.ToLower(getEnv("ENV", "development"))
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		Environment:       env,
		JWTSecretKey:      getEnv("JWT_SECRET_KEY", ""),
		JWTAlgorithm:      getEnv("JWT_ALGORITHM", "HS256"),
		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		TextModel:         getEnv("TEXT_MODEL", "openai/gpt-3.5-turbo"),
		VisionModel:       getEnv("VISION_MODEL", "openai/gpt-4o-mini"),
		UseMockAI:         getEnvAsBool("USE_MOCK_AI", false),
		DatabasePath:      getEnv("DATABASE_PATH", "visionchat.db"),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("FATAL: invalid configuration: %v", err)
	}

	return cfg
}

// Validate enforces the secret requirements for the configured environment.
func (c *Config) Validate() error {
	if c.JWTAlgorithm != "HS256" {
		return &ConfigError{Field: "JWT_ALGORITHM", Reason: "only HS256 is supported"}
	}

	if c.Environment == "development" {
		if c.JWTSecretKey == "" {
			// Deliberately ugly so it never survives a copy-paste into production.
			c.JWTSecretKey = "dev-only-insecure-signing-key"
			log.Println("WARNING: JWT_SECRET_KEY not set; using an INSECURE development-only key")
		}
		return nil
	}

	missing := []string{}
	if c.JWTSecretKey == "" {
		missing = append(missing, "JWT_SECRET_KEY")
	}
	if c.OpenRouterAPIKey == "" && !c.UseMockAI {
		missing = append(missing, "OPENROUTER_API_KEY")
	}
	if len(missing) > 0 {
		return &ConfigError{Field: strings.Join(missing, ", "), Reason: "required outside development"}
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsBool gets an env var as a boolean, with a fallback.
func getEnvAsBool(key string, defaultValue bool) bool {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	return strings.EqualFold(strValue, "true") || strValue == "1"
}
