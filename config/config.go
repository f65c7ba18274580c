package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port    string
	GinMode string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// AI completion endpoint (OpenAI-compatible)
	AIAPIURL string
	AIModel  string
	AIAPIKey string

	// Web search
	TavilyAPIKey string

	// CORS
	CORSAllowOrigins []string
}

func LoadConfig() *Config {
	env := os.Getenv("HEADPHONE_STORE_SERVER_ENV")

	// Load .env file if it exists
	if err := godotenv.Load(".env." + env); err != nil {
		log.Println("No .env." + env + " file found, using environment variables")
	}

	config := &Config{
		// Server
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// Database
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "headphone_store"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "headphone_store.db"),

		// AI completion endpoint
		AIAPIURL: getEnv("AI_API_URL", ""),
		AIModel:  getEnv("AI_MODEL", "mistralai/mistral-7b-instruct-v0.3"),
		AIAPIKey: getEnv("AI_API_KEY", ""),

		// Web search
		TavilyAPIKey: getEnv("TAVILY_API_KEY", ""),

		// CORS
		CORSAllowOrigins: getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"*"}),
	}

	return config
}

func (c Config) String() string {
	redact := func(s string) string {
		if s == "" {
			return ""
		}
		if len(s) <= 4 {
			return "****"
		}
		return "****" + s[len(s)-4:]
	}

	return fmt.Sprintf(
		"Config:\n"+
			"  Server:\n"+
			"    Port: %s\n"+
			"    GinMode: %s\n"+
			"  Database:\n"+
			"    Driver: %s\n"+
			"    Host: %s\n"+
			"    Port: %s\n"+
			"    User: %s\n"+
			"    Password: %s\n"+
			"    Name: %s\n"+
			"    SSLMode: %s\n"+
			"    Path: %s\n"+
			"  AI:\n"+
			"    APIURL: %s\n"+
			"    Model: %s\n"+
			"    APIKey: %s\n"+
			"  Tavily:\n"+
			"    APIKey: %s\n"+
			"  CORS:\n"+
			"    AllowOrigins: %s",
		c.Port, c.GinMode,
		c.DBDriver, c.DBHost, c.DBPort, c.DBUser, redact(c.DBPassword), c.DBName, c.DBSSLMode, c.DBPath,
		c.AIAPIURL, c.AIModel, redact(c.AIAPIKey),
		redact(c.TavilyAPIKey),
		strings.Join(c.CORSAllowOrigins, ", "),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
