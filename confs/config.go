package confs

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the settings read from the process environment at startup.
// Database settings stay in the environment and are consumed by db.Connect.
type Config struct {
	Port      string
	JWTSecret string
}

// LoadConfig loads environment variables from a .env file if present
// and validates essential settings.
func LoadConfig() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	cfg := &Config{
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required configuration: JWT_SECRET")
	}
	return cfg, nil
}
