package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port         string
	MongoURI     string
	JWTSecret    string
	AnthropicKey string
	DataDir      string // local storage directory, the durability backstop
}

// Load reads configuration from environment variables.
func Load() Config {
	cfg := Config{
		Port:         os.Getenv("PORT"),
		MongoURI:     os.Getenv("MONGO_URI"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		DataDir:      os.Getenv("KIBI_DATA_DIR"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.JWTSecret == "" {
		// Sessions won't survive a restart without a configured secret.
		cfg.JWTSecret = GenerateRandomKey()
		log.Println("JWT_SECRET not set, generated an ephemeral signing key")
	}
	return cfg
}

// GenerateRandomKey returns a random hex key (32 bytes = 64 hex chars).
func GenerateRandomKey() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("Failed to generate random key: %v", err)
	}
	return hex.EncodeToString(b)
}
