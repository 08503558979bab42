package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads KEY=VALUE pairs from .env and .env.local when present.
// Variables already set in the process environment are not overwritten.
func loadEnvFiles() error {
	var found []string
	for _, p := range envFiles {
		if _, err := os.Stat(p); err == nil {
			found = append(found, p)
		}
	}
	if len(found) == 0 {
		return errors.New("no .env file found")
	}
	return godotenv.Load(found...)
}
