// Package settings reads configuration from .env files and prefixed
// environment variables.
package settings

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const Prefix = "SURVIVALARENA"

// LoadEnvFiles loads .env.<env>.local, .env.<env> and .env, in that order of
// precedence. Variables already set in the process environment win.
func LoadEnvFiles() {
	env := os.Getenv(EnvKey("ENV"))
	if env == "" {
		env = "development"
	}

	godotenv.Load(".env." + env + ".local")
	godotenv.Load(".env." + env)
	godotenv.Load()
}

func GetenvStr(key string) string {
	return os.Getenv(EnvKey(key))
}

// GetenvStrDefault returns the value for key, or def when unset.
func GetenvStrDefault(key, def string) string {
	if s := GetenvStr(key); s != "" {
		return s
	}
	return def
}

func GetenvInt(key string) int {
	s := GetenvStr(key)
	if s == "" {
		return 0
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return v
}

func GetenvFloat(key string) float64 {
	s := GetenvStr(key)
	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return v
}

func GetenvBool(key string) bool {
	s := GetenvStr(key)
	if s == "" {
		return false
	}

	v, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}

	return v
}

// GetenvDuration parses values like "3s" or "250ms". Invalid or empty values yield 0.
func GetenvDuration(key string) time.Duration {
	s := GetenvStr(key)
	if s == "" {
		return 0
	}

	v, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}

	return v
}

func EnvKey(str string) string {
	return fmt.Sprintf("%s_%s", Prefix, str)
}
