package util

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// GoDotEnvVariable reads a key from the environment, loading .env on first use
// so handlers and helpers can call it without caring about startup order.
func GoDotEnvVariable(key string) string {
	_ = godotenv.Load()
	return os.Getenv(key)
}

// EnvInt reads an integer setting, returning fallback when the variable is
// unset or not a number.
func EnvInt(key string, fallback int) int {
	v := GoDotEnvVariable(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		Log("Ignoring non-numeric", key, "=", v)
		return fallback
	}
	return n
}

// GetPort from the environment.
func GetPort() string {
	var port = os.Getenv("PORT")
	// Set a default port if there is nothing in the environment
	if port == "" {
		port = "4000"
		fmt.Println("INFO: No PORT environment variable detected, defaulting to " + port)
	}
	return ":" + port
}
