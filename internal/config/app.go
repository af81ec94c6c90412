package config

import (
	"os"
	"strings"
)

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

// Port returns the listen address, ":8080" when APP_PORT is unset. A bare
// port number gets the colon prepended.
func Port() string {
	port := strings.TrimSpace(os.Getenv("APP_PORT"))
	if port == "" {
		return ":8080"
	}
	if !strings.Contains(port, ":") {
		port = ":" + port
	}
	return port
}

func LogFile() (string, bool) {
	path, ok := os.LookupEnv("LOG_FILE")
	if !ok || strings.TrimSpace(path) == "" {
		return "", false
	}
	return path, true
}
