package config

import "os"

// GetEnvOrDefault returns the value of the environment variable key,
// or defaultVal when it is unset or empty.
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
