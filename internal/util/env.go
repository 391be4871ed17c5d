package util

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix namespaces every variable read by the srlview tooling.
const EnvPrefix = "SRLVIEW_"

// LoadEnv loads a .env file from the working directory if present and
// reports whether one was loaded. It runs before the logger is initialized,
// so a missing file is not logged here.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

func lookup(key string) (string, bool) {
	return os.LookupEnv(EnvPrefix + key)
}

func GetEnv(key string) string {
	value, _ := lookup(key)
	return value
}

func GetEnvString(key string, defaultValue string) string {
	value, exists := lookup(key)
	if !exists {
		return defaultValue
	}
	return value
}

// GetEnvInt returns defaultValue when the variable is unset or not an integer.
func GetEnvInt(key string, defaultValue int) int {
	value, exists := lookup(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func GetEnvBool(key string, defaultValue bool) bool {
	value, exists := lookup(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
