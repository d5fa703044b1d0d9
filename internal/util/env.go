package util

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// GetEnv returns the value of the environment variable key, or
// defaultVal if it is unset.
func GetEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// GetEnvAsInt parses the environment variable key as an int, falling
// back to defaultVal on absence or parse failure.
func GetEnvAsInt(key string, defaultVal int) int {
	strVal, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}

	val, err := strconv.Atoi(strVal)
	if err != nil {
		log.Warn().Str("key", key).Str("value", strVal).Err(err).Msg("Failed to parse env variable as int, using default")
		return defaultVal
	}
	return val
}

// GetEnvAsBool parses the environment variable key as a bool, falling
// back to defaultVal on absence or parse failure.
func GetEnvAsBool(key string, defaultVal bool) bool {
	strVal, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}

	val, err := strconv.ParseBool(strVal)
	if err != nil {
		log.Warn().Str("key", key).Str("value", strVal).Err(err).Msg("Failed to parse env variable as bool, using default")
		return defaultVal
	}
	return val
}

// GetEnvAsStringArr splits the environment variable key on the
// separator (default ","), falling back to defaultVal when unset or
// empty.
func GetEnvAsStringArr(key string, defaultVal []string, separator ...string) []string {
	strVal, ok := os.LookupEnv(key)
	if !ok || strVal == "" {
		return defaultVal
	}

	sep := ","
	if len(separator) > 0 {
		sep = separator[0]
	}

	return strings.Split(strVal, sep)
}
