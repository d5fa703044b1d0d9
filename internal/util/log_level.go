package util

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevelFromString parses a zerolog level name, falling back to debug
// on unknown values.
func LogLevelFromString(s string) zerolog.Level {
	l, err := zerolog.ParseLevel(s)
	if err != nil {
		log.Error().Err(err).Str("level", s).Msg("Failed to parse log level, defaulting to debug")
		return zerolog.DebugLevel
	}
	return l
}
