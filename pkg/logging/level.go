package logging

import (
	"os"
	"strings"
)

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

type Level string

func (ll Level) String() string { return string(ll) }

// ParseLevel accepts the level names and their first letter, case insensitive.
// "critical" is understood as LevelFatal.
func ParseLevel(raw string) (Level, bool) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(raw))]
	return level, ok
}

var levelNames = map[string]Level{
	"debug":    LevelDebug,
	"info":     LevelInfo,
	"warn":     LevelWarn,
	"error":    LevelError,
	"fatal":    LevelFatal,
	"critical": LevelFatal,

	"d": LevelDebug,
	"i": LevelInfo,
	"w": LevelWarn,
	"e": LevelError,
	"f": LevelFatal,
	"c": LevelFatal,
}

var defaultLevel = LevelInfo

func init() {
	if level, ok := lookupLevelFromEnv(); ok {
		defaultLevel = level
	}
}

var levelEnvKeys = []string{"LOG_LEVEL", "LOGGER_LEVEL", "LOGGING_LEVEL"}

func lookupLevelFromEnv() (Level, bool) {
	for _, key := range levelEnvKeys {
		if raw, ok := os.LookupEnv(key); ok {
			if level, ok := ParseLevel(raw); ok {
				return level, true
			}
		}
	}
	return "", false
}

var levelPriority = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
	LevelFatal: 4,

	*new(Level): 1, // zero Level is LevelInfo
}

func isLevelEnabled(target, level Level) bool {
	return levelPriority[target] <= levelPriority[level]
}
