// Package envconfig reads fieldkit settings from the environment.
//
// Variables:
//   - FIELDKIT_NUM_THREADS: worker lanes for parallel passes (default: NumCPU)
//   - FIELDKIT_MIN_CHUNK: minimum indices per lane (default: 64)
//   - FIELDKIT_SERIAL: force sequential passes
//   - FIELDKIT_DEBUG: debug logging in the CLI
package envconfig

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Var returns an environment variable with surrounding spaces and quotes removed.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// BoolWithDefault returns a getter for a boolean variable.
// A set but unparsable value counts as true.
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return defaultValue
	}
}

// Bool returns a getter for a boolean variable that defaults to false.
func Bool(k string) func() bool {
	withDefault := BoolWithDefault(k)
	return func() bool {
		return withDefault(false)
	}
}

// Uint returns a getter for an unsigned variable with a default.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				zap.L().Warn("invalid environment variable, using default",
					zap.String("key", key), zap.String("value", s), zap.Uint("default", defaultValue))
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

var (
	// Serial forces sequential execution of every pass.
	Serial = Bool("FIELDKIT_SERIAL")

	// MinChunk is the minimum number of indices handed to one lane.
	MinChunk = Uint("FIELDKIT_MIN_CHUNK", 64)
)

// NumThreads returns the number of worker lanes.
// Configurable via FIELDKIT_NUM_THREADS; zero or unset means NumCPU.
func NumThreads() int {
	if n := Uint("FIELDKIT_NUM_THREADS", 0)(); n > 0 {
		return int(n)
	}
	return runtime.NumCPU()
}

// LogLevel returns the CLI log level.
// FIELDKIT_DEBUG=1 enables debug output.
func LogLevel() zapcore.Level {
	level := zapcore.InfoLevel
	if s := Var("FIELDKIT_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = zapcore.DebugLevel
		}
	}
	return level
}

// EnvVar describes one environment variable and its effective value.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every known variable with its effective value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"FIELDKIT_NUM_THREADS": {"FIELDKIT_NUM_THREADS", NumThreads(), "Worker lanes for parallel passes (default: number of CPUs)"},
		"FIELDKIT_MIN_CHUNK":   {"FIELDKIT_MIN_CHUNK", MinChunk(), "Minimum indices per lane (default: 64)"},
		"FIELDKIT_SERIAL":      {"FIELDKIT_SERIAL", Serial(), "Run every pass sequentially"},
		"FIELDKIT_DEBUG":       {"FIELDKIT_DEBUG", LogLevel(), "Show additional debug information (e.g. FIELDKIT_DEBUG=1)"},
	}
}

// Values returns every known variable formatted as a string.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
