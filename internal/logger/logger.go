package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tasktrackr/tasktrackr/internal/config"
)

// Default builds the bootstrap logger used until the configuration is read.
func Default() zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Logger()
}

// ForEnv switches base to the level and output the environment calls for.
func ForEnv(base zerolog.Logger, env string, debug bool) (zerolog.Logger, error) {
	w := io.Writer(os.Stdout)
	level := zerolog.InfoLevel

	switch env {
	case config.EnvDev:
		level = zerolog.DebugLevel
	case config.EnvProd:
		level = zerolog.InfoLevel
	case config.EnvLocal:
		level = zerolog.TraceLevel

		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stdout
		w = consoleWriter
	default:
		return base, fmt.Errorf("unknown env: %s", env)
	}

	if debug && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)
	return base.Output(w).Level(level), nil
}
