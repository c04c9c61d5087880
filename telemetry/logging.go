package telemetry

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config log level name to a zerolog level, defaulting to info
func ParseLevel(name string) (level zerolog.Level) {
	switch strings.ToUpper(name) {
	case "TRACE":
		level = zerolog.TraceLevel
	case "DEBUG":
		level = zerolog.DebugLevel
	case "INFO":
		level = zerolog.InfoLevel
	case "WARN":
		level = zerolog.WarnLevel
	case "ERROR":
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}
	return
}

// SetupLogging sets the global level and returns a console logger writing to w,
// or to stderr when w is nil.
func SetupLogging(levelName string, w io.Writer) (log zerolog.Logger) {
	if w == nil {
		w = os.Stderr
	}
	zerolog.SetGlobalLevel(ParseLevel(levelName))
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	log = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
	log.Debug().Str("loglevel", zerolog.GlobalLevel().String()).Msg("logging set up")
	return
}
