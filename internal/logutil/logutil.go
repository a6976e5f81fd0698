package logutil

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func ConfigureLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.With().Caller().Stack().Logger().
		Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// SetLevel configures the global log level. Unknown names keep the default.
func SetLevel(level string) {
	l, err := zerolog.ParseLevel(level)
	if err != nil || l == zerolog.NoLevel {
		return
	}
	zerolog.SetGlobalLevel(l)
}
