package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New construye el logger del servicio y lo instala como logger global de
// zerolog (para librerías que escriben vía log.Logger). En development la
// salida es consola legible con hora corta; en cualquier otro entorno, JSON
// por stdout.
func New(env, level string) zerolog.Logger {
	var out io.Writer = os.Stdout
	if env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}
	}
	l := zerolog.New(out).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
	log.Logger = l
	return l
}

// parseLevel convierte el nivel textual de configuración. Valores vacíos o no
// reconocidos caen a info en vez de fallar el arranque.
func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
