package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_NivelConfigurado(t *testing.T) {
	l := New("production", "debug")
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())
}

func TestNew_NivelDesconocidoCaeAInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, New("production", "verbose").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New("development", "").GetLevel())
}

func TestNew_MayusculasAceptadas(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, New("production", "WARN").GetLevel())
}
