package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestServerConfig_SinDeadlineDeEscritura(t *testing.T) {
	cfg := serverConfig("tienda-pos")

	assert.Zero(t, cfg.WriteTimeout,
		"un WriteTimeout del servidor cortaría los streams SSE de /api/events")
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, "tienda-pos", cfg.AppName)
}
