package tracer

import (
	"context"
	"testing"

	"eduease-be/internal/config"
	"eduease-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestInitTracerDisabled(t *testing.T) {
	shutdown := InitTracer(config.OtelConfig{Enabled: false}, logger.NewNop())
	assert.NoError(t, shutdown(context.Background()))
}
