package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"eduease-be/internal/pkg/logger"
	"eduease-be/internal/pkg/serverutils"
	internalWS "eduease-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(secret []byte) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(logger.NewNop()))
	h := NewNotificationHandler(internalWS.NewHub(nil, logger.NewNop()), secret, logger.NewNop())
	h.RegisterRoutes(app.Group("/api"))
	return app
}

func TestServeWs_RejectsMissingToken(t *testing.T) {
	app := newApp([]byte("secret"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/session/v1/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestServeWs_RejectsForeignToken(t *testing.T) {
	app := newApp([]byte("secret"))
	token, err := serverutils.NewSessionToken([]byte("other"), "s-1", time.Hour)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/session/v1/ws?token="+token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestServeWs_RequiresUpgrade(t *testing.T) {
	secret := []byte("secret")
	app := newApp(secret)
	token, err := serverutils.NewSessionToken(secret, "s-1", time.Hour)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/session/v1/ws?token="+token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
