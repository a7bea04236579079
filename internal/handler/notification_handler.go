package handler

import (
	"eduease-be/internal/pkg/apperror"
	"eduease-be/internal/pkg/logger"
	"eduease-be/internal/pkg/serverutils"
	internalWS "eduease-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type NotificationHandler struct {
	hub    *internalWS.Hub
	secret []byte
	logger logger.ILogger
}

func NewNotificationHandler(hub *internalWS.Hub, secret []byte, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		hub:    hub,
		secret: secret,
		logger: log,
	}
}

// ServeWs upgrades a request carrying a session token into a push socket
// for that session's toasts.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on a websocket handshake, so the query
	// parameter comes first.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return apperror.New(apperror.Unauthorized, "Missing token (Query 'token' or Header 'Authorization')")
	}

	sessionId, err := serverutils.ParseSessionToken(h.secret, tokenStr)
	if err != nil {
		h.logger.Warn("NotificationHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return err
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionId})
		internalWS.ServeWs(h.hub, conn, sessionId)
		h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionId})
	})(c)
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/session/v1/ws", h.ServeWs)
}
