package serverutils

import (
	"time"

	"eduease-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const SessionIdLocal = "session_id"

// NewSessionToken signs a bearer token naming one study session.
func NewSessionToken(secret []byte, sessionId string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"session_id": sessionId,
		"iat":        now.Unix(),
	}
	if ttl > 0 {
		claims["exp"] = now.Add(ttl).Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseSessionToken validates tokenStr and returns its session id.
func ParseSessionToken(secret []byte, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperror.New(apperror.Unauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperror.New(apperror.Unauthorized, "Invalid claims")
	}
	sessionId, ok := claims["session_id"].(string)
	if !ok || sessionId == "" {
		return "", apperror.New(apperror.Unauthorized, "Token missing session_id")
	}
	return sessionId, nil
}

func JwtMiddleware(secret []byte) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return apperror.New(apperror.Unauthorized, "Missing token")
		}

		sessionId, err := ParseSessionToken(secret, authHeader[7:])
		if err != nil {
			return err
		}

		ctx.Locals(SessionIdLocal, sessionId)
		return ctx.Next()
	}
}
