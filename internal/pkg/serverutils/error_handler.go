package serverutils

import (
	"errors"
	"strings"

	"eduease-be/internal/pkg/apperror"
	"eduease-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware renders any error returned by later handlers as an
// ErrorResponse. secrets are scrubbed from every field before writing.
func ErrorHandlerMiddleware(log logger.ILogger, secrets ...string) fiber.Handler {
	var redactor *strings.Replacer
	var pairs []string
	for _, s := range secrets {
		if s != "" {
			pairs = append(pairs, s, "[REDACTED]")
		}
	}
	if len(pairs) > 0 {
		redactor = strings.NewReplacer(pairs...)
	}
	scrub := func(s string) string {
		if redactor == nil {
			return s
		}
		return redactor.Replace(s)
	}

	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status, body := toResponse(err)
		body.Error = scrub(body.Error)
		body.Details = scrub(body.Details)
		body.RawResponse = scrub(body.RawResponse)

		details := map[string]interface{}{
			"kind":   string(apperror.KindOf(err)),
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"status": status,
			"error":  err,
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", details)
		} else {
			log.Warn("HTTP", "Request rejected", details)
		}

		return ctx.Status(status).JSON(body)
	}
}

func toResponse(err error) (int, ErrorResponse) {
	if e, ok := apperror.As(err); ok {
		return e.Status(), ErrorResponse{
			Error:       e.Message,
			Details:     e.Details,
			RawResponse: e.Raw,
		}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, ErrorResponse{Error: fe.Message}
	}

	return fiber.StatusInternalServerError, ErrorResponse{
		Error:   "Internal server error",
		Details: err.Error(),
	}
}
