package api

import (
	"strings"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxRequestIDLength = 128

// RequestID echoes a sane client X-Request-ID or generates a new one.
func RequestID(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Get(requestIDHeader))
	if id == "" || len(id) > maxRequestIDLength {
		id = uuid.NewString()
	}
	c.Locals(contextRequestIDKey, id)
	c.Set(requestIDHeader, id)
	return c.Next()
}

// AccessLog writes one line per request. Client IPs are masked.
func AccessLog(log *zap.Logger) fiber.Handler {
	log = logger.OrNop(log).Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", requestID(c)),
			zap.String("ip", logger.MaskIP(c.IP())),
		}
		if user, ok := currentUser(c); ok {
			fields = append(fields, zap.Uint("user_id", user.ID))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
		return nil
	}
}
