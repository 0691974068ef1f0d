package logger

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	requestIDLoggerKey = "requestID"
	identityLoggerKey  = "identity"

	localsKey       = "logger"
	requestIDHeader = "X-Request-ID"
)

// Init sets up the text formatter and level for all log statements.
// Unknown levels fall back to info.
func Init(level string) {
	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	logrus.SetFormatter(customFormatter)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

// Default returns a logger without a request ID.
func Default() *logrus.Entry {
	return logrus.NewEntry(logrus.StandardLogger())
}

// Middleware attaches a request-scoped logger and logs one line per request.
// An incoming X-Request-ID header is reused as the request ID.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Locals(localsKey, logrus.WithField(requestIDLoggerKey, id))

		start := time.Now()
		err := c.Next()

		FromCtx(c).WithFields(logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  StatusOf(c, err),
			"latency": time.Since(start).String(),
		}).Info("request handled")

		return err
	}
}

// FromCtx returns the request logger, or the default logger outside a request.
func FromCtx(c *fiber.Ctx) *logrus.Entry {
	if rlog, ok := c.Locals(localsKey).(*logrus.Entry); ok {
		return rlog
	}
	return Default()
}

// WithIdentity tags every further log line of the request with identity.
func WithIdentity(c *fiber.Ctx, identity string) {
	c.Locals(localsKey, FromCtx(c).WithField(identityLoggerKey, identity))
}

// StatusOf resolves the status code a request will be answered with, taking
// into account an error that has not reached the error handler yet.
func StatusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var e *fiber.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return fiber.StatusInternalServerError
}
