package http

import (
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"

	maxRequestIDLen = 128
)

type Middleware struct {
	appName      string
	fiber        *fiber.App
	logger       *logrus.Logger
	errorHandler fiber.ErrorHandler
}

func NewMiddleware(appName string, fiber *fiber.App, logger *logrus.Logger, errorHandler fiber.ErrorHandler) *Middleware {
	return &Middleware{
		appName:      appName,
		fiber:        fiber,
		logger:       logger,
		errorHandler: errorHandler,
	}
}

// UseMetrics exposes HTTP metrics at /metrics. It registers collectors on
// the default prometheus registry and must be called once per process.
func (m *Middleware) UseMetrics() {
	prometheus := fiberprometheus.New(m.appName)
	prometheus.RegisterAt(m.fiber, "/metrics")
	m.fiber.Use(prometheus.Middleware)
}

// UseRequestID keeps a caller supplied X-Request-ID or generates one.
func (m *Middleware) UseRequestID() {
	m.fiber.Use(func(c *fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.New().String()
		}

		c.Locals(requestIDKey, id)
		c.Set(requestIDHeader, id)

		return c.Next()
	})
}

// UseLogger writes one access log line per request. Errors are rendered here
// so the logged status is the one sent to the client.
func (m *Middleware) UseLogger() {
	m.fiber.Use(func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := m.errorHandler(c, chainErr); err != nil {
				m.logger.
					WithField("method", "UseLogger").
					WithField("request_id", requestID(c)).
					WithField("cause", chainErr.Error()).
					WithError(err).
					Error("error handler failed")

				if err := c.SendStatus(fiber.StatusInternalServerError); err != nil {
					m.logger.
						WithField("method", "UseLogger").
						WithField("request_id", requestID(c)).
						WithError(err).
						Error("send fallback status")
				}
			}
		}

		m.logger.
			WithField("request_id", requestID(c)).
			WithField("http_method", c.Method()).
			WithField("path", c.Path()).
			WithField("status", c.Response().StatusCode()).
			WithField("latency", time.Since(start).String()).
			Info("request")

		return nil
	})
}

func (m *Middleware) UseRecover() {
	m.fiber.Use(recover.New())
}
