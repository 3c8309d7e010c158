package common

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// LoggerMiddleware gives each request a logger carrying the request context
// so per-request fields and cancellation propagate into log entries.
func LoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.SetLogger(&EchoLogrusLogger{
			Logger: logrus.StandardLogger(),
			Ctx:    c.Request().Context(),
		})
		return next(c)
	}
}
