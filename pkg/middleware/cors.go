package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig describes the headers written on every response
type CORSConfig struct {
	AllowOrigin      string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
}

// DefaultCORSConfig allows every origin, matching the public browser client
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigin: "*",
		AllowMethods: []string{
			http.MethodGet,
			http.MethodOptions,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodPost,
			http.MethodPut,
		},
		AllowHeaders: []string{
			"X-CSRF-Token",
			"X-Requested-With",
			"Accept",
			"Accept-Version",
			"Content-Length",
			"Content-MD5",
			"Content-Type",
			"Date",
			"X-Api-Version",
		},
		AllowCredentials: true,
	}
}

// CORS writes the allow headers on every response and answers any OPTIONS
// request with 200 and an empty body before routing.
func CORS(config CORSConfig) echo.MiddlewareFunc {
	defaults := DefaultCORSConfig()
	if config.AllowOrigin == "" {
		config.AllowOrigin = defaults.AllowOrigin
	}
	if len(config.AllowMethods) == 0 {
		config.AllowMethods = defaults.AllowMethods
	}
	if len(config.AllowHeaders) == 0 {
		config.AllowHeaders = defaults.AllowHeaders
	}

	methods := strings.Join(config.AllowMethods, ",")
	headers := strings.Join(config.AllowHeaders, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			if config.AllowCredentials {
				h.Set(echo.HeaderAccessControlAllowCredentials, "true")
			}
			h.Set(echo.HeaderAccessControlAllowOrigin, config.AllowOrigin)
			h.Set(echo.HeaderAccessControlAllowMethods, methods)
			h.Set(echo.HeaderAccessControlAllowHeaders, headers)

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}
