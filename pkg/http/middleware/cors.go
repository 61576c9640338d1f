package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds CORS configuration. A single "*" entry in AllowMethods or
// AllowHeaders allows anything, echoing what the browser asked for.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
}

// CORS returns CORS middleware.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			h := c.Response().Header()
			origin := req.Header.Get(echo.HeaderOrigin)
			h.Add(echo.HeaderVary, echo.HeaderOrigin)

			if origin == "" || !originAllowed(cfg.AllowOrigins, origin) {
				return next(c)
			}

			if cfg.AllowCredentials || !contains(cfg.AllowOrigins, "*") {
				h.Set(echo.HeaderAccessControlAllowOrigin, origin)
			} else {
				h.Set(echo.HeaderAccessControlAllowOrigin, "*")
			}
			if cfg.AllowCredentials {
				h.Set(echo.HeaderAccessControlAllowCredentials, "true")
			}

			if req.Method != http.MethodOptions {
				return next(c)
			}

			// Preflight
			if methods := allowList(cfg.AllowMethods, req.Header.Get(echo.HeaderAccessControlRequestMethod)); methods != "" {
				h.Set(echo.HeaderAccessControlAllowMethods, methods)
			}
			if headers := allowList(cfg.AllowHeaders, req.Header.Get(echo.HeaderAccessControlRequestHeaders)); headers != "" {
				h.Set(echo.HeaderAccessControlAllowHeaders, headers)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, o := range allowed {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func allowList(allowed []string, requested string) string {
	if contains(allowed, "*") {
		return requested
	}
	return strings.Join(allowed, ", ")
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
