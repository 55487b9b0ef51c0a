package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Request ID middleware
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			s.logger.LogHTTPRequest(
				values.Method,
				values.URI,
				values.RequestID,
				values.RemoteIP,
				values.Status,
				float64(values.Latency.Nanoseconds())/1000000,
				values.Error,
			)
			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: s.allowOrigin,
		AllowHeaders:    []string{echo.HeaderContentType},
		AllowMethods:    []string{http.MethodGet, http.MethodPatch, http.MethodOptions},
	}))

	// Rate limiting middleware
	if limit := s.rateLimit(); limit > 0 {
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{
					Rate:      limit,
					Burst:     s.config.Security.RateLimitRequests,
					ExpiresIn: s.config.Security.RateLimitWindow,
				},
			),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			ErrorHandler: func(context echo.Context, err error) error {
				return context.JSON(http.StatusForbidden, map[string]string{"error": "rate limit exceeded"})
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				return context.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			},
		}))
	}

	// Security headers
	secure := middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}
	if s.config.App.IsProduction() {
		secure.HSTSMaxAge = 31536000
	}
	s.echo.Use(middleware.SecureWithConfig(secure))

	// Body limit middleware
	if s.config.Server.BodyLimit != "" {
		s.echo.Use(middleware.BodyLimit(s.config.Server.BodyLimit))
	}

	// Timeout middleware
	if s.config.Server.RequestTimeout > 0 {
		s.echo.Use(middleware.ContextTimeout(s.config.Server.RequestTimeout))
	}
}

// rateLimit spreads RateLimitRequests evenly over RateLimitWindow. Zero
// requests disables limiting.
func (s *Server) rateLimit() rate.Limit {
	sec := s.config.Security
	if sec.RateLimitRequests <= 0 || sec.RateLimitWindow <= 0 {
		return 0
	}
	return rate.Limit(float64(sec.RateLimitRequests) / sec.RateLimitWindow.Seconds())
}

// allowOrigin accepts every origin unless CORS is restricted, in which case
// only the configured origins and the frontend URL are accepted.
func (s *Server) allowOrigin(origin string) (bool, error) {
	if !s.config.Security.CORSStrict {
		return true, nil
	}
	for _, allowed := range s.config.Security.AllowedOrigins() {
		if origin == allowed {
			return true, nil
		}
	}
	return false, nil
}
