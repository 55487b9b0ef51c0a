package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/taskmaster/planner/docs"
	httpHandlers "github.com/taskmaster/planner/internal/adapters/http"
	"github.com/taskmaster/planner/internal/adapters/repository"
	"github.com/taskmaster/planner/internal/application/services"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/config"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/infrastructure/metrics"
	"github.com/taskmaster/planner/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	repo    ports.DocumentRepository
	metrics *metrics.Metrics
}

// New creates a new server instance. The planner document is loaded from
// the configured data file before the server is returned.
func New(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = NewValidator()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
	}

	var recorder ports.MutationRecorder = metrics.Noop{}
	if cfg.Metrics.Enabled {
		server.metrics = metrics.New()
		recorder = server.metrics
	}

	// Initialize repository and store
	server.repo = repository.NewDocumentRepository(cfg.Storage.DataFile)

	plannerService, err := services.NewPlannerService(ctx, server.repo, recorder, appLogger.WithComponent("planner"))
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	plannerHandler := httpHandlers.NewPlannerHandler(plannerService)

	// Setup middleware
	server.setupMiddleware()

	// Setup metrics
	if server.metrics != nil {
		server.setupMetrics()
	}

	// Setup routes
	server.setupRoutes(plannerHandler)

	return server, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(plannerHandler *httpHandlers.PlannerHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	api := s.echo.Group("/api")
	api.GET("/data", plannerHandler.GetData)
	api.PATCH("/goals/:index", plannerHandler.UpdateGoalText)
	api.PATCH("/goals/:index/check", plannerHandler.UpdateGoalCheck)
	api.PATCH("/monthly/:monthId/:itemIndex", plannerHandler.UpdateMonthlyCheck)
	api.PATCH("/daily/:monthId/:day", plannerHandler.UpdateDailyCheck)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	s.echo.Use(s.metrics.Middleware())
	s.echo.GET("/metrics", s.metrics.Handler())
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.repo.HealthCheck(c.Request().Context()); err != nil {
		s.logger.Warnw("Readiness check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"storage": s.repo.Location(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// ServeHTTP lets the server be driven directly, e.g. by httptest
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         s.config.Server.GetAddr(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.Infof("Personal Planner API listening on http://localhost:%d", s.config.Server.Port)

	if err := s.echo.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			code = http.StatusInternalServerError
			msg  = "Server error"
		)

		var (
			validationErr *entities.ValidationError
			fieldErrs     validator.ValidationErrors
			httpErr       *echo.HTTPError
		)

		switch {
		case errors.As(err, &validationErr):
			code = http.StatusBadRequest
			msg = validationErr.Message
		case errors.As(err, &fieldErrs):
			code = http.StatusBadRequest
			msg = fieldErrs.Error()
		case errors.As(err, &httpErr):
			code = httpErr.Code
			msg = fmt.Sprint(httpErr.Message)
			if code == http.StatusNotFound || code == http.StatusMethodNotAllowed {
				code = http.StatusNotFound
				msg = "Route not found"
			}
			if httpErr.Internal != nil {
				err = fmt.Errorf("%v, %v", err, httpErr.Internal)
			}
		default:
			if err.Error() != "" {
				msg = err.Error()
			}
		}

		reqLogger := logger.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID))
		if code >= http.StatusInternalServerError {
			reqLogger.WithError(err).Errorw("Internal server error", "path", c.Request().URL.Path)
		}

		// Send response
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, httpHandlers.ErrorResponse{Error: msg})
		}
		if err != nil {
			reqLogger.WithError(err).Errorw("Error sending response")
		}
	}
}
