package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/viant/afs"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/tracegroups/internal/api/http"
	"github.com/GriffinCanCode/tracegroups/internal/api/middleware"
	"github.com/GriffinCanCode/tracegroups/internal/domain/trace"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/config"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/logging"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/tracegroups/internal/infrastructure/tracing"
)

const (
	serviceName = "tracegroups"
	breakerName = "trace-storage"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
	tracer     *tracing.Tracer
	breaker    *resilience.Breaker
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing trace server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("trace", cfg.Trace.Path),
		zap.String("static_dir", cfg.Static.Dir),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	tracer := tracing.New(serviceName, logger.Logger)

	breaker := newStorageBreaker(cfg.Breaker, metrics, logger)
	loader := trace.NewLoader(afs.New(), trace.WithMaxSize(cfg.Trace.MaxBytes))

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	if global := cfg.RateLimit.GlobalRequestsPerSecond; global > 0 {
		burst := cfg.RateLimit.GlobalBurst
		if burst <= 0 {
			burst = global
		}
		logger.Info("Global rate limiting enabled",
			zap.Int("rps", global),
			zap.Int("burst", burst),
		)
		router.Use(middleware.GlobalRateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: global,
			Burst:             burst,
		}))
	}

	handlers := api.NewHandlers(loader, cfg.Trace.Path, cfg.Trace.MaxBytes, breaker, metrics, tracer, logger)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	router.GET("/api/tasks", handlers.ListTaskGroups)
	router.POST("/api/tasks/parse", handlers.ParseTrace)
	router.POST("/api/logs", handlers.StreamLogs)

	// Metrics endpoints
	router.GET("/metrics", gin.WrapH(monitoring.Handler(metrics)))
	router.GET("/metrics/json", handlers.GetMetricsJSON)

	// Frontend assets
	router.NoRoute(staticHandler(cfg.Static.Dir))

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		tracer:  tracer,
		breaker: breaker,
	}, nil
}

// newStorageBreaker guards trace reads. Only storage failures count against
// it, so bad trace content never opens the circuit.
func newStorageBreaker(cfg config.BreakerConfig, metrics *monitoring.Metrics, logger *logging.Logger) *resilience.Breaker {
	failures := cfg.Failures
	if failures == 0 {
		failures = 1
	}

	metrics.SetBreakerState(breakerName, int(resilience.StateClosed))

	return resilience.New(breakerName, resilience.Settings{
		MaxRequests: cfg.HalfOpenMax,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to resilience.State) {
			metrics.SetBreakerState(name, int(to))
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !trace.IsStorageFailure(err)
		},
	})
}

// staticHandler serves the frontend for unmatched GET and HEAD requests
func staticHandler(dir string) gin.HandlerFunc {
	var files http.Handler
	if dir != "" {
		files = http.FileServer(gin.Dir(dir, false))
	}

	return func(c *gin.Context) {
		method := c.Request.Method
		if files == nil || (method != http.MethodGet && method != http.MethodHead) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "route not found", Code: "not_found"})
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server, then flushes spans and logs
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		err = fmt.Errorf("failed to shut down http server: %w", err)
	}

	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()

	return err
}
