package main

// @title Name Report API
// @version 1.0
// @description Baby-name reports generated by a hosted language model, gated by card keys.

// @host localhost:8080
// @BasePath /

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/jordanlanch/namereport/config"
	_ "github.com/jordanlanch/namereport/docs" // Swagger docs (generated)
	"github.com/jordanlanch/namereport/pkg/api/handlers"
	"github.com/jordanlanch/namereport/pkg/app"
	"github.com/jordanlanch/namereport/pkg/logger"
	custommiddleware "github.com/jordanlanch/namereport/pkg/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Flush(log)

	log.Info("configuration loaded", "environment", cfg.APIEnvironment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.LoadSecrets(ctx, cfg, log); err != nil {
		log.Error("failed to load secrets", "backend", cfg.SecretsBackend, "error", err)
		os.Exit(1)
	}

	// Initialize Sentry for error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 0.2,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Warn("failed to initialize Sentry", "error", err)
		} else {
			log.Info("Sentry initialized", "environment", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	}

	a, err := app.New(ctx, cfg, log, prometheus.DefaultRegisterer)
	if err != nil {
		log.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Any OPTIONS request is answered here, before routing
	e.Pre(custommiddleware.CORS(custommiddleware.DefaultCORSConfig()))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Sentry error tracking middleware (if configured)
	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	e.Use(a.Metrics.Middleware())
	e.Use(middleware.Gzip())
	e.Use(middleware.Secure())
	e.Use(custommiddleware.SecurityHeaders(custommiddleware.SecurityHeadersConfig{
		Skipper: func(c echo.Context) bool { return strings.HasPrefix(c.Path(), "/swagger") },
	}))
	e.Use(middleware.BodyLimit("64K"))

	rateLimiter := custommiddleware.NewRateLimiter(ctx, cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)

	// Initialize handlers
	var pinger handlers.Pinger
	if a.Store != nil {
		pinger = a.Store
	}
	healthHandler := handlers.NewHealthHandler(pinger, a.Policy.Name(), a.Provider())
	nameHandler := handlers.NewNameHandler(a.Naming, log)
	reportHandler := handlers.NewReportHandler(a.Metrics, log)
	cardHandler := handlers.NewCardHandler(a.Naming, log)

	// Public endpoints
	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Legacy chat path used by the web form; non-POST methods get 405 from the handler
	e.Any("/api/chat", nameHandler.Chat, rateLimiter.RateLimitMiddleware())

	v1 := e.Group("/api/v1")
	v1.GET("/styles", handlers.ListStyles)
	v1.POST("/reports", reportHandler.Render)

	gated := v1.Group("", rateLimiter.RateLimitMiddleware())
	gated.POST("/chat", nameHandler.Chat)
	gated.POST("/names", nameHandler.Generate)
	gated.GET("/cards/:code", cardHandler.Status)

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	go func() {
		log.Info("starting server", "address", address, "policy", a.Policy.Name(), "provider", a.Provider())
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", "error", err)
			stop()
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	log.Info("shutting down server")

	// The generation timeout bounds in-flight requests
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.LLMTimeout+5*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return
	}

	log.Info("server gracefully stopped")
}
