package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/questlog/quest-service/config"
	"github.com/questlog/quest-service/ctxutil"
	"github.com/questlog/quest-service/handler"
	"github.com/questlog/quest-service/logging/logger"
	"github.com/questlog/quest-service/resp"
)

// App represents the quest service application.
type App struct {
	config  *config.Config
	logger  *logger.Logger
	handler *handler.Handler
	server  *http.Server
}

// NewApp creates a new application instance.
func NewApp(
	cfg *config.Config,
	logger *logger.Logger,
	h *handler.Handler,
) *App {
	if cfg.RunMode != "" {
		gin.SetMode(cfg.RunMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	return &App{
		config:  cfg,
		logger:  logger,
		handler: h,
	}
}

// Run starts the HTTP server and blocks until an interrupt signal
// triggers a graceful shutdown.
func (a *App) Run() error {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(a.traceMiddleware())
	router.Use(a.loggerMiddleware())

	a.handler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		resp.Success(c.Writer, map[string]string{"status": "healthy"})
	})

	addr := a.config.Addr()
	a.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		a.logger.Info(context.Background(), "Starting server", "addr", addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(context.Background(), "Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info(context.Background(), "Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error(context.Background(), "Server forced to shutdown", "error", err)
		return err
	}

	a.logger.Info(context.Background(), "Server exited")
	return nil
}

// traceMiddleware assigns each request a trace id so log lines from
// one request can be correlated.
func (a *App) traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _ := ctxutil.EnsureTraceID(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// loggerMiddleware creates a Gin middleware for request logging.
func (a *App) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		a.logger.Info(c.Request.Context(), "HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"duration", duration.String(),
			"ip", c.ClientIP(),
		)
	}
}
