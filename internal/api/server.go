// Package api exposes the projection engine over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rgehrsitz/sipcalc/internal/api/handlers"
	"github.com/rgehrsitz/sipcalc/internal/api/middleware"
	"github.com/rgehrsitz/sipcalc/internal/calculation"
)

// DefaultAddr is the listen address used when none is configured
const DefaultAddr = ":8080"

// Options configures the HTTP server
type Options struct {
	Addr           string
	AllowedOrigins []string
	Logger         calculation.Logger
	// AccessLog receives gin's request log; nil means stdout, io.Discard silences it.
	AccessLog io.Writer
	Debug     bool
}

// NewHandler builds the router with every route and middleware attached
func NewHandler(opts Options) http.Handler {
	if opts.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if opts.AccessLog == nil {
		opts.AccessLog = os.Stdout
	}

	engine := calculation.NewProjectionEngine()
	engine.SetLogger(opts.Logger)

	router := gin.New()
	router.Use(middleware.Logger(opts.AccessLog))
	router.Use(middleware.ErrorHandler())

	projectionHandler := handlers.NewProjectionHandler(engine, opts.Logger)
	compareHandler := handlers.NewCompareHandler(engine, opts.Logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/projections", projectionHandler.RunProjection)
		api.POST("/compare", compareHandler.Compare)
		api.GET("/templates", compareHandler.ListTemplates)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})

	return middleware.CORS(router, opts.AllowedOrigins)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down gracefully
func ListenAndServe(ctx context.Context, opts Options) error {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           NewHandler(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if opts.Logger != nil {
			opts.Logger.Infof("starting API server on %s", opts.Addr)
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	}
}
