// Package http runs the public HTTP endpoint of the account service.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dsemenov/accountd/internal/logging"
	"github.com/dsemenov/accountd/internal/metrics"
	"github.com/dsemenov/accountd/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	logger  logging.Logger
	router  *gin.Engine
}

// NewServer wires the routes: public registration and health/metrics, and
// the token-protected profile and update operations.
func NewServer(address string, logger logging.Logger, users *services.UserService, m *metrics.Metrics, jwtSecret []byte) *Server {

	handler := NewHandler(users, logger)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	router.POST("/api/users", handler.Register)

	protected := router.Group("/api")
	protected.Use(RequireAuth(jwtSecret))
	protected.GET("/users", handler.Me)
	protected.PUT("/users", handler.Update)

	return &Server{
		address: address,
		logger:  logger.With("module", "http_server"),
		router:  router,
	}
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "err", err.Error())
		}
	}()

	s.logger.Info(ctx, "starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
