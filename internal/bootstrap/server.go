package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gottomy2/departures/api"
	"github.com/gottomy2/departures/config"
	"github.com/gottomy2/departures/internal/observability"
	"github.com/gottomy2/departures/internal/service/auth"
	"github.com/gottomy2/departures/internal/service/flights"
	"github.com/gottomy2/departures/internal/service/gates"
	"go.uber.org/zap"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, flightSvc flights.FlightUseCase, gateSvc gates.GateUseCase, authSvc auth.AuthUseCase) error {
	router := NewRouter(flightSvc, gateSvc, authSvc)

	httpServer := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	logger.Info("http server started", zap.String("address", cfg.HTTP.Address))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(flightSvc flights.FlightUseCase, gateSvc gates.GateUseCase, authSvc auth.AuthUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), api.Metrics())

	authorized := api.RequireAuth(authSvc)

	apiGroup := router.Group("/api")
	api.NewFlightHandler(flightSvc).Register(apiGroup.Group("/flights"), authorized)
	api.NewGateHandler(gateSvc).Register(apiGroup.Group("/gates"), authorized)
	api.NewAuthHandler(authSvc).Register(apiGroup.Group("/auth"))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(observability.MetricsHandler()))

	return router
}
