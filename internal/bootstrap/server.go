package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/busbooking/api"
	"github.com/Domenick1991/busbooking/config"
	"github.com/Domenick1991/busbooking/internal/auth"
	"github.com/Domenick1991/busbooking/internal/repository"
	"github.com/Domenick1991/busbooking/internal/service/booking"
	"github.com/Domenick1991/busbooking/internal/service/trips"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Deps struct {
	Trips    trips.TripUseCase
	Manager  *booking.Manager
	Bookings repository.BookingRepository
	Auth     *auth.Provider
	Log      *zap.Logger
}

// Run starts the HTTP server and a stale-session janitor, and blocks until
// the context is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, deps),
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go runJanitor(janitorCtx, deps.Manager, deps.Log)

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	v1 := router.Group("/api")
	api.NewTripHandler(deps.Trips).Register(v1.Group("/trips"))
	api.NewSessionHandler(deps.Manager, deps.Auth).Register(v1.Group("/sessions"))
	api.NewBookingHandler(deps.Bookings).Register(v1.Group("/bookings"))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/booking.swagger.json"),
		)))
	}

	return router
}

// runJanitor sweeps abandoned sessions on an interval so memory does not grow
// with every traveler who navigates away.
func runJanitor(ctx context.Context, manager *booking.Manager, log *zap.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if expired := manager.ExpireStale(); expired > 0 {
				log.Info("expired stale booking sessions", zap.Int("count", expired))
			}
		case <-ctx.Done():
			return
		}
	}
}
