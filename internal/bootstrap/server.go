package bootstrap

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/slauto/shopbooking/api"
	"github.com/slauto/shopbooking/config"
	"github.com/slauto/shopbooking/internal/service/bookings"
)

// Run starts the HTTP server and blocks until ctx is canceled or the server
// fails.
func Run(ctx context.Context, cfg *config.Config, bookingSvc bookings.BookingUseCase) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, bookingSvc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	log.Printf("booking API listening on %s, storage file %s", cfg.HTTP.Address, cfg.Store.Path)

	select {
	case err := <-errCh:
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

// NewRouter assembles the gin engine: recovery, request ids, logging, CORS
// and the body cap ahead of the three booking routes, plus swagger docs when
// a swagger dir is configured.
func NewRouter(cfg *config.Config, bookingSvc bookings.BookingUseCase) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		api.RequestID(),
		api.RequestLogger(),
		api.CORS(cfg.CORS.AllowedOrigin),
		api.BodyLimit(api.MaxBodyBytes),
	)

	api.NewBookingHandler(bookingSvc).Register(router)
	router.NoRoute(api.NotFound)

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/bookings.swagger.json"),
		)))
	}

	return router
}
