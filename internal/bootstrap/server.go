package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/altavia/voyager/api"
	"github.com/altavia/voyager/config"
)

// Handlers groups the HTTP surface wired by cmd/app.
type Handlers struct {
	Flights     *api.FlightHandler
	Itineraries *api.ItineraryHandler
	Bookings    *api.BookingHandler
	Admin       *api.AdminHandler
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, handlers Handlers) error {
	router := gin.New()
	router.Use(gin.Recovery())

	handlers.Flights.Register(router.Group("/flights"))
	handlers.Itineraries.Register(router.Group("/itineraries"))
	handlers.Bookings.Register(router.Group("/bookings"))
	handlers.Admin.Register(router.Group("/admin"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

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
