// File: regal/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"regal/config"
	"regal/handlers"
	"regal/middleware"
	"regal/routes"
	"regal/services/booking"
	"regal/services/menu"
	availabilityStore "regal/store/availability"
	ledgerStore "regal/store/ledger"
	"regal/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()
	utils.StartHealthMonitor([]*redis.Client{utils.CacheClient, utils.SessionCacheClient})

	loc, err := time.LoadLocation(config.AppConfig.BusinessTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid business timezone %q: %v", config.AppConfig.BusinessTimezone, err)
	}
	nowLocal := func() time.Time { return time.Now().In(loc) }

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Remote stores.
	calendarStore := availabilityStore.NewGoogleCalendarStore()
	sheetLedger := ledgerStore.NewGoogleSheetsLedger()

	// Services.
	availabilityService := &booking.DefaultAvailabilityService{
		Store:    calendarStore,
		Cache:    utils.GetCacheClient(),
		CacheTTL: utils.AvailabilityCacheTTL,
		Now:      nowLocal,
	}
	reservationService := &booking.DefaultReservationService{
		Ledger:       sheetLedger,
		Calendar:     calendarStore,
		BusinessName: config.AppConfig.BusinessName,
		Location:     loc,
		Now:          nowLocal,
	}
	formSessionService := &booking.DefaultFormSessionService{
		Availability: availabilityService,
		Reservations: reservationService,
		Cache:        utils.GetSessionCacheClient(),
		TTL:          utils.FormSessionTTL,
		Now:          nowLocal,
	}
	menuService := &menu.DefaultMenuService{
		Ledger:   sheetLedger,
		Cache:    utils.GetCacheClient(),
		CacheTTL: utils.MenuCacheTTL,
	}

	// Handlers.
	bookingHandler := handlers.NewBookingHandler(availabilityService, reservationService, logger)
	sessionHandler := handlers.NewFormSessionHandler(formSessionService, logger)
	sessionHandler.Now = nowLocal
	menuHandler := handlers.NewMenuHandler(menuService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GetBookedDates: bookingHandler.GetBookedDates,
		SubmitBooking:  bookingHandler.SubmitBooking,

		CreateFormSession: sessionHandler.CreateSession,
		GetFormSession:    sessionHandler.GetSession,
		ApplyFormEvent:    sessionHandler.ApplyEvent,
		SubmitFormSession: sessionHandler.SubmitSession,

		GetMenu: menuHandler.GetMenu,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
