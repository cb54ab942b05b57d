package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/beautysalon/salon-api/config"
	authhandler "github.com/beautysalon/salon-api/internal/handler/auth"
	bookinghandler "github.com/beautysalon/salon-api/internal/handler/booking"
	cataloghandler "github.com/beautysalon/salon-api/internal/handler/catalog"
	dashboardhandler "github.com/beautysalon/salon-api/internal/handler/dashboard"
	profilehandler "github.com/beautysalon/salon-api/internal/handler/profile"
	stylisthandler "github.com/beautysalon/salon-api/internal/handler/stylist"
	"github.com/beautysalon/salon-api/internal/repository/postgres"
	"github.com/beautysalon/salon-api/internal/router"
	authsvc "github.com/beautysalon/salon-api/internal/service/auth"
	bookingsvc "github.com/beautysalon/salon-api/internal/service/booking"
	catalogsvc "github.com/beautysalon/salon-api/internal/service/catalog"
	customersvc "github.com/beautysalon/salon-api/internal/service/customer"
	dashboardsvc "github.com/beautysalon/salon-api/internal/service/dashboard"
	stylistsvc "github.com/beautysalon/salon-api/internal/service/stylist"
	pkgauth "github.com/beautysalon/salon-api/pkg/auth"
	"github.com/beautysalon/salon-api/pkg/logger"
	"github.com/beautysalon/salon-api/pkg/messaging"
	messagingredis "github.com/beautysalon/salon-api/pkg/messaging/redis"
	"github.com/beautysalon/salon-api/pkg/metrics"
	"github.com/beautysalon/salon-api/pkg/security"
)

func main() {
	configPath := flag.String("config", "config/config.yml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := logger.NewLogger(&logger.Config{
		Level:  level,
		Pretty: cfg.Logging.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	appMetrics := metrics.NewMetrics("salon")
	store := postgres.NewStore(db, appMetrics)

	// The API degrades to no notifications when the broker is down.
	var broker messaging.Broker
	broker, err = messagingredis.NewRedisBroker(messagingredis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, log.Zerolog())
	if err != nil {
		log.Error(err, "message broker unavailable, booking notifications disabled")
		broker = nil
	} else {
		defer broker.Close()
	}

	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{
		Secret:      cfg.JWT.Secret,
		ExpiryHours: cfg.JWT.ExpiryHours,
	})
	hasher := security.NewBcryptHasher(12)

	bookingService := bookingsvc.NewService(store, broker, appMetrics, log)
	authService := authsvc.NewService(store, hasher, jwtService, log)
	customerService := customersvc.NewService(store, log)
	catalogService := catalogsvc.NewService(store, log)
	stylistService := stylistsvc.NewService(store)
	dashboardService := dashboardsvc.NewService(store)

	engine := router.New(cfg, log, db, jwtService, router.Handlers{
		Auth:      authhandler.NewHandler(authService),
		Booking:   bookinghandler.NewHandler(bookingService),
		Catalog:   cataloghandler.NewHandler(catalogService),
		Profile:   profilehandler.NewHandler(customerService),
		Stylist:   stylisthandler.NewHandler(stylistService),
		Dashboard: dashboardhandler.NewHandler(dashboardService),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}
}
