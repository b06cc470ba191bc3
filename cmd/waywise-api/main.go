// README: Entry point; loads config, wires resolvers, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"waywise/internal/config"
	"waywise/internal/fetch"
	httptransport "waywise/internal/http"
	"waywise/internal/infra"
	"waywise/internal/modules/fuelprice"
	"waywise/internal/modules/rideshare"
	"waywise/internal/modules/route"
	"waywise/internal/modules/trip"
	"waywise/internal/modules/vehicle"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.Named("waywise-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetchClient := fetch.New(cfg.Fetch.Timeout)

	mapsClient, err := maps.NewClient(
		maps.WithAPIKey(cfg.Maps.APIKey),
		maps.WithHTTPClient(&http.Client{Timeout: cfg.Fetch.Timeout}),
	)
	if err != nil {
		logger.Fatal("maps client init", zap.Error(err))
	}

	var vehicleStore *vehicle.Store
	if cfg.Redis.Addr != "" {
		vehicleStore = vehicle.NewStore(infra.NewRedis(cfg.Redis.Addr))
	}
	vehicleSvc := vehicle.NewService(fetchClient, cfg.Vehicle.CatalogBaseURL, vehicleStore)

	priceSvc := fuelprice.NewService(fetchClient, cfg.FuelPrice.BaseURL, cfg.FuelPrice.APIKey, cfg.FuelPrice.TTL)
	routeSvc := route.NewService(mapsClient)

	rates := rideshare.RateCard{
		BaseFare:   cfg.Rideshare.Rates.BaseFare,
		PerMile:    cfg.Rideshare.Rates.PerMile,
		BookingFee: cfg.Rideshare.Rates.BookingFee,
	}
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("db init", zap.Error(err))
		}
		defer dbPool.Close()
		if rc, err := rideshare.NewStore(dbPool).GetRateCard(ctx, cfg.Rideshare.Product); err == nil {
			rates = rc
		} else {
			logger.Warn("rate card load failed, keeping configured defaults", zap.Error(err))
		}
	}
	rideSvc := rideshare.NewService(fetchClient, cfg.Rideshare.PriceURL, cfg.Rideshare.Token, rates, logger)

	tripSvc := trip.NewService(vehicleSvc, priceSvc, routeSvc, rideSvc, cfg.Trip.FallbackGasPrice, logger)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Trips:             tripSvc,
		Vehicles:          vehicleSvc,
		FuelPrices:        priceSvc,
		DefaultParkingFee: cfg.Trip.DefaultParkingFee,
		Log:               logger,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("forced shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server", zap.Error(err))
	}
	logger.Info("stopped")
}
