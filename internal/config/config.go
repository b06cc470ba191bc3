// README: Config loader with env defaults for HTTP, external APIs, caches, and fallback pricing.
package config

import (
	"os"
	"strconv"
	"time"
)

type RateCardConfig struct {
	BaseFare   float64
	PerMile    float64
	BookingFee float64
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN is optional; when empty the rideshare rate card comes from env defaults.
		DSN string
	}
	Redis struct {
		// Addr is optional; when empty the vehicle efficiency cache is in-process only.
		Addr string
	}
	Fetch struct {
		Timeout time.Duration
	}
	Maps struct {
		APIKey string
	}
	Vehicle struct {
		CatalogBaseURL string
	}
	FuelPrice struct {
		BaseURL string
		APIKey  string
		TTL     time.Duration
	}
	Rideshare struct {
		PriceURL string
		Token    string
		Product  string
		Rates    RateCardConfig
	}
	Trip struct {
		FallbackGasPrice  float64
		DefaultParkingFee float64
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("WAYWISE_HTTP_ADDR", ":8080")
	cfg.DB.DSN = envOrDefault("WAYWISE_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("WAYWISE_REDIS_ADDR", "")
	cfg.Fetch.Timeout = time.Duration(envOrDefaultInt("WAYWISE_FETCH_TIMEOUT_SECONDS", 10)) * time.Second
	cfg.Maps.APIKey = envOrError("WAYWISE_MAPS_API_KEY")
	cfg.Vehicle.CatalogBaseURL = envOrDefault("WAYWISE_VEHICLE_CATALOG_URL", "https://www.fueleconomy.gov/feg/ws/rest")
	cfg.FuelPrice.BaseURL = envOrDefault("WAYWISE_FUEL_PRICE_URL", "https://api.eia.gov/v2/petroleum/pri/gnd/data/")
	cfg.FuelPrice.APIKey = envOrDefault("WAYWISE_FUEL_PRICE_API_KEY", "")
	cfg.FuelPrice.TTL = time.Duration(envOrDefaultInt("WAYWISE_FUEL_PRICE_TTL_MINUTES", 360)) * time.Minute
	cfg.Rideshare.PriceURL = envOrDefault("WAYWISE_RIDESHARE_PRICE_URL", "")
	cfg.Rideshare.Token = envOrDefault("WAYWISE_RIDESHARE_TOKEN", "")
	cfg.Rideshare.Product = envOrDefault("WAYWISE_RIDESHARE_PRODUCT", "standard")
	cfg.Rideshare.Rates.BaseFare = envOrDefaultFloat("WAYWISE_RIDESHARE_BASE_FARE", 2.50)
	cfg.Rideshare.Rates.PerMile = envOrDefaultFloat("WAYWISE_RIDESHARE_PER_MILE", 1.35)
	cfg.Rideshare.Rates.BookingFee = envOrDefaultFloat("WAYWISE_RIDESHARE_BOOKING_FEE", 3.00)
	cfg.Trip.FallbackGasPrice = envOrDefaultFloat("WAYWISE_FALLBACK_GAS_PRICE", 4.85)
	cfg.Trip.DefaultParkingFee = envOrDefaultFloat("WAYWISE_DEFAULT_PARKING_FEE", 15.00)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
