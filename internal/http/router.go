// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"waywise/internal/http/handlers"
	"waywise/internal/http/middleware"
	"waywise/internal/modules/fuelprice"
	"waywise/internal/modules/trip"
	"waywise/internal/modules/vehicle"
)

type RouterDeps struct {
	Trips             *trip.Service
	Vehicles          *vehicle.Service
	FuelPrices        *fuelprice.Service
	DefaultParkingFee float64
	Log               *zap.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		middleware.Recovery(deps.Log),
		middleware.RequestID(),
		middleware.Logging(deps.Log),
	)

	tripHandler := handlers.NewTripHandler(deps.Trips, deps.DefaultParkingFee)
	vehicleHandler := handlers.NewVehicleHandler(deps.Vehicles)
	fuelPriceHandler := handlers.NewFuelPriceHandler(deps.FuelPrices)

	api := r.Group("/api")
	api.POST("/trips/estimate", tripHandler.Estimate)
	api.GET("/vehicles/efficiency", vehicleHandler.Efficiency)
	api.GET("/fuel/price", fuelPriceHandler.Current)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
