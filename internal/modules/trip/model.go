// README: Trip request and cost comparison artifacts.
package trip

import (
	"waywise/internal/modules/rideshare"
	"waywise/internal/modules/route"
	"waywise/internal/modules/vehicle"
)

// Request is one trip cost computation: the car, the route, and the expected
// parking fee at the destination.
type Request struct {
	Vehicle    vehicle.Vehicle
	Route      route.RoutePoints
	ParkingFee float64
}

// FuelPriceSource values for Comparison.
const (
	FuelPriceLive     = "live"
	FuelPriceFallback = "fallback"
)

// Comparison is the terminal artifact returned to the caller. DriveCost is
// nil when the vehicle's efficiency could not be resolved; it is never
// reported as zero. Dollar fields are rounded to two decimals, and fallback
// provenance is carried so the UI can distinguish approximated numbers.
type Comparison struct {
	DriveCost       *float64         `json:"drive_cost"`
	RideshareCost   float64          `json:"rideshare_cost"`
	DistanceMiles   float64          `json:"distance_miles"`
	FuelPrice       float64          `json:"fuel_price"`
	FuelPriceSource string           `json:"fuel_price_source"`
	RideshareSource rideshare.Source `json:"rideshare_source"`
}
