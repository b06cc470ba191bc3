// README: Trip estimate handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"waywise/internal/modules/route"
	"waywise/internal/modules/trip"
	"waywise/internal/modules/vehicle"
	"waywise/internal/types"
)

type TripHandler struct {
	trips             *trip.Service
	defaultParkingFee float64
}

func NewTripHandler(trips *trip.Service, defaultParkingFee float64) *TripHandler {
	return &TripHandler{trips: trips, defaultParkingFee: defaultParkingFee}
}

type estimateTripReq struct {
	Vehicle struct {
		Year  int    `json:"year"`
		Make  string `json:"make"`
		Model string `json:"model"`
	} `json:"vehicle"`
	Route struct {
		OriginPlaceID      string      `json:"origin_place_id"`
		Origin             types.Point `json:"origin"`
		DestinationPlaceID string      `json:"destination_place_id"`
		Destination        types.Point `json:"destination"`
	} `json:"route"`
	// ParkingFee is optional; absent means the configured default applies.
	ParkingFee *float64 `json:"parking_fee"`
}

// Estimate handles POST /api/trips/estimate.
func (h *TripHandler) Estimate(c *gin.Context) {
	var req estimateTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	parking := h.defaultParkingFee
	if req.ParkingFee != nil {
		parking = *req.ParkingFee
	}

	cmp, err := h.trips.Estimate(c.Request.Context(), trip.Request{
		Vehicle: vehicle.Vehicle{
			Year:  req.Vehicle.Year,
			Make:  req.Vehicle.Make,
			Model: req.Vehicle.Model,
		},
		Route: route.RoutePoints{
			OriginPlaceID:      req.Route.OriginPlaceID,
			Origin:             req.Route.Origin,
			DestinationPlaceID: req.Route.DestinationPlaceID,
			Destination:        req.Route.Destination,
		},
		ParkingFee: parking,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}
