// README: Handler utilities (error responses, status mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"waywise/internal/modules/fuelprice"
	"waywise/internal/modules/trip"
	"waywise/internal/modules/vehicle"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func writeTripError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrIncompleteInput):
		writeError(c, http.StatusUnprocessableEntity, trip.ErrIncompleteInput.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeVehicleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, vehicle.ErrNotFound):
		writeError(c, http.StatusNotFound, vehicle.ErrNotFound.Error())
	case errors.Is(err, vehicle.ErrUnavailable):
		writeError(c, http.StatusServiceUnavailable, vehicle.ErrUnavailable.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeFuelPriceError(c *gin.Context, err error) {
	if errors.Is(err, fuelprice.ErrUnavailable) {
		writeError(c, http.StatusServiceUnavailable, fuelprice.ErrUnavailable.Error())
		return
	}
	writeError(c, http.StatusInternalServerError, "internal error")
}
