// README: Vehicle efficiency lookup handler.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"waywise/internal/modules/vehicle"
)

type VehicleHandler struct {
	vehicles *vehicle.Service
}

func NewVehicleHandler(vehicles *vehicle.Service) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// Efficiency handles GET /api/vehicles/efficiency. The comparison screen
// calls it as the user finishes typing the car fields.
func (h *VehicleHandler) Efficiency(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "year must be numeric")
		return
	}
	make := c.Query("make")
	model := c.Query("model")
	if make == "" || model == "" {
		writeError(c, http.StatusBadRequest, "make and model are required")
		return
	}

	eff, err := h.vehicles.Resolve(c.Request.Context(), vehicle.Vehicle{Year: year, Make: make, Model: model})
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	c.JSON(http.StatusOK, eff)
}
