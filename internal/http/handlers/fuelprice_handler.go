// README: Fuel price handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"waywise/internal/modules/fuelprice"
)

type FuelPriceHandler struct {
	prices *fuelprice.Service
}

func NewFuelPriceHandler(prices *fuelprice.Service) *FuelPriceHandler {
	return &FuelPriceHandler{prices: prices}
}

// Current handles GET /api/fuel/price. It surfaces resolver truth: the 4.85
// substitution is trip-level policy and never appears here.
func (h *FuelPriceHandler) Current(c *gin.Context) {
	price, err := h.prices.Resolve(c.Request.Context())
	if err != nil {
		writeFuelPriceError(c, err)
		return
	}
	c.JSON(http.StatusOK, price)
}
