// README: Vehicle identity and fuel-economy rating.
package vehicle

import (
	"fmt"
	"strings"
)

// Vehicle identifies the car whose efficiency is looked up. A new value is
// built for every lookup; edits on the client side produce a different key.
type Vehicle struct {
	Year  int    `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
}

// Key is the case-insensitive cache key for this vehicle.
func (v Vehicle) Key() string {
	return fmt.Sprintf("%d:%s:%s", v.Year, strings.ToLower(strings.TrimSpace(v.Make)), strings.ToLower(strings.TrimSpace(v.Model)))
}

// FuelEfficiency is the combined city/highway rating from the catalog.
// CombinedMPG is always positive; a failed lookup yields an error, never zero.
type FuelEfficiency struct {
	CombinedMPG float64 `json:"combined_mpg"`
}
