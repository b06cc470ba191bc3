// README: Regional average fuel price observation.
package fuelprice

import "time"

// FuelPrice is the most recent weekly observation from the price series.
// DollarsPerGallon is always positive; AsOf is the observation period when
// the series reports one, otherwise the fetch time.
type FuelPrice struct {
	DollarsPerGallon float64   `json:"dollars_per_gallon"`
	AsOf             time.Time `json:"as_of"`
}
