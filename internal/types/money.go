// README: Dollar rounding helper shared by cost calculations.
package types

import "math"

// Round2 rounds a dollar amount to two decimal places. Intermediate
// arithmetic keeps full precision; only terminal values pass through here.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
