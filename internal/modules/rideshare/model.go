// README: Rideshare pricing strategies and rate card.
package rideshare

// Source names the strategy that produced an estimate. The two are never
// mixed within one call.
type Source string

const (
	SourceLive    Source = "live"
	SourceFormula Source = "formula"
)

// RateCard holds the closed-form fallback model in dollars.
type RateCard struct {
	BaseFare   float64
	PerMile    float64
	BookingFee float64
}

// Estimate is a rideshare price with its provenance.
type Estimate struct {
	Dollars float64 `json:"dollars"`
	Source  Source  `json:"source"`
}
