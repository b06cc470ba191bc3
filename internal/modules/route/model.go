// README: Route endpoints and driving distance.
package route

import "waywise/internal/types"

// RoutePoints carries the already-resolved place identifiers and coordinates
// for a trip. The engine never interprets them; place IDs go to the distance
// matrix, coordinates to the live rideshare pricing API.
type RoutePoints struct {
	OriginPlaceID      string      `json:"origin_place_id"`
	Origin             types.Point `json:"origin"`
	DestinationPlaceID string      `json:"destination_place_id"`
	Destination        types.Point `json:"destination"`
}

// Distance is derived per request and never cached across route points.
type Distance struct {
	Miles float64 `json:"miles"`
}

const milesPerMeter = 0.000621371
