// README: Driving distance resolver using the Google distance matrix.
package route

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"
)

// ErrUnavailable means the distance matrix gave no usable answer. Retrying is
// left to the transport layer; this resolver makes exactly one attempt.
var ErrUnavailable = errors.New("route distance unavailable")

type Service struct {
	client *maps.Client
}

func NewService(client *maps.Client) *Service {
	return &Service{client: client}
}

// Resolve queries the distance matrix for the single origin/destination pair
// and converts the returned length to miles.
func (s *Service) Resolve(ctx context.Context, rp RoutePoints) (Distance, error) {
	r := &maps.DistanceMatrixRequest{
		Origins:      []string{"place_id:" + rp.OriginPlaceID},
		Destinations: []string{"place_id:" + rp.DestinationPlaceID},
	}
	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		return Distance{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Exactly one row with one element is expected for a 1x1 request.
	if len(resp.Rows) != 1 || len(resp.Rows[0].Elements) != 1 {
		return Distance{}, ErrUnavailable
	}
	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" || el.Distance.Meters < 0 {
		return Distance{}, ErrUnavailable
	}
	return Distance{Miles: float64(el.Distance.Meters) * milesPerMeter}, nil
}
