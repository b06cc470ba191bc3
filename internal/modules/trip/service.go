// README: Trip cost aggregator; fans out to the resolvers and applies the fail-soft policy.
package trip

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"waywise/internal/modules/fuelprice"
	"waywise/internal/modules/rideshare"
	"waywise/internal/modules/route"
	"waywise/internal/modules/vehicle"
	"waywise/internal/types"
)

var (
	ErrBadRequest = errors.New("bad request")
	// ErrIncompleteInput means the distance could not be resolved. Distance is
	// load-bearing for both cost branches, so no comparison is possible.
	ErrIncompleteInput = errors.New("route distance required for any comparison")
)

type EfficiencyResolver interface {
	Resolve(ctx context.Context, v vehicle.Vehicle) (vehicle.FuelEfficiency, error)
}

type PriceResolver interface {
	Resolve(ctx context.Context) (fuelprice.FuelPrice, error)
}

type DistanceResolver interface {
	Resolve(ctx context.Context, rp route.RoutePoints) (route.Distance, error)
}

type RideEstimator interface {
	Estimate(ctx context.Context, rp route.RoutePoints, d route.Distance) rideshare.Estimate
}

type Service struct {
	efficiency EfficiencyResolver
	price      PriceResolver
	distance   DistanceResolver
	ride       RideEstimator

	fallbackGasPrice float64
	sf               singleflight.Group
	log              *zap.Logger
}

func NewService(
	efficiency EfficiencyResolver,
	price PriceResolver,
	distance DistanceResolver,
	ride RideEstimator,
	fallbackGasPrice float64,
	log *zap.Logger,
) *Service {
	return &Service{
		efficiency:       efficiency,
		price:            price,
		distance:         distance,
		ride:             ride,
		fallbackGasPrice: fallbackGasPrice,
		log:              log,
	}
}

// Estimate computes the drive-vs-rideshare comparison for one trip.
// Identical requests already in flight share a single computation; a caller
// that abandons its request gets its context error, never a partial result.
func (s *Service) Estimate(ctx context.Context, req Request) (Comparison, error) {
	if err := validate(req); err != nil {
		return Comparison{}, err
	}

	ch := s.sf.DoChan(requestKey(req), func() (any, error) {
		return s.estimate(ctx, req)
	})
	select {
	case <-ctx.Done():
		return Comparison{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Comparison{}, res.Err
		}
		return res.Val.(Comparison), nil
	}
}

func (s *Service) estimate(ctx context.Context, req Request) (Comparison, error) {
	var (
		eff    vehicle.FuelEfficiency
		effErr error

		price    fuelprice.FuelPrice
		priceErr error

		dist route.Distance
	)

	// Efficiency and price failures are survivable, so their errors are
	// captured rather than returned. A distance failure fails the group and
	// cancels the siblings: without distance nothing can be computed.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		eff, effErr = s.efficiency.Resolve(gctx, req.Vehicle)
		return nil
	})
	g.Go(func() error {
		price, priceErr = s.price.Resolve(gctx)
		return nil
	})
	g.Go(func() error {
		d, err := s.distance.Resolve(gctx, req.Route)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIncompleteInput, err)
		}
		dist = d
		return nil
	})
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}

	gas := price.DollarsPerGallon
	priceSource := FuelPriceLive
	if priceErr != nil {
		gas = s.fallbackGasPrice
		priceSource = FuelPriceFallback
		s.log.Warn("fuel price unavailable, substituting fallback",
			zap.Float64("fallback_price", gas),
			zap.Error(priceErr),
		)
	}

	cmp := Comparison{
		DistanceMiles:   dist.Miles,
		FuelPrice:       gas,
		FuelPriceSource: priceSource,
	}
	if effErr == nil {
		cost := types.Round2(dist.Miles/eff.CombinedMPG*gas + req.ParkingFee)
		cmp.DriveCost = &cost
	} else {
		s.log.Info("vehicle efficiency unresolved, omitting drive cost",
			zap.Int("year", req.Vehicle.Year),
			zap.String("make", req.Vehicle.Make),
			zap.String("model", req.Vehicle.Model),
			zap.Error(effErr),
		)
	}

	// The estimator runs strictly after distance settles; the formula
	// fallback needs the miles figure.
	est := s.ride.Estimate(ctx, req.Route, dist)
	cmp.RideshareCost = types.Round2(est.Dollars)
	cmp.RideshareSource = est.Source
	return cmp, nil
}

func validate(req Request) error {
	if req.Route.OriginPlaceID == "" || req.Route.DestinationPlaceID == "" {
		return ErrBadRequest
	}
	if req.ParkingFee < 0 {
		return ErrBadRequest
	}
	return nil
}

// requestKey identifies computations that may share one flight. Vehicle text
// is folded so retyping the same car in different case still dedups.
func requestKey(req Request) string {
	return fmt.Sprintf("%s|%s>%s|%.2f",
		req.Vehicle.Key(),
		strings.TrimSpace(req.Route.OriginPlaceID),
		strings.TrimSpace(req.Route.DestinationPlaceID),
		req.ParkingFee,
	)
}
