// README: Rideshare cost estimator; live pricing API with unconditional formula fallback.
package rideshare

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"waywise/internal/fetch"
	"waywise/internal/modules/route"
)

type Service struct {
	client   *fetch.Client
	priceURL string
	token    string
	strategy Source
	rates    RateCard
	log      *zap.Logger
}

// NewService picks the strategy once: live when a price URL and credential
// are configured, formula otherwise. Live failures still fall back per call.
func NewService(client *fetch.Client, priceURL, token string, rates RateCard, log *zap.Logger) *Service {
	strategy := SourceFormula
	if priceURL != "" && token != "" {
		strategy = SourceLive
	}
	return &Service{
		client:   client,
		priceURL: priceURL,
		token:    token,
		strategy: strategy,
		rates:    rates,
		log:      log,
	}
}

// Estimate prices the route. It cannot fail: the comparison screen always
// needs a number, so any live-API problem degrades to the formula.
func (s *Service) Estimate(ctx context.Context, rp route.RoutePoints, d route.Distance) Estimate {
	if s.strategy == SourceLive {
		dollars, err := s.liveEstimate(ctx, rp)
		if err == nil {
			return Estimate{Dollars: dollars, Source: SourceLive}
		}
		s.log.Warn("live rideshare estimate failed, using formula",
			zap.Error(err),
			zap.Float64("distance_miles", d.Miles),
		)
	}
	return Estimate{
		Dollars: s.rates.BaseFare + s.rates.PerMile*d.Miles + s.rates.BookingFee,
		Source:  SourceFormula,
	}
}

func (s *Service) liveEstimate(ctx context.Context, rp route.RoutePoints) (float64, error) {
	params := url.Values{
		"start_latitude":  []string{formatCoord(rp.Origin.Lat)},
		"start_longitude": []string{formatCoord(rp.Origin.Lng)},
		"end_latitude":    []string{formatCoord(rp.Destination.Lat)},
		"end_longitude":   []string{formatCoord(rp.Destination.Lng)},
	}
	header := http.Header{"Authorization": []string{"Token " + s.token}}

	var payload struct {
		Prices []struct {
			Estimate     any `json:"estimate"`
			LowEstimate  any `json:"low_estimate"`
			HighEstimate any `json:"high_estimate"`
		} `json:"prices"`
	}
	if err := s.client.GetJSON(ctx, s.priceURL, params, header, &payload); err != nil {
		return 0, err
	}
	if len(payload.Prices) == 0 {
		return 0, errors.New("empty price list")
	}

	// Midpoint of the first product's range; a bare estimate field works too.
	p := payload.Prices[0]
	lo, okLo := fetch.AsFloat64(p.LowEstimate)
	hi, okHi := fetch.AsFloat64(p.HighEstimate)
	if okLo && okHi && lo > 0 && hi >= lo {
		return (lo + hi) / 2, nil
	}
	if est, ok := fetch.AsFloat64(p.Estimate); ok && est > 0 {
		return est, nil
	}
	return 0, fmt.Errorf("no usable price in %d entries", len(payload.Prices))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
