// README: Fuel price resolver with a process-wide TTL cache over the EIA weekly series.
package fuelprice

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"waywise/internal/fetch"
)

// ErrUnavailable means no current price could be obtained. The resolver
// never substitutes a number; the fallback price is trip-level policy.
var ErrUnavailable = errors.New("fuel price unavailable")

const periodLayout = "2006-01-02"

type Service struct {
	client  *fetch.Client
	baseURL string
	apiKey  string
	ttl     time.Duration

	mu        sync.Mutex
	cached    FuelPrice
	fetchedAt time.Time

	sf  singleflight.Group
	now func() time.Time
}

func NewService(client *fetch.Client, baseURL, apiKey string, ttl time.Duration) *Service {
	return &Service{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Resolve returns the current average price per gallon. Within the freshness
// window every caller gets the cached observation; concurrent misses collapse
// into a single upstream fetch.
func (s *Service) Resolve(ctx context.Context) (FuelPrice, error) {
	s.mu.Lock()
	if !s.fetchedAt.IsZero() && s.now().Sub(s.fetchedAt) < s.ttl {
		p := s.cached
		s.mu.Unlock()
		return p, nil
	}
	s.mu.Unlock()

	val, err, _ := s.sf.Do("refresh", func() (any, error) {
		return s.refresh(ctx)
	})
	if err != nil {
		return FuelPrice{}, err
	}
	return val.(FuelPrice), nil
}

func (s *Service) refresh(ctx context.Context) (FuelPrice, error) {
	if s.apiKey == "" {
		return FuelPrice{}, ErrUnavailable
	}

	// Latest weekly observation only: sorted descending by period, size 1.
	params := url.Values{
		"api_key":            []string{s.apiKey},
		"frequency":          []string{"weekly"},
		"data[0]":            []string{"value"},
		"sort[0][column]":    []string{"period"},
		"sort[0][direction]": []string{"desc"},
		"size":               []string{"1"},
	}
	var payload struct {
		Response struct {
			Data []struct {
				Period string `json:"period"`
				Value  any    `json:"value"`
			} `json:"data"`
		} `json:"response"`
	}
	if err := s.client.GetJSON(ctx, s.baseURL, params, nil, &payload); err != nil {
		return FuelPrice{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(payload.Response.Data) == 0 {
		return FuelPrice{}, ErrUnavailable
	}

	rec := payload.Response.Data[0]
	dollars, ok := fetch.AsFloat64(rec.Value)
	if !ok || dollars <= 0 {
		return FuelPrice{}, ErrUnavailable
	}
	asOf, err := time.Parse(periodLayout, rec.Period)
	if err != nil {
		asOf = s.now()
	}

	price := FuelPrice{DollarsPerGallon: dollars, AsOf: asOf}
	s.mu.Lock()
	s.cached = price
	s.fetchedAt = s.now()
	s.mu.Unlock()
	return price, nil
}
