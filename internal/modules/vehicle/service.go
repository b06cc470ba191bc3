// README: Vehicle efficiency resolver against the fueleconomy.gov catalog.
package vehicle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"waywise/internal/fetch"
)

var (
	// ErrNotFound means the catalog has no record for the vehicle. It is a
	// user-input problem; callers decide whether to default, this resolver
	// never does.
	ErrNotFound = errors.New("vehicle not found")
	// ErrUnavailable means the catalog itself could not be reached or parsed.
	ErrUnavailable = errors.New("vehicle catalog unavailable")
)

// minCatalogYear is the oldest model year the catalog covers.
const minCatalogYear = 1980

type Service struct {
	client  *fetch.Client
	baseURL string
	store   *Store // optional; nil means in-process cache only

	mu    sync.Mutex
	local map[string]float64
	sf    singleflight.Group
}

func NewService(client *fetch.Client, baseURL string, store *Store) *Service {
	return &Service{
		client:  client,
		baseURL: baseURL,
		store:   store,
		local:   make(map[string]float64),
	}
}

// Resolve maps a vehicle to its combined MPG rating. Results are cached per
// distinct vehicle; concurrent lookups of the same vehicle collapse into one
// upstream call.
func (s *Service) Resolve(ctx context.Context, v Vehicle) (FuelEfficiency, error) {
	if v.Year < minCatalogYear || v.Year > time.Now().Year()+1 {
		return FuelEfficiency{}, ErrNotFound
	}
	if v.Make == "" || v.Model == "" {
		return FuelEfficiency{}, ErrNotFound
	}

	key := v.Key()

	s.mu.Lock()
	mpg, ok := s.local[key]
	s.mu.Unlock()
	if ok {
		return FuelEfficiency{CombinedMPG: mpg}, nil
	}

	if s.store != nil {
		// A redis error is treated as a cache miss, not a lookup failure.
		if mpg, ok, err := s.store.GetMPG(ctx, key); err == nil && ok {
			s.remember(key, mpg)
			return FuelEfficiency{CombinedMPG: mpg}, nil
		}
	}

	val, err, _ := s.sf.Do(key, func() (any, error) {
		mpg, err := s.lookup(ctx, v)
		if err != nil {
			return nil, err
		}
		s.remember(key, mpg)
		if s.store != nil {
			_ = s.store.PutMPG(ctx, key, mpg)
		}
		return mpg, nil
	})
	if err != nil {
		return FuelEfficiency{}, err
	}
	return FuelEfficiency{CombinedMPG: val.(float64)}, nil
}

func (s *Service) remember(key string, mpg float64) {
	s.mu.Lock()
	s.local[key] = mpg
	s.mu.Unlock()
}

// lookup performs the two-step catalog query: (year, make, model) to a
// candidate vehicle id, then the id to its combined rating.
func (s *Service) lookup(ctx context.Context, v Vehicle) (float64, error) {
	header := http.Header{"Accept": []string{"application/json"}}

	var menu struct {
		MenuItem []struct {
			Text  string `json:"text"`
			Value string `json:"value"`
		} `json:"menuItem"`
	}
	params := url.Values{
		"year":  []string{strconv.Itoa(v.Year)},
		"make":  []string{v.Make},
		"model": []string{v.Model},
	}
	if err := s.client.GetJSON(ctx, s.baseURL+"/vehicle/menu/options", params, header, &menu); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(menu.MenuItem) == 0 || menu.MenuItem[0].Value == "" {
		return 0, ErrNotFound
	}

	// The detail payload is loosely typed: comb08 arrives as a number or a
	// string depending on the endpoint revision.
	var detail map[string]any
	detailURL := s.baseURL + "/vehicle/" + url.PathEscape(menu.MenuItem[0].Value)
	if err := s.client.GetJSON(ctx, detailURL, nil, header, &detail); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	mpg, ok := fetch.AsFloat64(detail["comb08"])
	if !ok || mpg <= 0 {
		return 0, ErrNotFound
	}
	return mpg, nil
}
