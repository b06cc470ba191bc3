// README: Fuel price resolver tests (parsing, TTL cache, single-flight refresh).
package fuelprice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"waywise/internal/fetch"
)

func newSeriesServer(t *testing.T, body string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

const latestObservation = `{"response":{"data":[{"period":"2026-08-24","value":3.459}]}}`

func TestResolve_LatestObservation(t *testing.T) {
	var calls atomic.Int32
	srv := newSeriesServer(t, latestObservation, &calls)
	svc := NewService(fetch.New(5*time.Second), srv.URL, "test-key", 6*time.Hour)

	price, err := svc.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if price.DollarsPerGallon != 3.459 {
		t.Errorf("price = %v, want 3.459", price.DollarsPerGallon)
	}
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !price.AsOf.Equal(want) {
		t.Errorf("as of = %v, want %v", price.AsOf, want)
	}
}

func TestResolve_StringValue(t *testing.T) {
	var calls atomic.Int32
	srv := newSeriesServer(t, `{"response":{"data":[{"period":"2026-08-24","value":"3.459"}]}}`, &calls)
	svc := NewService(fetch.New(5*time.Second), srv.URL, "test-key", 6*time.Hour)

	price, err := svc.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if price.DollarsPerGallon != 3.459 {
		t.Errorf("price = %v, want 3.459", price.DollarsPerGallon)
	}
}

func TestResolve_Unavailable(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty series", `{"response":{"data":[]}}`},
		{"malformed value", `{"response":{"data":[{"period":"2026-08-24","value":"n/a"}]}}`},
		{"non-positive value", `{"response":{"data":[{"period":"2026-08-24","value":0}]}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := newSeriesServer(t, tc.body, &calls)
			svc := NewService(fetch.New(5*time.Second), srv.URL, "test-key", 6*time.Hour)
			if _, err := svc.Resolve(context.Background()); !errors.Is(err, ErrUnavailable) {
				t.Errorf("err = %v, want ErrUnavailable", err)
			}
		})
	}
}

func TestResolve_MissingKeySkipsUpstream(t *testing.T) {
	var calls atomic.Int32
	srv := newSeriesServer(t, latestObservation, &calls)
	svc := NewService(fetch.New(5*time.Second), srv.URL, "", 6*time.Hour)

	if _, err := svc.Resolve(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("series queried %d times without an API key", n)
	}
}

func TestResolve_CachedWithinTTL(t *testing.T) {
	var calls atomic.Int32
	srv := newSeriesServer(t, latestObservation, &calls)
	svc := NewService(fetch.New(5*time.Second), srv.URL, "test-key", 6*time.Hour)

	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := svc.Resolve(ctx); err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("series queried %d times within TTL, want 1", n)
	}

	// Past the freshness window the next caller refetches.
	now = now.Add(7 * time.Hour)
	if _, err := svc.Resolve(ctx); err != nil {
		t.Fatalf("resolve after expiry: %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("series queried %d times after expiry, want 2", n)
	}
}

func TestResolve_ConcurrentMissesCollapse(t *testing.T) {
	var calls atomic.Int32
	gate := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		<-gate
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, latestObservation)
	}))
	defer srv.Close()

	svc := NewService(fetch.New(5*time.Second), srv.URL, "test-key", 6*time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Resolve(context.Background()); err != nil {
				t.Errorf("resolve: %v", err)
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("series queried %d times, want 1", n)
	}
}
