// README: End-to-end HTTP tests over fake upstream APIs.
package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"waywise/internal/fetch"
	"waywise/internal/modules/fuelprice"
	"waywise/internal/modules/rideshare"
	"waywise/internal/modules/route"
	"waywise/internal/modules/trip"
	"waywise/internal/modules/vehicle"
)

type upstreams struct {
	catalogBody string
	seriesBody  string
	matrixBody  string
}

// buildTestRouter wires the full stack against httptest upstreams; only the
// rideshare estimator stays in formula mode.
func buildTestRouter(t *testing.T, up upstreams) http.Handler {
	t.Helper()

	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/vehicle/menu/options") {
			fmt.Fprint(w, up.catalogBody)
			return
		}
		fmt.Fprint(w, `{"comb08": 32}`)
	}))
	t.Cleanup(catalog.Close)

	series := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, up.seriesBody)
	}))
	t.Cleanup(series.Close)

	matrix := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, up.matrixBody)
	}))
	t.Cleanup(matrix.Close)

	client := fetch.New(5 * time.Second)
	mapsClient, err := maps.NewClient(maps.WithAPIKey("test-key"), maps.WithBaseURL(matrix.URL))
	require.NoError(t, err)

	log := zap.NewNop()
	vehicleSvc := vehicle.NewService(client, catalog.URL, nil)
	priceSvc := fuelprice.NewService(client, series.URL, "test-key", 6*time.Hour)
	routeSvc := route.NewService(mapsClient)
	rideSvc := rideshare.NewService(client, "", "", rideshare.RateCard{BaseFare: 2.50, PerMile: 1.35, BookingFee: 3.00}, log)
	tripSvc := trip.NewService(vehicleSvc, priceSvc, routeSvc, rideSvc, 4.85, log)

	return NewRouter(RouterDeps{
		Trips:             tripSvc,
		Vehicles:          vehicleSvc,
		FuelPrices:        priceSvc,
		DefaultParkingFee: 15.00,
		Log:               log,
	})
}

func healthyUpstreams() upstreams {
	return upstreams{
		catalogBody: `{"menuItem":[{"text":"Toyota Camry","value":"46358"}]}`,
		seriesBody:  `{"response":{"data":[{"period":"2026-08-24","value":4.85}]}}`,
		matrixBody: `{"status":"OK","origin_addresses":["A"],"destination_addresses":["B"],` +
			`"rows":[{"elements":[{"status":"OK","distance":{"text":"16.1 km","value":16093},"duration":{"text":"20 mins","value":1200}}]}]}`,
	}
}

func estimateBody() map[string]any {
	return map[string]any{
		"vehicle": map[string]any{"year": 2022, "make": "Toyota", "model": "Camry"},
		"route": map[string]any{
			"origin_place_id":      "place_a",
			"origin":               map[string]any{"lat": 34.0522, "lng": -118.2437},
			"destination_place_id": "place_b",
			"destination":          map[string]any{"lat": 34.1184, "lng": -118.3004},
		},
		"parking_fee": 15.00,
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEstimateTrip_OK(t *testing.T) {
	router := buildTestRouter(t, healthyUpstreams())

	w := doJSON(t, router, http.MethodPost, "/api/trips/estimate", estimateBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cmp trip.Comparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cmp))
	require.NotNil(t, cmp.DriveCost)
	assert.InDelta(t, 16.52, *cmp.DriveCost, 0.01)
	assert.InDelta(t, 19.00, cmp.RideshareCost, 0.01)
	assert.InDelta(t, 10.0, cmp.DistanceMiles, 0.01)
	assert.Equal(t, trip.FuelPriceLive, cmp.FuelPriceSource)
	assert.Equal(t, rideshare.SourceFormula, cmp.RideshareSource)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestEstimateTrip_DefaultParkingFee(t *testing.T) {
	router := buildTestRouter(t, healthyUpstreams())

	body := estimateBody()
	delete(body, "parking_fee")
	w := doJSON(t, router, http.MethodPost, "/api/trips/estimate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cmp trip.Comparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cmp))
	require.NotNil(t, cmp.DriveCost)
	// Defaulted 15.00 parking gives the same canonical total.
	assert.InDelta(t, 16.52, *cmp.DriveCost, 0.01)
}

func TestEstimateTrip_BadRequest(t *testing.T) {
	router := buildTestRouter(t, healthyUpstreams())

	body := estimateBody()
	body["route"].(map[string]any)["destination_place_id"] = ""
	w := doJSON(t, router, http.MethodPost, "/api/trips/estimate", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEstimateTrip_DistanceUnavailable(t *testing.T) {
	up := healthyUpstreams()
	up.matrixBody = `{"status":"OK","origin_addresses":["A"],"destination_addresses":["B"],"rows":[{"elements":[{"status":"NOT_FOUND"}]}]}`
	router := buildTestRouter(t, up)

	w := doJSON(t, router, http.MethodPost, "/api/trips/estimate", estimateBody())
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEstimateTrip_UnknownVehicleStillCompares(t *testing.T) {
	up := healthyUpstreams()
	up.catalogBody = `{"menuItem":[]}`
	router := buildTestRouter(t, up)

	w := doJSON(t, router, http.MethodPost, "/api/trips/estimate", estimateBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cmp trip.Comparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cmp))
	assert.Nil(t, cmp.DriveCost)
	assert.InDelta(t, 19.00, cmp.RideshareCost, 0.01)
}

func TestVehicleEfficiency(t *testing.T) {
	router := buildTestRouter(t, healthyUpstreams())

	w := doJSON(t, router, http.MethodGet, "/api/vehicles/efficiency?year=2022&make=Toyota&model=Camry", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var eff vehicle.FuelEfficiency
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &eff))
	assert.Equal(t, 32.0, eff.CombinedMPG)
}

func TestVehicleEfficiency_NotFound(t *testing.T) {
	up := healthyUpstreams()
	up.catalogBody = `{"menuItem":[]}`
	router := buildTestRouter(t, up)

	w := doJSON(t, router, http.MethodGet, "/api/vehicles/efficiency?year=2022&make=No&model=Such", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVehicleEfficiency_BadQuery(t *testing.T) {
	router := buildTestRouter(t, healthyUpstreams())

	w := doJSON(t, router, http.MethodGet, "/api/vehicles/efficiency?year=twenty&make=Toyota&model=Camry", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFuelPrice(t *testing.T) {
	router := buildTestRouter(t, healthyUpstreams())

	w := doJSON(t, router, http.MethodGet, "/api/fuel/price", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var price fuelprice.FuelPrice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &price))
	assert.Equal(t, 4.85, price.DollarsPerGallon)
}

func TestFuelPrice_Unavailable(t *testing.T) {
	up := healthyUpstreams()
	up.seriesBody = `{"response":{"data":[]}}`
	router := buildTestRouter(t, up)

	w := doJSON(t, router, http.MethodGet, "/api/fuel/price", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealth(t *testing.T) {
	router := buildTestRouter(t, healthyUpstreams())

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
