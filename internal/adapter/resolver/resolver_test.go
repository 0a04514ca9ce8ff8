package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var encounter = time.Date(2029, 4, 13, 21, 46, 0, 0, time.UTC)

func apophis() domain.OrbitalElements {
	return domain.OrbitalElements{
		Eccentricity:     0.191,
		SemiMajorAxisAU:  0.9224,
		InclinationDeg:   3.34,
		AscendingNodeDeg: 204.4,
		ArgPerihelionDeg: 126.4,
		MeanAnomalyDeg:   180.0,
		Epoch:            time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testClient(url string, timeout time.Duration) *Client {
	return NewClient(url, timeout, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())
}

func TestClient_Resolve_NearMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 0.191, body.Elements.Eccentricity)
		assert.True(t, encounter.Equal(body.EncounterTime))

		_, _ = w.Write([]byte(`{"impact":false,"velocity_kms":7.42,"miss_distance_km":38017,"encounter_time":"2029-04-13T21:46:00Z"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	res, err := c.Resolve(context.Background(), apophis(), encounter)
	require.NoError(t, err)

	assert.False(t, res.Impact)
	assert.Equal(t, 38017.0, res.MissDistanceKm)
	assert.Equal(t, 7.42, res.VelocityKms)
	require.NoError(t, res.Check())
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.ResolverRequests.WithLabelValues("near_miss")))
}

func TestClient_Resolve_ImpactFillsEncounterTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"impact":true,"lat":10,"lng":20,"velocity_kms":18,"impact_angle_deg":45,"azimuth_deg":270}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	res, err := c.Resolve(context.Background(), apophis(), encounter)
	require.NoError(t, err)

	assert.True(t, res.Impact)
	assert.True(t, encounter.Equal(res.EncounterTime))
	assert.Equal(t, 270.0, res.Direct().AzimuthDeg)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.ResolverRequests.WithLabelValues("impact")))
}

func TestClient_Resolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "non-200",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "ephemeris unavailable", http.StatusServiceUnavailable)
			},
			want: "503",
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"impact":`))
			},
			want: "decode response",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := testClient(srv.URL, 5*time.Second)
			_, err := c.Resolve(context.Background(), apophis(), encounter)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.ResolverRequests.WithLabelValues("error")))
		})
	}
}

func TestClient_Resolve_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 50*time.Millisecond)
	_, err := c.Resolve(context.Background(), apophis(), encounter)
	require.Error(t, err)
}

type countingResolver struct {
	calls int
	res   domain.TrajectoryResolution
	err   error
}

func (r *countingResolver) Resolve(_ context.Context, _ domain.OrbitalElements, _ time.Time) (domain.TrajectoryResolution, error) {
	r.calls++
	return r.res, r.err
}

func TestCachedResolver_Hit(t *testing.T) {
	inner := &countingResolver{res: domain.TrajectoryResolution{MissDistanceKm: 38017, VelocityKms: 7.42}}
	m := observability.NewMetricsForTesting()
	cached := NewCachedResolver(inner, 8, m)

	r1, err := cached.Resolve(context.Background(), apophis(), encounter)
	require.NoError(t, err)
	// Same instant in another zone shares the key.
	r2, err := cached.Resolve(context.Background(), apophis(), encounter.In(time.FixedZone("X", 3600)))
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolverCache.WithLabelValues("hit")))
}

func TestCachedResolver_DifferentEncounterMisses(t *testing.T) {
	inner := &countingResolver{res: domain.TrajectoryResolution{MissDistanceKm: 1, VelocityKms: 1}}
	cached := NewCachedResolver(inner, 8, observability.NewMetricsForTesting())

	_, _ = cached.Resolve(context.Background(), apophis(), encounter)
	_, _ = cached.Resolve(context.Background(), apophis(), encounter.Add(time.Hour))

	assert.Equal(t, 2, inner.calls)
}

func TestCachedResolver_ErrorNotCached(t *testing.T) {
	inner := &countingResolver{err: errors.New("down")}
	cached := NewCachedResolver(inner, 8, observability.NewMetricsForTesting())

	_, err := cached.Resolve(context.Background(), apophis(), encounter)
	require.Error(t, err)
	_, err = cached.Resolve(context.Background(), apophis(), encounter)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}
