package mapbox

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trail/internal/domain/constants"
	"trail/internal/domain/entity"
	domainerrors "trail/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

var (
	origin      = entity.NewCoordinate(12.9716, 77.5946)
	destination = entity.NewCoordinate(12.9766, 77.6046)
)

func newTestClient(t *testing.T, geometries string, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Options{
		BaseURL:     server.URL + "/",
		Geometries:  geometries,
		AccessToken: "pk.test",
		HTTPClient:  server.Client(),
	})
	require.NoError(t, err)

	return client
}

func TestClient_RequestShape(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	client := newTestClient(t, constants.GeometryGeoJSON, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[]}`))
	})

	_, err := client.FetchRoute(context.Background(), origin, destination)
	require.NoError(t, err)

	assert.Equal(t, "/directions/v5/mapbox/walking/77.5946,12.9716;77.6046,12.9766", gotPath)
	assert.Equal(t, []string{"geojson"}, gotQuery["geometries"])
	assert.Equal(t, []string{"full"}, gotQuery["overview"])
	assert.Equal(t, []string{"pk.test"}, gotQuery["access_token"])
}

func TestClient_GeoJSON(t *testing.T) {
	client := newTestClient(t, constants.GeometryGeoJSON, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [
				{"distance": 1410.2, "duration": 1015.3, "geometry": {"type": "LineString", "coordinates": [[77.5946, 12.9716], [77.6046, 12.9716], [77.6046, 12.9766]]}},
				{"distance": 2000, "duration": 1500, "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}}
			]
		}`))
	})

	path, err := client.FetchRoute(context.Background(), origin, destination)
	require.NoError(t, err)

	assert.Equal(t, entity.Path{
		entity.NewCoordinate(12.9716, 77.5946),
		entity.NewCoordinate(12.9716, 77.6046),
		entity.NewCoordinate(12.9766, 77.6046),
	}, path)
}

func TestClient_Polyline(t *testing.T) {
	client := newTestClient(t, constants.GeometryPolyline, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"routes":[{"geometry":"_p~iF~ps|U_ulLnnqC_mqNvxq` + "`" + `@"}]}`))
	})

	path, err := client.FetchRoute(context.Background(), origin, destination)
	require.NoError(t, err)
	require.Len(t, path, 3)

	assert.InDelta(t, 38.5, path[0].Lat, 1e-9)
	assert.InDelta(t, -120.2, path[0].Lng, 1e-9)
	assert.InDelta(t, 43.252, path[2].Lat, 1e-9)
	assert.InDelta(t, -126.453, path[2].Lng, 1e-9)
}

func TestClient_Polyline6(t *testing.T) {
	coords := [][]float64{{12.971601, 77.594602}, {12.976603, 77.604604}}
	encoded := polyline.Codec{Dim: 2, Scale: 1e6}.EncodeCoords(nil, coords)

	client := newTestClient(t, constants.GeometryPolyline6, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "polyline6", r.URL.Query().Get("geometries"))
		_, _ = w.Write([]byte(`{"routes":[{"geometry":"` + string(encoded) + `"}]}`))
	})

	path, err := client.FetchRoute(context.Background(), origin, destination)
	require.NoError(t, err)
	require.Len(t, path, 2)

	assert.InDelta(t, 12.971601, path[0].Lat, 1e-9)
	assert.InDelta(t, 77.594602, path[0].Lng, 1e-9)
	assert.InDelta(t, 12.976603, path[1].Lat, 1e-9)
	assert.InDelta(t, 77.604604, path[1].Lng, 1e-9)
}

func TestClient_NoRoute(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty routes", body: `{"code":"NoRoute","routes":[]}`},
		{name: "missing routes", body: `{"code":"NoSegment"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, constants.GeometryGeoJSON, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			path, err := client.FetchRoute(context.Background(), origin, destination)
			require.NoError(t, err)
			assert.Nil(t, path)
		})
	}
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name       string
		geometries string
		status     int
		body       string
		wantErr    error
	}{
		{name: "unauthorized", geometries: constants.GeometryGeoJSON, status: http.StatusUnauthorized, body: `{"message":"Not Authorized"}`, wantErr: ErrUpstream},
		{name: "rate limited", geometries: constants.GeometryGeoJSON, status: http.StatusTooManyRequests, body: `{}`, wantErr: ErrUpstream},
		{name: "not json", geometries: constants.GeometryGeoJSON, status: http.StatusOK, body: `<html>`, wantErr: ErrMalformed},
		{name: "null geometry", geometries: constants.GeometryGeoJSON, status: http.StatusOK, body: `{"routes":[{"geometry":null}]}`, wantErr: ErrMalformed},
		{name: "point geometry", geometries: constants.GeometryGeoJSON, status: http.StatusOK, body: `{"routes":[{"geometry":{"type":"Point","coordinates":[1,2]}}]}`, wantErr: ErrMalformed},
		{name: "out of range", geometries: constants.GeometryGeoJSON, status: http.StatusOK, body: `{"routes":[{"geometry":{"type":"LineString","coordinates":[[0,0],[0,95]]}}]}`, wantErr: ErrMalformed},
		{name: "polyline not a string", geometries: constants.GeometryPolyline, status: http.StatusOK, body: `{"routes":[{"geometry":{"type":"LineString","coordinates":[]}}]}`, wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.geometries, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			path, err := client.FetchRoute(context.Background(), origin, destination)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Nil(t, path)
		})
	}
}

func TestClient_RejectsNonFiniteInput(t *testing.T) {
	called := false
	client := newTestClient(t, constants.GeometryGeoJSON, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.FetchRoute(context.Background(), entity.NewCoordinate(math.NaN(), 77.5), destination)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCoordinate))
	assert.False(t, called)
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, constants.GeometryGeoJSON, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"routes":[]}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchRoute(ctx, origin, destination)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Options{})
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, constants.ProfileWalking, client.profile)
	assert.Equal(t, constants.GeometryGeoJSON, client.geometries)
	assert.False(t, strings.Contains(client.routeURL(origin, destination), "access_token"))

	_, err = NewClient(Options{Geometries: "wkt"})
	require.Error(t, err)

	_, err = NewClient(Options{Profile: "sailing"})
	require.Error(t, err)

	client, err = NewClient(Options{Profile: constants.ProfileCycling})
	require.NoError(t, err)
	assert.Contains(t, client.routeURL(origin, destination), "/mapbox/cycling/")
}
