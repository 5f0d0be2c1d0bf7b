// Package mapbox fetches walking routes from the Mapbox Directions API.
package mapbox

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trail/internal/domain/constants"
	"trail/internal/domain/entity"
	domainerrors "trail/internal/domain/errors"
	"trail/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/twpayne/go-polyline"
)

const (
	DefaultBaseURL = "https://api.mapbox.com"
	DefaultTimeout = 10 * time.Second

	maxErrorBody = 512
)

var (
	// ErrUpstream reports a non-2xx answer from the API.
	ErrUpstream = errors.New("directions API error")
	// ErrMalformed reports a body that is not a directions response.
	ErrMalformed = errors.New("malformed directions response")
)

// HTTPDoer is the part of *http.Client the client needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client. Empty fields use the defaults.
type Options struct {
	BaseURL     string
	Profile     string
	Geometries  string
	AccessToken string
	Timeout     time.Duration
	HTTPClient  HTTPDoer
	Logger      *slog.Logger
}

// Client implements service.RouteFetcher against the Directions API.
type Client struct {
	baseURL     string
	profile     string
	geometries  string
	accessToken string
	httpClient  HTTPDoer
	logger      *slog.Logger
}

var _ service.RouteFetcher = (*Client)(nil)

// NewClient creates a directions client.
func NewClient(opts Options) (*Client, error) {
	geometries := opts.Geometries
	if geometries == "" {
		geometries = constants.GeometryGeoJSON
	}
	switch geometries {
	case constants.GeometryGeoJSON, constants.GeometryPolyline, constants.GeometryPolyline6:
	default:
		return nil, errors.Errorf("unsupported geometries: %s", geometries)
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	profile := opts.Profile
	switch profile {
	case "":
		profile = constants.ProfileWalking
	case constants.ProfileWalking, constants.ProfileCycling, constants.ProfileDriving:
	default:
		return nil, errors.Errorf("unsupported profile: %s", profile)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:     baseURL,
		profile:     profile,
		geometries:  geometries,
		accessToken: opts.AccessToken,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// directionsResponse is the subset of the API response the client reads.
type directionsResponse struct {
	Code   string  `json:"code"`
	Routes []route `json:"routes"`
}

type route struct {
	Distance float64         `json:"distance"`
	Duration float64         `json:"duration"`
	Geometry json.RawMessage `json:"geometry"`
}

// FetchRoute returns the first route between origin and destination. An
// answer without routes yields a nil path and a nil error.
func (c *Client) FetchRoute(ctx context.Context, origin, destination entity.Coordinate) (entity.Path, error) {
	if !origin.IsFinite() || !destination.IsFinite() {
		return nil, domainerrors.ErrInvalidCoordinate.WithDetails("origin " + origin.String() + ", destination " + destination.String())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.routeURL(origin, destination), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build directions request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "directions request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return nil, errors.Wrapf(ErrUpstream, "status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(ErrMalformed, err.Error())
	}

	if len(payload.Routes) == 0 {
		c.logger.Debug("Directions returned no routes",
			slog.String("code", payload.Code),
			slog.String("origin", origin.String()),
			slog.String("destination", destination.String()),
		)

		return nil, nil
	}

	path, err := c.decodeGeometry(payload.Routes[0].Geometry)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Directions route fetched",
		slog.Int("points", len(path)),
		slog.Float64("api_distance_m", payload.Routes[0].Distance),
	)

	return path, nil
}

func (c *Client) routeURL(origin, destination entity.Coordinate) string {
	coords := formatCoord(origin) + ";" + formatCoord(destination)

	query := url.Values{}
	query.Set("geometries", c.geometries)
	query.Set("overview", "full")
	if c.accessToken != "" {
		query.Set("access_token", c.accessToken)
	}

	return c.baseURL + "/directions/v5/mapbox/" + url.PathEscape(c.profile) + "/" + coords + "?" + query.Encode()
}

// formatCoord writes lng,lat as the API expects.
func formatCoord(c entity.Coordinate) string {
	return strconv.FormatFloat(c.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

func (c *Client) decodeGeometry(raw json.RawMessage) (entity.Path, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, errors.Wrap(ErrMalformed, "route without geometry")
	}

	switch c.geometries {
	case constants.GeometryPolyline:
		return decodePolyline(raw, polyline.Codec{Dim: 2, Scale: 1e5})
	case constants.GeometryPolyline6:
		return decodePolyline(raw, polyline.Codec{Dim: 2, Scale: 1e6})
	default:
		return decodeGeoJSON(raw)
	}
}

func decodeGeoJSON(raw json.RawMessage) (entity.Path, error) {
	geometry, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, errors.Wrap(ErrMalformed, err.Error())
	}

	line, ok := geometry.Geometry().(orb.LineString)
	if !ok {
		return nil, errors.Wrapf(ErrMalformed, "geometry type %s", geometry.Type)
	}

	return validPath(entity.PathFromLineString(line))
}

// decodePolyline decodes an encoded polyline string. Polylines store
// lat,lng pairs.
func decodePolyline(raw json.RawMessage, codec polyline.Codec) (entity.Path, error) {
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, errors.Wrap(ErrMalformed, err.Error())
	}

	coords, _, err := codec.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, errors.Wrap(ErrMalformed, err.Error())
	}

	path := make(entity.Path, len(coords))
	for i, coord := range coords {
		path[i] = entity.NewCoordinate(coord[0], coord[1])
	}

	return validPath(path)
}

func validPath(path entity.Path) (entity.Path, error) {
	for i, c := range path {
		if !c.IsValid() {
			return nil, errors.Wrapf(ErrMalformed, "point %d out of range: %s", i, c)
		}
	}

	return path, nil
}
