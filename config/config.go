package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Directions selects and configures the route provider
	Directions *DirectionsConfig `json:"directions" yaml:"directions"`

	// PMTiles configuration for the offline walking router
	PMTiles *PMTilesConfig `json:"pmtiles" yaml:"pmtiles"`

	// Traversal tunes the replay animation
	Traversal *TraversalConfig `json:"traversal" yaml:"traversal"`

	Frame *FrameConfig `json:"frame" yaml:"frame"`

	// Camera is the initial viewport of the scene
	Camera *CameraConfig `json:"camera" yaml:"camera"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// DirectionsConfig defines the route provider configuration
type DirectionsConfig struct {
	// Provider type: "mapbox", "pmtiles" or "straight"
	Provider string `json:"provider" yaml:"provider"`

	// Directions API base URL (mapbox provider)
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// Routing profile, e.g. "walking"
	Profile string `json:"profile" yaml:"profile"`

	// Geometry encoding requested from the API: geojson, polyline or polyline6
	Geometries string `json:"geometries" yaml:"geometries"`

	AccessToken string `json:"accessToken" yaml:"accessToken"`

	// Timeout for a single directions request
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// PMTilesConfig defines PMTiles routing configuration
type PMTilesConfig struct {
	// PMTiles source URL (local file path, HTTP URL, or GCS URL)
	Source string `json:"source" yaml:"source"`

	// Road layer name in the MVT tiles
	RoadLayer string `json:"roadLayer" yaml:"roadLayer"`

	// Zoom level for tile queries
	ZoomLevel int `json:"zoomLevel" yaml:"zoomLevel"`

	// Maximum distance in meters for snapping a coordinate to the road network
	MaxSnapDistanceM float64 `json:"maxSnapDistanceM" yaml:"maxSnapDistanceM"`

	// Number of tiles kept in the PMTiles server cache
	CacheSize int `json:"cacheSize" yaml:"cacheSize"`
}

// TraversalConfig defines how a route is replayed
type TraversalConfig struct {
	// Implied replay speed in meters per millisecond
	SpeedMetersPerMs float64 `json:"speedMetersPerMs" yaml:"speedMetersPerMs"`

	MinDuration time.Duration `json:"minDuration" yaml:"minDuration"`
	MaxDuration time.Duration `json:"maxDuration" yaml:"maxDuration"`

	MarkerID      string `json:"markerId" yaml:"markerId"`
	TrailSourceID string `json:"trailSourceId" yaml:"trailSourceId"`

	// Trail layers, widest first. Empty means the default rainbow.
	TrailLayers []TrailLayerConfig `json:"trailLayers" yaml:"trailLayers"`
}

// TrailLayerConfig styles one trail band
type TrailLayerConfig struct {
	ID      string  `json:"id" yaml:"id"`
	Color   string  `json:"color" yaml:"color"`
	Width   float64 `json:"width" yaml:"width"`
	Opacity float64 `json:"opacity" yaml:"opacity"`
	Blur    float64 `json:"blur" yaml:"blur"`
}

// FrameConfig defines the frame loop
type FrameConfig struct {
	FPS int `json:"fps" yaml:"fps"`
}

// CameraConfig defines the initial scene viewport
type CameraConfig struct {
	Lat     float64 `json:"lat" yaml:"lat"`
	Lng     float64 `json:"lng" yaml:"lng"`
	Zoom    float64 `json:"zoom" yaml:"zoom"`
	Pitch   float64 `json:"pitch" yaml:"pitch"`
	Bearing float64 `json:"bearing" yaml:"bearing"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
