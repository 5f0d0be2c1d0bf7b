package constants

// Directions providers selectable with directions.provider.
const (
	DirectionsProviderMapbox   = "mapbox"
	DirectionsProviderPMTiles  = "pmtiles"
	DirectionsProviderStraight = "straight"
)

// Mapbox route geometry encodings.
const (
	GeometryGeoJSON   = "geojson"
	GeometryPolyline  = "polyline"
	GeometryPolyline6 = "polyline6"
)

const (
	ProfileWalking = "walking"
	ProfileCycling = "cycling"
	ProfileDriving = "driving"
)
