package entity

// TrailLayer is one styled line layer drawn from the trail source.
// Several layers stacked with decreasing width give the rainbow effect.
type TrailLayer struct {
	ID       string  `json:"id" yaml:"id"`
	SourceID string  `json:"sourceId" yaml:"sourceId"`
	Color    string  `json:"color" yaml:"color"`
	Width    float64 `json:"width" yaml:"width"`
	Opacity  float64 `json:"opacity" yaml:"opacity"`
	Blur     float64 `json:"blur" yaml:"blur"`
}

// DefaultRainbow returns the six-band trail style, widest band first.
func DefaultRainbow(sourceID string) []TrailLayer {
	colors := []string{"#ff3b30", "#ff9500", "#ffcc00", "#34c759", "#007aff", "#af52de"}
	layers := make([]TrailLayer, len(colors))
	for i, color := range colors {
		layers[i] = TrailLayer{
			ID:       sourceID + "-band-" + string(rune('0'+i)),
			SourceID: sourceID,
			Color:    color,
			Width:    float64(14 - 2*i),
			Opacity:  0.9,
		}
	}
	// outermost band is a soft glow
	layers[0].Blur = 4
	layers[0].Opacity = 0.6

	return layers
}
