package stride

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Track returns the baseline followed by every accepted fix of the
// current session. Dropped fixes are not part of the track.
func (t *Tracker) Track() orb.LineString {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.track.Clone()
}

// Feature returns the current session track as a GeoJSON feature with
// session_id, distance_m and display properties.
func (t *Tracker) Feature() *geojson.Feature {
	t.mu.Lock()
	defer t.mu.Unlock()

	line := t.track.Clone()
	if line == nil {
		line = orb.LineString{}
	}
	f := geojson.NewFeature(line)
	f.Properties["session_id"] = t.session
	f.Properties["distance_m"] = t.total
	f.Properties["display"] = t.display
	return f
}

// GeoJSON encodes Feature() as JSON.
func (t *Tracker) GeoJSON() ([]byte, error) {
	return json.Marshal(t.Feature())
}
