package geojson

import (
	"encoding/json"

	"github.com/findtrafficevents/trafficdb"
)

// Feature is a GeoJSON feature.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// EventCollection renders stored events as a FeatureCollection for map
// consumers: one point feature per event, plus a polygon approximating its
// influence radius so the map can shade the affected area.
func EventCollection(events []trafficdb.StoredEvent) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}

	for _, e := range events {
		if e.Latitude == nil || e.Longitude == nil {
			continue
		}
		lat, lng := *e.Latitude, *e.Longitude

		point, _ := json.Marshal(map[string]interface{}{
			"type":        "Point",
			"coordinates": []float64{lng, lat},
		})
		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: point,
			Properties: map[string]interface{}{
				"id":             string(e.ID),
				"event_type":     e.EventType,
				"event_name":     e.EventName,
				"location":       e.Location,
				"start_date":     e.StartDate,
				"end_date":       e.EndDate,
				"start_time":     e.StartTime,
				"end_time":       e.EndTime,
				"traffic_impact": string(e.TrafficImpact),
				"source":         e.Source,
			},
		})

		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: CircleGeom(lat, lng, e.InfluenceRadius),
			Properties: map[string]interface{}{
				"id":        string(e.ID),
				"role":      "influence_radius",
				"radius_km": e.InfluenceRadius,
			},
		})
	}

	return fc
}
