package geojson

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/findtrafficevents/trafficdb"
)

func TestHaversine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		latFrom, lonFrom float64
		latTo, lonTo     float64
		wantKM           float64
	}{
		// 1 degree of latitude is ~111.19 km everywhere.
		{0, 0, 1, 0, 111.19},
		{0, 0, 0.45, 0, 50.04},
		{0, 0, 1.35, 0, 150.11},
		// Mumbai CST to Pune railway station.
		{18.9398, 72.8355, 18.5286, 73.8744, 118.6},
		{0, 0, 0, 0, 0},
	}

	for _, test := range tests {
		got := Haversine(test.latFrom, test.lonFrom, test.latTo, test.lonTo)
		if math.Abs(got-test.wantKM) > 0.5 {
			t.Errorf("Haversine(%v,%v -> %v,%v) = %f, want ~%f",
				test.latFrom, test.lonFrom, test.latTo, test.lonTo, got, test.wantKM)
		}
	}
}

func TestHaversineSymmetric(t *testing.T) {
	t.Parallel()

	ab := Haversine(18.94, 72.83, 19.21, 73.10)
	ba := Haversine(19.21, 73.10, 18.94, 72.83)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", ab, ba)
	}
}

func TestCircleGeom(t *testing.T) {
	t.Parallel()

	var geom struct {
		Type        string         `json:"type"`
		Coordinates [][][2]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(CircleGeom(18.94, 72.83, 2.5), &geom); err != nil {
		t.Fatal(err)
	}
	if geom.Type != "Polygon" {
		t.Errorf("type = %q", geom.Type)
	}
	if len(geom.Coordinates) != 1 {
		t.Fatalf("rings = %d, want 1", len(geom.Coordinates))
	}

	ring := geom.Coordinates[0]
	if len(ring) < 4 {
		t.Fatalf("ring has %d points", len(ring))
	}
	if ring[0] != ring[len(ring)-1] {
		t.Error("ring is not closed")
	}
	for _, pt := range ring {
		d := Haversine(18.94, 72.83, pt[1], pt[0])
		if math.Abs(d-2.5) > 0.05 {
			t.Errorf("ring point %v is %f km from center, want ~2.5", pt, d)
		}
	}
}

func TestEventCollection(t *testing.T) {
	t.Parallel()

	lat, lng := 18.94, 72.83
	events := []trafficdb.StoredEvent{
		{
			ID: "concert_stadium_road_03042025",
			GeoEvent: trafficdb.GeoEvent{
				Event: trafficdb.Event{
					EventType:     "concert",
					Location:      "Stadium Road",
					StartDate:     "03-04-2025",
					TrafficImpact: trafficdb.ImpactHigh,
				},
				Latitude:        &lat,
				Longitude:       &lng,
				InfluenceRadius: 2.5,
			},
		},
		// No coordinates: contributes no features.
		{ID: "protest_unknown_04042025"},
	}

	fc := EventCollection(events)
	if fc.Type != "FeatureCollection" {
		t.Errorf("type = %q", fc.Type)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("features = %d, want point + circle for the located event", len(fc.Features))
	}
	if got := fc.Features[0].Properties["id"]; got != "concert_stadium_road_03042025" {
		t.Errorf("point id = %v", got)
	}
	if got := fc.Features[1].Properties["role"]; got != "influence_radius" {
		t.Errorf("second feature role = %v", got)
	}
	if got := fc.Features[1].Properties["radius_km"]; got != 2.5 {
		t.Errorf("radius_km = %v", got)
	}
}

func TestEventCollectionEmpty(t *testing.T) {
	t.Parallel()

	js, err := json.Marshal(EventCollection(nil))
	if err != nil {
		t.Fatal(err)
	}
	// Map consumers expect "features": [], not null.
	want := `{"type":"FeatureCollection","features":[]}`
	if string(js) != want {
		t.Errorf("marshaled = %s, want %s", js, want)
	}
}
