// Package e2e contains end-to-end tests for the trafficdb package. They test
// from the rest interface all the way down to the file store.
package e2e

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/findtrafficevents/trafficdb"
	"github.com/findtrafficevents/trafficdb/discovery"
	"github.com/findtrafficevents/trafficdb/geocode"
	"github.com/findtrafficevents/trafficdb/places"
	"github.com/findtrafficevents/trafficdb/rest"
	"github.com/findtrafficevents/trafficdb/service"
	"github.com/findtrafficevents/trafficdb/store"
)

// stubServer starts a new httptest.Server with a stubbed out trafficdb
// service. You must call Close on the returned server after you're done
// with it.
func stubServer(t *testing.T) *httptest.Server {
	return httptestServer(t, stubService(t))
}

// httptestServer wraps an already-configured service, for tests that need to
// swap out one of its collaborators first.
func httptestServer(t *testing.T, svc *service.Service) *httptest.Server {
	return httptest.NewServer(rest.New(svc, stubCityIndex(t)))
}

// stubService returns a trafficdb Service where all the external dependencies
// have been stubbed out, and the store is backed by a temp directory.
func stubService(t *testing.T) *service.Service {
	return &service.Service{
		Store: &store.FileStore{
			Dir: t.TempDir(),
			Now: func() time.Time {
				return time.Date(2025, 3, 20, 14, 0, 0, 0, time.UTC)
			},
		},
		Discovery:    stubDiscovery{},
		Geocoder:     stubGeocoder{},
		RetryBackoff: time.Millisecond,
	}
}

func stubCityIndex(t *testing.T) *places.CityIndex {
	dir := t.TempDir()
	body := `["Mumbai", "Navi Mumbai", "Pune"]`
	if err := os.WriteFile(filepath.Join(dir, "in.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return &places.CityIndex{Dir: dir}
}

// stubDiscovery answers the concert category with a fixed pair of candidates
// regardless of the city requested: one well-formed event and one with an
// unusable start date. The other categories come back empty.
type stubDiscovery struct {
	StubError error
}

func (s stubDiscovery) Search(ctx context.Context, req discovery.SearchRequest) ([]trafficdb.RawEvent, error) {
	if s.StubError != nil {
		return nil, s.StubError
	}
	if req.Category != service.DefaultCategories[0] {
		return nil, nil
	}
	return []trafficdb.RawEvent{
		{
			EventType:     "concert",
			EventName:     "Arena Nights",
			Location:      "Stadium Road",
			StartDate:     "03-04-2025",
			StartTime:     "8:00 PM",
			EndTime:       "11:00 PM",
			TrafficImpact: trafficdb.ImpactHigh,
			Source:        "example.com/arena-nights",
		},
		{
			EventType: "concert",
			Location:  "Stadium Road",
			StartDate: "to be announced",
		},
	}, nil
}

// stubGeocoder puts every city center at a fixed point and every venue a few
// kilometers away from it.
type stubGeocoder struct{}

func (s stubGeocoder) Geocode(ctx context.Context, address string) (geocode.Point, error) {
	if address == "Mumbai, IN" {
		return geocode.Point{Lat: 19.0760, Lng: 72.8777}, nil
	}
	return geocode.Point{Lat: 19.0330, Lng: 72.8560}, nil
}
