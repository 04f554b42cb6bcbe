package e2e

import (
	"context"
	"net/http"
	"testing"

	"github.com/findtrafficevents/trafficdb"
	"github.com/findtrafficevents/trafficdb/discovery"
	"github.com/findtrafficevents/trafficdb/errors"
	"github.com/findtrafficevents/trafficdb/rest/client"
)

var mumbaiFind = trafficdb.FindRequest{
	City:        "Mumbai",
	CountryCode: "IN",
	StartDate:   "01-04-2025",
	EndDate:     "07-04-2025",
}

func TestFindThenSaved(t *testing.T) {
	srv := stubServer(t)
	defer srv.Close()

	api := client.New(srv.URL)
	ctx := context.Background()

	found, err := api.Events.Find(ctx, mumbaiFind)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 {
		t.Fatalf("found %d events, want 1: %+v", len(found), found)
	}

	e := found[0]
	if e.ID != "concert_stadium_road_03042025" {
		t.Errorf("id = %q", e.ID)
	}
	if e.StartTime != "08:00 PM" || e.EndTime != "11:00 PM" {
		t.Errorf("times = %q..%q", e.StartTime, e.EndTime)
	}
	if e.InfluenceRadius != 2.5 {
		t.Errorf("influence radius = %f", e.InfluenceRadius)
	}
	if e.Latitude == nil || e.Longitude == nil {
		t.Fatal("coordinates not set")
	}
	if e.CreatedAt.IsZero() {
		t.Error("created at not stamped")
	}

	saved, err := api.Events.Saved(ctx, trafficdb.SavedRequest{
		City:        "Mumbai",
		CountryCode: "IN",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 1 || saved[0].ID != e.ID {
		t.Errorf("saved = %+v, want the found event", saved)
	}

	// A window past the event filters it out.
	later, err := api.Events.Saved(ctx, trafficdb.SavedRequest{
		City:        "Mumbai",
		CountryCode: "IN",
		StartDate:   "10-04-2025",
		EndDate:     "20-04-2025",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(later) != 0 {
		t.Errorf("later window returned %d events, want none", len(later))
	}
}

func TestFindIsIdempotent(t *testing.T) {
	srv := stubServer(t)
	defer srv.Close()

	api := client.New(srv.URL)
	ctx := context.Background()

	first, err := api.Events.Find(ctx, mumbaiFind)
	if err != nil {
		t.Fatal(err)
	}
	second, err := api.Events.Find(ctx, mumbaiFind)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("runs returned %d and %d events", len(first), len(second))
	}
	if first[0].ID != second[0].ID {
		t.Errorf("ids differ across runs: %q vs %q", first[0].ID, second[0].ID)
	}
}

func TestFindValidation(t *testing.T) {
	srv := stubServer(t)
	defer srv.Close()

	api := client.New(srv.URL)
	ctx := context.Background()

	_, err := api.Events.Find(ctx, trafficdb.FindRequest{
		City:        "Mumbai",
		CountryCode: "IN",
		StartDate:   "bogus",
		EndDate:     "07-04-2025",
	})
	if !errors.Is(errors.Invalid, err) {
		t.Errorf("err = %v, want Invalid kind over the wire", err)
	}
}

func TestFindAuthFailure(t *testing.T) {
	svc := stubService(t)
	svc.Discovery = stubDiscovery{StubError: discovery.Error{
		Message:    "invalid api key",
		StatusCode: http.StatusUnauthorized,
	}}

	srv := httptestServer(t, svc)
	defer srv.Close()

	api := client.New(srv.URL)
	_, err := api.Events.Find(context.Background(), mumbaiFind)
	if !errors.Is(errors.Auth, err) {
		t.Errorf("err = %v, want Auth kind over the wire", err)
	}
}

func TestEventsGeoJSON(t *testing.T) {
	srv := stubServer(t)
	defer srv.Close()

	api := client.New(srv.URL)
	ctx := context.Background()

	if _, err := api.Events.Find(ctx, mumbaiFind); err != nil {
		t.Fatal(err)
	}

	fc, err := api.Events.GeoJSON(ctx, trafficdb.SavedRequest{
		City:        "Mumbai",
		CountryCode: "IN",
	})
	if err != nil {
		t.Fatal(err)
	}
	if fc.Type != "FeatureCollection" {
		t.Errorf("type = %q", fc.Type)
	}
	// One point plus one influence-radius polygon.
	if len(fc.Features) != 2 {
		t.Errorf("features = %d, want 2", len(fc.Features))
	}
}
