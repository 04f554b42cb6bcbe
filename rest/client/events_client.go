package client

import (
	"context"
	"net/url"

	"github.com/findtrafficevents/trafficdb"
	"github.com/findtrafficevents/trafficdb/geojson"
)

// EventsClient provides access to the trafficdb /events endpoints.
type EventsClient struct {
	client *Client
}

// Find runs the discovery pipeline for a city and window and returns the
// stored events that overlap the window.
func (c *EventsClient) Find(ctx context.Context, req trafficdb.FindRequest) ([]trafficdb.StoredEvent, error) {
	var resp []trafficdb.StoredEvent
	if err := c.client.getJSON(ctx, "/events/find", findQuery(req.City, req.CountryCode, req.StartDate, req.EndDate), &resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// Saved returns previously stored events for a city, optionally filtered to a
// date window.
func (c *EventsClient) Saved(ctx context.Context, req trafficdb.SavedRequest) ([]trafficdb.StoredEvent, error) {
	var resp []trafficdb.StoredEvent
	if err := c.client.getJSON(ctx, "/events/saved", findQuery(req.City, req.CountryCode, req.StartDate, req.EndDate), &resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// GeoJSON returns stored events rendered as a GeoJSON FeatureCollection.
func (c *EventsClient) GeoJSON(ctx context.Context, req trafficdb.SavedRequest) (geojson.FeatureCollection, error) {
	var resp geojson.FeatureCollection
	if err := c.client.getJSON(ctx, "/events/geojson", findQuery(req.City, req.CountryCode, req.StartDate, req.EndDate), &resp); err != nil {
		return resp, err
	}
	return resp, nil
}

func findQuery(city, country, startDate, endDate string) url.Values {
	q := url.Values{}
	q.Set("city", city)
	q.Set("country", country)
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}
	return q
}
