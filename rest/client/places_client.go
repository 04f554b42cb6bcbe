package client

import (
	"context"

	"github.com/findtrafficevents/trafficdb/places"
)

// PlacesClient provides access to the trafficdb /places endpoints.
type PlacesClient struct {
	client *Client
}

// Countries lists the supported countries.
func (c *PlacesClient) Countries(ctx context.Context) ([]places.Country, error) {
	var resp []places.Country
	if err := c.client.getJSON(ctx, "/places/countries", nil, &resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// Cities lists the prefilled cities for one country code.
func (c *PlacesClient) Cities(ctx context.Context, countryCode string) ([]string, error) {
	var resp []string
	if err := c.client.getJSON(ctx, "/places/"+countryCode+"/cities", nil, &resp); err != nil {
		return resp, err
	}
	return resp, nil
}
