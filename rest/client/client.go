// Package client provides a Go client for trafficdb's REST API.
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/findtrafficevents/trafficdb/errors"
)

// Client provides a client to trafficdb's REST API.
//
// Don't construct a Client directly. Use New() instead.
type Client struct {
	// HTTP is the underlying HTTP client used to send requests.
	HTTP *http.Client
	// BaseURL is the HTTP endpoint for the REST API. Can be overridden
	// for tests.
	BaseURL string

	Events *EventsClient
	Places *PlacesClient
}

// New constructs a new Client talking to the given base URL.
func New(baseURL string) *Client {
	client := &Client{
		HTTP:    http.DefaultClient,
		BaseURL: baseURL,
	}

	client.Events = &EventsClient{client}
	client.Places = &PlacesClient{client}

	return client
}

func (c Client) getJSON(ctx context.Context, path string, query url.Values, resp interface{}) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	w, err := c.HTTP.Do(r)
	if err != nil {
		return err
	}
	defer w.Body.Close()

	if status := w.StatusCode; status != http.StatusOK {
		var errResp errors.Response
		if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
			return err
		}
		return errResp.ToError()
	}

	if resp != nil {
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			return err
		}
	}

	return nil
}
