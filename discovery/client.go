// Package discovery is a thin client for the natural-language event discovery
// service. Given a city, country, category and date window, the service
// searches the web and returns zero or more candidate event records in a
// fixed schema. What happens to those records afterwards is the pipeline's
// business, not this package's.
package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/findtrafficevents/trafficdb"
	"github.com/findtrafficevents/trafficdb/log"
	"go.uber.org/zap"
)

// SearchRequest asks the discovery service for events of one category in one
// city and date window. Dates are in DD-MM-YYYY form.
type SearchRequest struct {
	City      string `json:"city"`
	Country   string `json:"country"`
	Category  string `json:"category"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Client talks to the discovery service over HTTP. The HTTP client is
// injected so credentials (a bearer-token transport) and timeouts are the
// caller's decision, and tests can point BaseURL at a stub server.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

type searchResponse struct {
	Events []trafficdb.RawEvent `json:"events"`
}

// Search issues one discovery request and decodes the candidate events from
// the response. A response that is not valid JSON in the expected shape is an
// error; the orchestrator decides whether to retry the identical request.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]trafficdb.RawEvent, error) {
	logger := log.FromContext(ctx)

	body := bytes.NewBuffer(nil)
	if err := json.NewEncoder(body).Encode(req); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/events/search", body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		svcErr := parseError(resp)
		logger.Error("discovery request failed",
			zap.String("category", req.Category),
			zap.Int("status", svcErr.StatusCode),
			zap.String("error", svcErr.Message),
			zap.String("errorType", svcErr.Type))
		return nil, svcErr
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("malformed discovery response: %w", err)
	}

	return decoded.Events, nil
}
