package trafficdb

import (
	"time"
)

// EventID is a deterministic identity for a discovered event. It is computed
// from the event's type, location and start date after normalization, so the
// same real-world event discovered twice maps to the same ID. See store.EventID.
type EventID string

// City names a city for error reporting purposes.
type City string

// TrafficImpact is the qualitative severity of an event's effect on nearby
// road traffic, as estimated by the discovery service.
type TrafficImpact string

const (
	ImpactLow    TrafficImpact = "low"
	ImpactMedium TrafficImpact = "medium"
	ImpactHigh   TrafficImpact = "high"
)

// InfluenceRadiusKM returns the assumed radius in kilometers within which an
// event of this impact level affects traffic. Unknown impact levels get the
// smallest radius.
func (t TrafficImpact) InfluenceRadiusKM() float64 {
	switch t {
	case ImpactHigh:
		return 2.5
	case ImpactMedium:
		return 1.5
	default:
		return 1.0
	}
}

// RawEvent is a candidate event as returned by the discovery service. All
// date and time fields are loosely formatted free text until validation.
type RawEvent struct {
	EventType     string        `json:"event_type"`
	EventName     string        `json:"event_name"`
	Location      string        `json:"location"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	StartTime     string        `json:"start_time"`
	EndTime       string        `json:"end_time"`
	TrafficImpact TrafficImpact `json:"traffic_impact"`
	Source        string        `json:"source"`
}

// Event is a RawEvent that passed validation: StartDate and EndDate are in
// DD-MM-YYYY form, StartTime and EndTime in 12-hour clock form, and the
// event's span overlaps the search window it was discovered for.
type Event struct {
	EventType     string        `json:"event_type"`
	EventName     string        `json:"event_name"`
	Location      string        `json:"location"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	StartTime     string        `json:"start_time"`
	EndTime       string        `json:"end_time"`
	TrafficImpact TrafficImpact `json:"traffic_impact"`
	Source        string        `json:"source"`
}

// GeoEvent is an Event with resolved coordinates. Events whose location could
// not be geocoded never become GeoEvents; they are dropped by the enrichment
// stage. DistanceFromCityKM is only set when the city center itself resolved.
type GeoEvent struct {
	Event

	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	DistanceFromCityKM *float64 `json:"distance_from_city_km,omitempty"`
	InfluenceRadius    float64  `json:"influence_radius"`
}

// StoredEvent is the persisted form of a GeoEvent. It is the only entity that
// outlives a pipeline run.
type StoredEvent struct {
	GeoEvent

	ID          EventID   `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	CountryCode string    `json:"country_code"`
	CityName    string    `json:"city_name"`
}

// FindRequest is passed to Service.FindEvents to run a discovery pipeline for
// a city and date window. Dates are in DD-MM-YYYY form.
type FindRequest struct {
	City        string `json:"city"`
	CountryCode string `json:"country_code"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// SavedRequest is passed to Service.GetSavedEvents to query previously stored
// events. StartDate and EndDate are optional; when both are set, only events
// whose span overlaps [StartDate, EndDate] are returned.
type SavedRequest struct {
	City        string `json:"city"`
	CountryCode string `json:"country_code"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}
