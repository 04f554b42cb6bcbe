package rest

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/findtrafficevents/trafficdb"
	"github.com/findtrafficevents/trafficdb/geojson"
	"github.com/findtrafficevents/trafficdb/prom"
	"github.com/findtrafficevents/trafficdb/service"
)

// EventsHandler provides a REST interface to the pipeline's two entry points
// and a map-ready GeoJSON view of stored events.
type EventsHandler struct {
	http.Handler // router

	service *service.Service
}

func newEventsHandler(service *service.Service) *EventsHandler {
	h := &EventsHandler{
		service: service,
	}

	m := mux.NewRouter()
	m.Handle(
		"/find",
		prom.InstrumentHandler("FindEvents", http.HandlerFunc(h.HandleFind)),
	).Methods("GET", "POST")
	m.Handle(
		"/saved",
		prom.InstrumentHandler("GetSavedEvents", http.HandlerFunc(h.HandleSaved)),
	).Methods("GET")
	m.Handle(
		"/geojson",
		prom.InstrumentHandler("EventsGeoJSON", http.HandlerFunc(h.HandleGeoJSON)),
	).Methods("GET")

	h.Handler = m

	return h
}

// HandleFind wraps Service.FindEvents in a REST interface.
func (h *EventsHandler) HandleFind(w http.ResponseWriter, r *http.Request) {
	handleJSON(w, r, func(ctx context.Context) (interface{}, error) {
		req := trafficdb.FindRequest{
			City:        r.FormValue("city"),
			CountryCode: r.FormValue("country"),
			StartDate:   r.FormValue("start_date"),
			EndDate:     r.FormValue("end_date"),
		}
		return h.service.FindEvents(ctx, req)
	})
}

// HandleSaved wraps Service.GetSavedEvents in a REST interface.
func (h *EventsHandler) HandleSaved(w http.ResponseWriter, r *http.Request) {
	handleJSON(w, r, func(ctx context.Context) (interface{}, error) {
		req := trafficdb.SavedRequest{
			City:        r.FormValue("city"),
			CountryCode: r.FormValue("country"),
			StartDate:   r.FormValue("start_date"),
			EndDate:     r.FormValue("end_date"),
		}
		return h.service.GetSavedEvents(ctx, req)
	})
}

// HandleGeoJSON returns stored events as a GeoJSON FeatureCollection with one
// point and one influence-radius polygon per event, ready for a map widget.
func (h *EventsHandler) HandleGeoJSON(w http.ResponseWriter, r *http.Request) {
	handleJSON(w, r, func(ctx context.Context) (interface{}, error) {
		req := trafficdb.SavedRequest{
			City:        r.FormValue("city"),
			CountryCode: r.FormValue("country"),
			StartDate:   r.FormValue("start_date"),
			EndDate:     r.FormValue("end_date"),
		}
		events, err := h.service.GetSavedEvents(ctx, req)
		if err != nil {
			return nil, err
		}
		return geojson.EventCollection(events), nil
	})
}
