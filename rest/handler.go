// Package rest contains a REST handler for trafficdb. It wraps Service in a
// web-accessible API with exactly the two pipeline entry points consumers
// need, plus reference place data for selector widgets.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/findtrafficevents/trafficdb/errors"
	"github.com/findtrafficevents/trafficdb/log"
	"github.com/findtrafficevents/trafficdb/places"
	"github.com/findtrafficevents/trafficdb/service"
)

// New creates a new REST handler wrapping a trafficdb Service.
func New(service *service.Service, cities *places.CityIndex) *Handler {
	return &Handler{
		EventsHandler: newEventsHandler(service),
		PlacesHandler: newPlacesHandler(cities),
	}
}

// Handler is an http.Handler that provides a REST interface for trafficdb.
type Handler struct {
	EventsHandler *EventsHandler
	PlacesHandler *PlacesHandler
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var head string
	head, r.URL.Path = ShiftPath(r.URL.Path)

	switch head {
	case "events":
		if h.EventsHandler != nil {
			h.EventsHandler.ServeHTTP(w, r)
		} else {
			http.NotFound(w, r)
		}

	case "places":
		if h.PlacesHandler != nil {
			h.PlacesHandler.ServeHTTP(w, r)
		} else {
			http.NotFound(w, r)
		}

	case "healthz":
		fmt.Fprintln(w, "ok")

	default:
		http.NotFound(w, r)
	}
}

// ShiftPath splits off the first component of p, which will be cleaned of
// relative components before processing. head will never contain a slash and
// tail will always be a rooted path without trailing slash.
func ShiftPath(p string) (head, tail string) {
	p = path.Clean("/" + p)
	i := strings.Index(p[1:], "/") + 1
	if i <= 0 {
		return p[1:], "/"
	}
	return p[1:i], p[i:]
}

func handleJSON(w http.ResponseWriter, r *http.Request, f func(context.Context) (interface{}, error)) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	resp, err := f(ctx)
	if err != nil {
		errResp := errors.ResponseForError(err)
		if errResp.Status >= 500 {
			logger.Error("internal server error", zap.Error(err))
		} else {
			logger.Warn("handler failed", zap.Error(err))
		}

		writeErrorResp(w, errResp)
		return
	}

	js, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		logger.Error("write json failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(js)
}

func writeErrorResp(w http.ResponseWriter, resp errors.Response) {
	js, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(resp.Status)
	w.Write(js)
}
