package rest

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/findtrafficevents/trafficdb/errors"
	"github.com/findtrafficevents/trafficdb/places"
)

// PlacesHandler serves the static reference data for location selectors.
type PlacesHandler struct {
	http.Handler // router

	cities *places.CityIndex
}

func newPlacesHandler(cities *places.CityIndex) *PlacesHandler {
	h := &PlacesHandler{
		cities: cities,
	}

	m := mux.NewRouter()
	m.HandleFunc("/countries", h.HandleCountries).Methods("GET")
	m.HandleFunc("/{code}/cities", h.HandleCities).Methods("GET")

	h.Handler = m

	return h
}

// HandleCountries lists the supported countries.
func (h *PlacesHandler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	handleJSON(w, r, func(ctx context.Context) (interface{}, error) {
		return places.Countries(), nil
	})
}

// HandleCities lists the prefilled cities for one country.
func (h *PlacesHandler) HandleCities(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	handleJSON(w, r, func(ctx context.Context) (interface{}, error) {
		if _, ok := places.CountryName(code); !ok {
			return nil, errors.E(errors.NotExist, errors.Errorf("unknown country code %q", code))
		}
		return h.cities.Cities(code)
	})
}
