package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/findtrafficevents/trafficdb"
	"github.com/findtrafficevents/trafficdb/geocode"
	"github.com/findtrafficevents/trafficdb/geojson"
	"github.com/findtrafficevents/trafficdb/log"
	"github.com/findtrafficevents/trafficdb/prom"
)

// enrich resolves each validated event's location to coordinates and filters
// by distance from the city center. Events that cannot be located are dropped
// entirely: an unlocated event can be neither mapped nor distance-filtered.
//
// The city center is resolved once per batch and reused for every event. If
// that single lookup fails, events are still geocoded individually but the
// distance filter is disabled and DistanceFromCityKM stays unset.
//
// Per-event lookups are independent and run in a bounded worker pool; the
// filtering rules do not depend on completion order.
func (s *Service) enrich(ctx context.Context, events []trafficdb.Event, city, countryCode string) []trafficdb.GeoEvent {
	if len(events) == 0 {
		return nil
	}
	logger := log.FromContext(ctx)

	var center *geocode.Point
	if p, err := s.geocodeOne(ctx, joinAddress(city, countryCode)); err != nil {
		logger.Warn("city center lookup failed, distance filter disabled",
			zap.String("city", city),
			zap.Error(err))
	} else {
		center = &p
	}

	results := make([]*trafficdb.GeoEvent, len(events))

	var g errgroup.Group
	g.SetLimit(s.enrichWorkers())
	for i, event := range events {
		i, event := i, event
		g.Go(func() error {
			if strings.TrimSpace(event.Location) == "" {
				prom.GeocodeFailures.Inc()
				logger.Debug("event has no location, dropped",
					zap.String("eventType", event.EventType))
				return nil
			}

			point, err := s.geocodeOne(ctx, joinAddress(event.Location, city, countryCode))
			if err != nil {
				prom.GeocodeFailures.Inc()
				logger.Debug("geocode failed, event dropped",
					zap.String("location", event.Location),
					zap.Error(err))
				return nil
			}

			lat, lng := point.Lat, point.Lng
			enriched := trafficdb.GeoEvent{
				Event:           event,
				Latitude:        &lat,
				Longitude:       &lng,
				InfluenceRadius: event.TrafficImpact.InfluenceRadiusKM(),
			}

			if center != nil {
				distance := geojson.Haversine(center.Lat, center.Lng, lat, lng)
				if distance > s.maxDistanceKM() {
					prom.EventsDroppedDistance.Inc()
					logger.Debug("event too far from city center, dropped",
						zap.String("location", event.Location),
						zap.Float64("distanceKM", distance))
					return nil
				}
				enriched.DistanceFromCityKM = &distance
			}

			results[i] = &enriched
			return nil
		})
	}
	g.Wait()

	enriched := make([]trafficdb.GeoEvent, 0, len(events))
	for _, r := range results {
		if r != nil {
			enriched = append(enriched, *r)
		}
	}
	return enriched
}

// geocodeOne bounds a single lookup with the per-call timeout.
func (s *Service) geocodeOne(ctx context.Context, address string) (geocode.Point, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout())
	defer cancel()
	return s.Geocoder.Geocode(callCtx, address)
}

// joinAddress builds a disambiguated address string, skipping empty parts.
func joinAddress(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, ", ")
}
