// Package service implements the traffic-event pipeline: category-partitioned
// discovery, validation, geo-enrichment, deduplicated persistence, and the
// two query entry points consumers call.
package service

import (
	"context"
	"time"

	"github.com/findtrafficevents/trafficdb"
	"github.com/findtrafficevents/trafficdb/discovery"
	"github.com/findtrafficevents/trafficdb/geocode"
	"github.com/findtrafficevents/trafficdb/store"
)

// DefaultCategories are the discovery categories searched per run. One
// combined query empirically yields lower recall than one query per category,
// so the orchestrator partitions the search.
var DefaultCategories = []string{
	"concert/ live shows/ sport event",
	"road closure/ construction",
	"public protest/ demonstration/ gathering",
}

// Defaults for the knobs on Service. A zero Service with just its
// collaborators set behaves like the reference pipeline.
const (
	DefaultMaxDistanceKM     = 100.0
	DefaultEnrichWorkers     = 4
	DefaultCategoryWorkers   = 3
	DefaultDiscoveryAttempts = 2
	DefaultRetryBackoff      = 500 * time.Millisecond
	DefaultCallTimeout       = 10 * time.Second
)

// DiscoveryClient mocks out access to the event discovery service.
type DiscoveryClient interface {
	Search(ctx context.Context, req discovery.SearchRequest) ([]trafficdb.RawEvent, error)
}

// Geocoder mocks out access to the geocoding service.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geocode.Point, error)
}

// Service runs the discovery pipeline and answers queries over the per-city
// stores. Construct one per process and inject its collaborators; nothing in
// here keeps implicit global state.
type Service struct {
	Store     *store.FileStore
	Discovery DiscoveryClient
	Geocoder  Geocoder

	// Categories overrides DefaultCategories when non-empty.
	Categories []string
	// MaxDistanceKM is how far from the city center an event may sit
	// before enrichment discards it.
	MaxDistanceKM float64
	// EnrichWorkers bounds concurrent per-event geocode lookups.
	EnrichWorkers int
	// CategoryWorkers bounds concurrent discovery requests.
	CategoryWorkers int
	// DiscoveryAttempts is how many times the identical discovery request
	// is tried before the category degrades to no results.
	DiscoveryAttempts int
	// RetryBackoff is the base backoff between discovery attempts.
	RetryBackoff time.Duration
	// CallTimeout bounds each individual external call.
	CallTimeout time.Duration
}

func (s *Service) categories() []string {
	if len(s.Categories) > 0 {
		return s.Categories
	}
	return DefaultCategories
}

func (s *Service) maxDistanceKM() float64 {
	if s.MaxDistanceKM > 0 {
		return s.MaxDistanceKM
	}
	return DefaultMaxDistanceKM
}

func (s *Service) enrichWorkers() int {
	if s.EnrichWorkers > 0 {
		return s.EnrichWorkers
	}
	return DefaultEnrichWorkers
}

func (s *Service) categoryWorkers() int {
	if s.CategoryWorkers > 0 {
		return s.CategoryWorkers
	}
	return DefaultCategoryWorkers
}

func (s *Service) discoveryAttempts() int {
	if s.DiscoveryAttempts > 0 {
		return s.DiscoveryAttempts
	}
	return DefaultDiscoveryAttempts
}

func (s *Service) retryBackoff() time.Duration {
	if s.RetryBackoff > 0 {
		return s.RetryBackoff
	}
	return DefaultRetryBackoff
}

func (s *Service) callTimeout() time.Duration {
	if s.CallTimeout > 0 {
		return s.CallTimeout
	}
	return DefaultCallTimeout
}
