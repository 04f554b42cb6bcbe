package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/findtrafficevents/trafficdb"
	"github.com/findtrafficevents/trafficdb/dates"
	"github.com/findtrafficevents/trafficdb/discovery"
	"github.com/findtrafficevents/trafficdb/errors"
	"github.com/findtrafficevents/trafficdb/log"
	"github.com/findtrafficevents/trafficdb/prom"
	"github.com/findtrafficevents/trafficdb/store"
)

// FindEvents runs the full pipeline for one city and date window: discover
// candidates per category, validate, geo-enrich, persist, and return the
// city's stored events that overlap the window.
//
// Zero returned events with a nil error is the normal "nothing found"
// outcome. An Auth-kind error means the discovery credentials were rejected
// and the run produced nothing. An Internal-kind error from a failed save is
// returned together with the enriched in-memory records, so the caller still
// sees what was found and can retry the save.
func (s *Service) FindEvents(ctx context.Context, req trafficdb.FindRequest) ([]trafficdb.StoredEvent, error) {
	const op errors.Op = "Service.FindEvents"

	if req.City == "" || req.CountryCode == "" {
		return nil, errors.E(op, errors.Invalid, "city and country_code are required")
	}
	window, ok := dates.ParseRange(req.StartDate, req.EndDate)
	if !ok {
		return nil, errors.E(op, errors.Invalid, "start_date and end_date must be valid DD-MM-YYYY dates")
	}
	if window.End.Before(window.Start) {
		return nil, errors.E(op, errors.Invalid, "end_date is before start_date")
	}

	logger := log.FromContext(ctx).With(
		zap.String("city", req.City),
		zap.String("country", req.CountryCode))
	ctx = log.ToContext(ctx, logger)

	raw, err := s.discoverAll(ctx, req, window)
	if err != nil {
		return nil, errors.E(op, trafficdb.City(req.City), err)
	}

	valid := make([]trafficdb.Event, 0, len(raw))
	for _, candidate := range raw {
		event, err := trafficdb.ValidateEvent(candidate, window)
		if err != nil {
			prom.EventsRejected.WithLabelValues(rejectReason(err)).Inc()
			logger.Debug("candidate rejected",
				zap.String("eventType", candidate.EventType),
				zap.String("startDate", candidate.StartDate),
				zap.Error(err))
			continue
		}
		valid = append(valid, event)
	}

	enriched := s.enrich(ctx, valid, req.City, req.CountryCode)

	added, path, err := s.Store.Save(enriched, req.CountryCode, req.City)
	if err != nil {
		// The store file is intact; hand back the in-memory results so
		// the caller can retry the save.
		logger.Error("save failed", zap.Error(err))
		return unsavedRecords(enriched, req), errors.E(op, errors.Internal, trafficdb.City(req.City), err)
	}
	prom.EventsSaved.Add(float64(len(added)))

	logger.Info("pipeline complete",
		zap.Int("discovered", len(raw)),
		zap.Int("validated", len(valid)),
		zap.Int("enriched", len(enriched)),
		zap.Int("saved", len(added)),
		zap.String("store", path))

	return s.Store.Load(req.CountryCode, req.City, &window)
}

// GetSavedEvents returns previously stored events for a city. When the
// request carries a date window, only events whose span overlaps it are
// returned. A city with no store yet yields an empty result.
func (s *Service) GetSavedEvents(ctx context.Context, req trafficdb.SavedRequest) ([]trafficdb.StoredEvent, error) {
	const op errors.Op = "Service.GetSavedEvents"

	if req.City == "" || req.CountryCode == "" {
		return nil, errors.E(op, errors.Invalid, "city and country_code are required")
	}

	var window *dates.Range
	if req.StartDate != "" || req.EndDate != "" {
		r, ok := dates.ParseRange(req.StartDate, req.EndDate)
		if !ok {
			return nil, errors.E(op, errors.Invalid, "start_date and end_date must be valid DD-MM-YYYY dates")
		}
		window = &r
	}

	events, err := s.Store.Load(req.CountryCode, req.City, window)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return events, nil
}

// discoverAll issues one discovery request per category, concurrently with a
// small bound. A category whose request fails after retries is logged and
// skipped; the other categories' results are still returned. A rejected
// credential is fatal and aborts the remaining categories.
func (s *Service) discoverAll(ctx context.Context, req trafficdb.FindRequest, window dates.Range) ([]trafficdb.RawEvent, error) {
	logger := log.FromContext(ctx)

	var (
		mu  sync.Mutex
		all []trafficdb.RawEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.categoryWorkers())

	for _, category := range s.categories() {
		category := category
		g.Go(func() error {
			events, err := s.searchCategory(gctx, category, req, window)
			if discovery.IsAuthError(err) {
				return errors.E(errors.Auth, err)
			}
			if err != nil {
				prom.CategoryFailures.WithLabelValues(category).Inc()
				logger.Warn("category search failed, skipping",
					zap.String("category", category),
					zap.Error(err))
				return nil
			}

			prom.EventsDiscovered.WithLabelValues(category).Add(float64(len(events)))
			logger.Info("category searched",
				zap.String("category", category),
				zap.Int("candidates", len(events)))

			mu.Lock()
			all = append(all, events...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

// searchCategory issues the identical discovery request up to
// DiscoveryAttempts times. Malformed responses and timeouts are retried;
// rejected credentials are not.
func (s *Service) searchCategory(ctx context.Context, category string, req trafficdb.FindRequest, window dates.Range) ([]trafficdb.RawEvent, error) {
	searchReq := discovery.SearchRequest{
		City:      req.City,
		Country:   req.CountryCode,
		Category:  category,
		StartDate: dates.FormatDate(window.Start),
		EndDate:   dates.FormatDate(window.End),
	}

	var events []trafficdb.RawEvent
	err := withRetry(ctx, s.discoveryAttempts(), s.retryBackoff(), func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout())
		defer cancel()

		var err error
		events, err = s.Discovery.Search(callCtx, searchReq)
		if discovery.IsAuthError(err) {
			return permanent(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// unsavedRecords shapes enriched events like stored records when persistence
// failed, ids included, so a retried save stays deterministic.
func unsavedRecords(events []trafficdb.GeoEvent, req trafficdb.FindRequest) []trafficdb.StoredEvent {
	records := make([]trafficdb.StoredEvent, 0, len(events))
	for _, e := range events {
		records = append(records, trafficdb.StoredEvent{
			GeoEvent:    e,
			ID:          store.EventID(e.Event),
			CountryCode: req.CountryCode,
			CityName:    req.City,
		})
	}
	return records
}

func rejectReason(err error) string {
	switch err {
	case trafficdb.ErrMissingStartDate:
		return "missing_start_date"
	case trafficdb.ErrInvalidRange:
		return "invalid_range"
	case trafficdb.ErrOutsideWindow:
		return "outside_window"
	default:
		return "other"
	}
}
