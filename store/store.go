// Package store persists enriched events, one JSON file per (country, city)
// pair. The store is append-only: events are identified by a deterministic id
// and an id that has been seen before is never re-appended, so repeated
// identical saves change nothing.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/findtrafficevents/trafficdb"
	"github.com/findtrafficevents/trafficdb/dates"
	"github.com/findtrafficevents/trafficdb/errors"
)

var nonWord = regexp.MustCompile(`[^\w]`)

// cleanIDComponent lowercases a field, turns spaces into underscores and
// strips everything that isn't a word character, so the resulting id is
// stable under punctuation and casing noise.
func cleanIDComponent(s string) string {
	if s == "" {
		s = "unknown"
	}
	cleaned := strings.ReplaceAll(strings.ToLower(s), " ", "_")
	return nonWord.ReplaceAllString(cleaned, "")
}

// EventID computes the deterministic identity of an event from its type,
// location and normalized start date. Two discoveries that agree on those
// three fields are the same real-world event, even if their source or impact
// estimate differ. This is deliberately coarse: it is an entity id, not a
// content hash.
func EventID(e trafficdb.Event) trafficdb.EventID {
	return trafficdb.EventID(fmt.Sprintf("%s_%s_%s",
		cleanIDComponent(e.EventType),
		cleanIDComponent(e.Location),
		cleanIDComponent(e.StartDate)))
}

// FileStore reads and writes per-city event files under Dir.
//
// Concurrent writers to the same city are not supported; this is a
// single-writer store and Save does a whole-file read-then-rewrite.
type FileStore struct {
	Dir string

	// Now stamps CreatedAt on newly stored events. Tests override it;
	// when nil, time.Now is used.
	Now func() time.Time
}

func (s *FileStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// path returns the per-city file path: <dir>/<cc>_<city>.json with the pair
// lowercased and spaces replaced by underscores.
func (s *FileStore) path(countryCode, cityName string) string {
	city := strings.ReplaceAll(strings.ToLower(cityName), " ", "_")
	return filepath.Join(s.Dir, fmt.Sprintf("%s_%s.json", strings.ToLower(countryCode), city))
}

// Save merges events into the city's store. Events whose id is already
// present are skipped; the rest are stamped with an id, CreatedAt and the
// city/country they were discovered for, then the whole combined set is
// written back atomically (write to a temp file, then rename over the old
// one) so a failed write never corrupts previously persisted data.
//
// It returns the newly appended records and the store file path. Saving an
// empty batch is a no-op.
func (s *FileStore) Save(events []trafficdb.GeoEvent, countryCode, cityName string) ([]trafficdb.StoredEvent, string, error) {
	const op errors.Op = "FileStore.Save"

	path := s.path(countryCode, cityName)
	if len(events) == 0 {
		return nil, path, nil
	}

	existing, err := s.read(path)
	if err != nil {
		return nil, path, errors.E(op, errors.Internal, trafficdb.City(cityName), err)
	}

	seen := make(map[trafficdb.EventID]bool, len(existing))
	for _, e := range existing {
		seen[e.ID] = true
	}

	var added []trafficdb.StoredEvent
	for _, e := range events {
		id := EventID(e.Event)
		if seen[id] {
			continue
		}
		seen[id] = true
		added = append(added, trafficdb.StoredEvent{
			GeoEvent:    e,
			ID:          id,
			CreatedAt:   s.now(),
			CountryCode: countryCode,
			CityName:    cityName,
		})
	}

	if len(added) == 0 {
		return nil, path, nil
	}

	if err := s.write(path, append(existing, added...)); err != nil {
		return nil, path, errors.E(op, errors.Internal, trafficdb.City(cityName), err)
	}

	return added, path, nil
}

// Load returns the city's stored events. When window is non-nil, only events
// whose [start_date, end_date] span overlaps it are returned; stored events
// whose start date no longer parses are skipped rather than failing the read.
// A missing store file is an empty result, not an error.
func (s *FileStore) Load(countryCode, cityName string, window *dates.Range) ([]trafficdb.StoredEvent, error) {
	const op errors.Op = "FileStore.Load"

	events, err := s.read(s.path(countryCode, cityName))
	if err != nil {
		return nil, errors.E(op, errors.Internal, trafficdb.City(cityName), err)
	}
	if window == nil {
		return events, nil
	}

	filtered := []trafficdb.StoredEvent{}
	for _, e := range events {
		start, ok := dates.ParseDate(e.StartDate)
		if !ok {
			continue
		}
		end, ok := dates.ParseDate(e.EndDate)
		if !ok {
			end = start
		}
		if dates.Overlap(dates.Range{Start: start, End: end}, *window) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (s *FileStore) read(path string) ([]trafficdb.StoredEvent, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var events []trafficdb.StoredEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return events, nil
}

func (s *FileStore) write(path string, events []trafficdb.StoredEvent) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
