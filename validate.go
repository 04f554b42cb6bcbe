package trafficdb

import (
	"errors"

	"github.com/findtrafficevents/trafficdb/dates"
)

// Validation rejection reasons. These are data-quality failures: the caller
// logs them and drops the single offending candidate, it never aborts a batch
// over them.
var (
	ErrMissingStartDate = errors.New("missing or unparseable start date")
	ErrInvalidRange     = errors.New("end date before start date")
	ErrOutsideWindow    = errors.New("event outside search window")
)

// Default times applied when a candidate's times are missing or unparseable:
// an event with no stated times is assumed to span the whole day.
const (
	DefaultStartTime = "12:00 AM"
	DefaultEndTime   = "11:59 PM"
)

// ValidateEvent normalizes a raw candidate's dates and times and decides
// whether it survives. A candidate is rejected when its start date is missing
// or unparseable, when its end date precedes its start date, or when its span
// does not overlap the search window. An unparseable end date falls back to
// the start date (single-day event); unparseable times fall back to the
// whole-day defaults.
func ValidateEvent(raw RawEvent, window dates.Range) (Event, error) {
	start, ok := dates.ParseDate(raw.StartDate)
	if !ok {
		return Event{}, ErrMissingStartDate
	}

	end, ok := dates.ParseDate(raw.EndDate)
	if !ok {
		end = start
	}
	if end.Before(start) {
		return Event{}, ErrInvalidRange
	}

	if !dates.Overlap(dates.Range{Start: start, End: end}, window) {
		return Event{}, ErrOutsideWindow
	}

	event := Event{
		EventType:     raw.EventType,
		EventName:     raw.EventName,
		Location:      raw.Location,
		StartDate:     dates.FormatDate(start),
		EndDate:       dates.FormatDate(end),
		StartTime:     DefaultStartTime,
		EndTime:       DefaultEndTime,
		TrafficImpact: raw.TrafficImpact,
		Source:        raw.Source,
	}
	if t, ok := dates.ParseClock(raw.StartTime); ok {
		event.StartTime = dates.FormatClock(t)
	}
	if t, ok := dates.ParseClock(raw.EndTime); ok {
		event.EndTime = dates.FormatClock(t)
	}

	return event, nil
}
