package storage

import (
	"time"

	"railboard.dev/schedule/model"
)

// Storage persists SavedTrainRef records, the one entity whose
// lifecycle crosses process restarts. Refs are never mutated in
// place: an update is a delete followed by a new save.
type Storage interface {
	// Retrieves all saved refs, oldest save first.
	SavedRefs() ([]model.SavedTrainRef, error)

	// Writes a ref unless a duplicate exists. Duplicate means
	// equal on (TripID, FromStopID, ToStopID, TravelDate).
	SaveRef(ref model.SavedTrainRef) error

	// Deletes every ref matching the trip and segment endpoints,
	// regardless of travel date.
	DeleteRef(tripID, fromStopID, toStopID string) error

	// Deletes all refs.
	ClearRefs() error

	Close() error
}

// travelDateKey encodes the travel date for use in identity keys and
// primary key columns. The zero time (no date chosen) maps to "".
func travelDateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTravelDateKey(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
