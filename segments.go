package schedule

import (
	"sort"
)

// One trip's passage from one stop to a later stop, with everything
// called at in between.
type TripSegment struct {
	TripID       string
	From         StopCall
	To           StopCall
	Intermediate []StopCall
}

// FindTripsWithStops returns every trip that calls at fromStopID and
// later at toStopID, in that order. A trip passing the two stops in
// reverse order does not qualify. Results are sorted by departure
// time at the "from" stop, then deduplicated by (train number,
// departure time): the same physical train running on different
// calendar days appears as distinct trip ids, and riders want one
// schedule line, not one per service day.
func (s *Store) FindTripsWithStops(fromStopID, toStopID string) []TripSegment {
	if fromStopID == "" || toStopID == "" {
		return []TripSegment{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tripIDs := make([]string, 0, len(s.stopTimesByTrip))
	for id := range s.stopTimesByTrip {
		tripIDs = append(tripIDs, id)
	}
	sort.Strings(tripIDs)

	segments := []TripSegment{}
	for _, tripID := range tripIDs {
		calls := s.stopCallsLocked(tripID)

		fromIdx, toIdx := -1, -1
		for i, c := range calls {
			if fromIdx == -1 && c.StopID == fromStopID {
				fromIdx = i
			}
			if toIdx == -1 && c.StopID == toStopID {
				toIdx = i
			}
		}
		if fromIdx == -1 || toIdx == -1 || fromIdx >= toIdx {
			continue
		}

		segments = append(segments, TripSegment{
			TripID:       tripID,
			From:         calls[fromIdx],
			To:           calls[toIdx],
			Intermediate: calls[fromIdx+1 : toIdx],
		})
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].From.Departure < segments[j].From.Departure
	})

	// Keep the first representative per (train number, departure).
	type segKey struct {
		number    string
		departure string
	}
	seen := map[segKey]bool{}
	deduped := segments[:0]
	for _, seg := range segments {
		k := segKey{s.trainNumberLocked(seg.TripID), seg.From.Departure}
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, seg)
	}

	return deduped
}

// A full-trip view assembled from the trip's stop times, shared by
// the resolver and the presentation layer.
type Itinerary struct {
	TripID       string
	TrainNumber  string
	RouteName    string
	Headsign     string
	Origin       StopCall
	Destination  StopCall
	Intermediate []StopCall
}

// Itinerary assembles the full itinerary for a trip. Returns false
// when the trip is unknown or has no stop times in the current
// snapshot.
func (s *Store) Itinerary(tripID string) (Itinerary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trip, ok := s.trips[tripID]
	if !ok {
		return Itinerary{}, false
	}
	calls := s.stopCallsLocked(tripID)
	if len(calls) == 0 {
		return Itinerary{}, false
	}

	it := Itinerary{
		TripID:      tripID,
		TrainNumber: s.trainNumberLocked(tripID),
		Headsign:    trip.Headsign,
		Origin:      calls[0],
		Destination: calls[len(calls)-1],
	}
	if len(calls) > 2 {
		it.Intermediate = calls[1 : len(calls)-1]
	} else {
		it.Intermediate = []StopCall{}
	}
	if route, ok := s.routes[trip.RouteID]; ok {
		it.RouteName = route.DisplayName()
	}
	return it, true
}
