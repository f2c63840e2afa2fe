package schedule

import (
	"sort"
	"sync"

	"railboard.dev/schedule/model"
)

// Store holds one immutable snapshot of the static schedule: routes,
// stops, trips, stop times and route shapes, plus the indexes derived
// from them. Load replaces the whole snapshot atomically; readers see
// either the old or the new data, never a mix.
type Store struct {
	mu sync.RWMutex

	routes          map[string]model.Route
	stops           map[string]model.Stop
	trips           map[string]model.Trip
	stopTimesByTrip map[string][]model.StopTime
	tripsByStop     map[string][]string
	shapes          map[string][]model.ShapePoint

	shapeIndex   *ShapeIndex
	stationIndex *StationIndex
}

func NewStore() *Store {
	s := &Store{}
	s.reset()
	s.shapeIndex = NewShapeIndex(nil)
	s.stationIndex = NewStationIndex(nil)
	return s
}

func (s *Store) reset() {
	s.routes = map[string]model.Route{}
	s.stops = map[string]model.Stop{}
	s.trips = map[string]model.Trip{}
	s.stopTimesByTrip = map[string][]model.StopTime{}
	s.tripsByStop = map[string][]string{}
	s.shapes = map[string][]model.ShapePoint{}
}

// Load replaces all collections with the given feed data. Records
// with empty primary keys are skipped. Both spatial indexes are
// rebuilt from the new snapshot before Load returns.
func (s *Store) Load(
	routes []model.Route,
	stops []model.Stop,
	stopTimesByTrip map[string][]model.StopTime,
	shapes map[string][]model.ShapePoint,
	trips []model.Trip,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()

	for _, r := range routes {
		if r.ID == "" {
			continue
		}
		s.routes[r.ID] = r
	}

	allStops := make([]model.Stop, 0, len(stops))
	for _, st := range stops {
		if st.ID == "" {
			continue
		}
		s.stops[st.ID] = st
		allStops = append(allStops, st)
	}

	for _, t := range trips {
		if t.ID == "" {
			continue
		}
		s.trips[t.ID] = t
	}

	tripSet := map[string]map[string]bool{}
	for tripID, sts := range stopTimesByTrip {
		if tripID == "" {
			continue
		}
		kept := make([]model.StopTime, 0, len(sts))
		for _, st := range sts {
			if st.StopID == "" {
				continue
			}
			kept = append(kept, st)

			if tripSet[st.StopID] == nil {
				tripSet[st.StopID] = map[string]bool{}
			}
			tripSet[st.StopID][tripID] = true
		}
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].StopSequence < kept[j].StopSequence
		})
		s.stopTimesByTrip[tripID] = kept
	}

	// Sorted ids give TripsForStop a stable order across calls.
	for stopID, set := range tripSet {
		ids := make([]string, 0, len(set))
		for tripID := range set {
			ids = append(ids, tripID)
		}
		sort.Strings(ids)
		s.tripsByStop[stopID] = ids
	}

	for shapeID, pts := range shapes {
		if shapeID == "" {
			continue
		}
		ordered := append([]model.ShapePoint{}, pts...)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Sequence < ordered[j].Sequence
		})
		s.shapes[shapeID] = ordered
	}

	s.shapeIndex = NewShapeIndex(s.shapes)
	s.stationIndex = NewStationIndex(allStops)
}

// Clear drops the current snapshot. The store reports not ready until
// the next Load.
func (s *Store) Clear() {
	s.Load(nil, nil, nil, nil, nil)
}

// IsReady reports whether a usable snapshot is loaded: both routes
// and stops must be non-empty.
func (s *Store) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.routes) > 0 && len(s.stops) > 0
}

func (s *Store) Route(id string) (model.Route, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.routes[id]
	return r, ok
}

func (s *Store) Stop(id string) (model.Stop, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stops[id]
	return st, ok
}

func (s *Store) Trip(id string) (model.Trip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trips[id]
	return t, ok
}

// StopName returns the stop's display name, falling back to the raw
// id for unknown stops. Used pervasively for display, so it never
// fails.
func (s *Store) StopName(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.stops[id]; ok && st.Name != "" {
		return st.Name
	}
	return id
}

// TrainNumber returns the rider-facing number for a trip: the trip
// short name when present, else the longest trailing run of digits in
// the trip id, else the id unchanged. Some feeds encode the train
// number only in the id, hence the dual strategy.
func (s *Store) TrainNumber(tripID string) string {
	s.mu.RLock()
	t, ok := s.trips[tripID]
	s.mu.RUnlock()
	if ok && t.ShortName != "" {
		return t.ShortName
	}
	if num := trailingDigits(tripID); num != "" {
		return num
	}
	return tripID
}

// trailingDigits returns the longest run of digits immediately
// preceding the end of s, or "".
func trailingDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[i:]
}

// A stop time enriched with the stop's display name.
type StopCall struct {
	model.StopTime
	StopName string
}

// StopTimesForTrip returns the trip's full itinerary, ordered by stop
// sequence. Unknown or empty trip id yields an empty result.
func (s *Store) StopTimesForTrip(tripID string) []StopCall {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stopCallsLocked(tripID)
}

func (s *Store) stopCallsLocked(tripID string) []StopCall {
	sts := s.stopTimesByTrip[tripID]
	calls := make([]StopCall, 0, len(sts))
	for _, st := range sts {
		name := st.StopID
		if stop, ok := s.stops[st.StopID]; ok && stop.Name != "" {
			name = stop.Name
		}
		calls = append(calls, StopCall{StopTime: st, StopName: name})
	}
	return calls
}

// IntermediateStops returns the trip's itinerary with the first and
// last calls removed. Trips with two or fewer stops yield an empty
// list.
func (s *Store) IntermediateStops(tripID string) []StopCall {
	calls := s.StopTimesForTrip(tripID)
	if len(calls) <= 2 {
		return []StopCall{}
	}
	return calls[1 : len(calls)-1]
}

// TripsForStop returns the ids of all trips calling at the stop,
// deduplicated, in an order that is stable across calls on the same
// snapshot.
func (s *Store) TripsForStop(stopID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.tripsByStop[stopID]...)
}

func (s *Store) Routes() []model.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	routes := make([]model.Route, 0, len(s.routes))
	for _, r := range s.routes {
		routes = append(routes, r)
	}
	return routes
}

func (s *Store) Stops() []model.Stop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stops := make([]model.Stop, 0, len(s.stops))
	for _, st := range s.stops {
		stops = append(stops, st)
	}
	return stops
}

func (s *Store) Trips() []model.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trips := make([]model.Trip, 0, len(s.trips))
	for _, t := range s.trips {
		trips = append(trips, t)
	}
	return trips
}

func (s *Store) TripIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.trips))
	for id := range s.trips {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Shapes exports the raw shape-id to ordered point list mapping, for
// feeding the shape index or external consumers.
func (s *Store) Shapes() map[string][]model.ShapePoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]model.ShapePoint, len(s.shapes))
	for id, pts := range s.shapes {
		out[id] = append([]model.ShapePoint{}, pts...)
	}
	return out
}

// ShapeIndex returns the viewport index over route shapes, rebuilt on
// every Load.
func (s *Store) ShapeIndex() *ShapeIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shapeIndex
}

// StationIndex returns the viewport index over stations, rebuilt on
// every Load.
func (s *Store) StationIndex() *StationIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stationIndex
}
