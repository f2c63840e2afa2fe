package schedule

import (
	"fmt"
	"sort"
	"strings"

	"railboard.dev/schedule/model"
)

const (
	// Search returns at most this many results.
	SearchResultLimit = 20

	// At most this many trips per matched train number.
	trainNumberMatchLimit = 5
)

type SearchKind int

const (
	SearchKindStation SearchKind = iota
	SearchKindRoute
	SearchKindTrain
)

// One search hit. Kind says which payload fields are set: Stop for
// stations, Route for routes, TripID (plus TrainNumber, and Stop when
// the match was via a stop the trip calls at) for trains.
type SearchResult struct {
	Kind        SearchKind
	Title       string
	Subtitle    string
	Stop        *model.Stop
	Route       *model.Route
	TripID      string
	TrainNumber string
}

// key returns the result's identity for deduplication.
func (r SearchResult) key() string {
	switch r.Kind {
	case SearchKindStation:
		return "station-" + r.Stop.ID
	case SearchKindRoute:
		return "route-" + r.Route.ID
	default:
		if r.Stop != nil {
			return "train-" + r.TripID + "-" + r.Stop.ID
		}
		return "train-" + r.TripID
	}
}

// Search runs a free-text/code search over stations, routes and
// trains. Matching is case-insensitive; results are deduplicated and
// capped at SearchResultLimit. An unloaded or empty store yields an
// empty list, never an error.
func (s *Store) Search(query string) []SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}
	}
	needle := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []SearchResult{}
	seen := map[string]bool{}
	add := func(r SearchResult) {
		if seen[r.key()] {
			return
		}
		seen[r.key()] = true
		results = append(results, r)
	}

	// Stations by name, then by id/code. A station that already
	// matched by name is not listed a second time for its code.
	stops := make([]model.Stop, 0, len(s.stops))
	for _, stop := range s.stops {
		stops = append(stops, stop)
	}
	sort.Slice(stops, func(i, j int) bool {
		if stops[i].Name != stops[j].Name {
			return stops[i].Name < stops[j].Name
		}
		return stops[i].ID < stops[j].ID
	})

	nameMatched := map[string]bool{}
	for i := range stops {
		if strings.Contains(strings.ToLower(stops[i].Name), needle) {
			nameMatched[stops[i].ID] = true
			add(SearchResult{
				Kind:     SearchKindStation,
				Title:    stops[i].Name,
				Subtitle: "Station",
				Stop:     &stops[i],
			})
		}
	}
	for i := range stops {
		if nameMatched[stops[i].ID] {
			continue
		}
		if strings.Contains(strings.ToLower(stops[i].ID), needle) {
			add(SearchResult{
				Kind:     SearchKindStation,
				Title:    stops[i].Name,
				Subtitle: fmt.Sprintf("Station code %s", stops[i].ID),
				Stop:     &stops[i],
			})
		}
	}

	// Routes by long name, short name or id.
	routes := make([]model.Route, 0, len(s.routes))
	for _, route := range s.routes {
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].ID < routes[j].ID })

	for i := range routes {
		r := routes[i]
		if strings.Contains(strings.ToLower(r.LongName), needle) ||
			strings.Contains(strings.ToLower(r.ShortName), needle) ||
			strings.Contains(strings.ToLower(r.ID), needle) {
			add(SearchResult{
				Kind:     SearchKindRoute,
				Title:    r.DisplayName(),
				Subtitle: "Route",
				Route:    &routes[i],
			})
		}
	}

	tripIDs := make([]string, 0, len(s.trips))
	for id := range s.trips {
		tripIDs = append(tripIDs, id)
	}
	sort.Strings(tripIDs)

	// Trains by number, when the query looks like one.
	number := trainNumberCandidate(query)
	numberMatched := map[string]bool{}
	if number != "" {
		found := 0
		for _, tripID := range tripIDs {
			if found >= trainNumberMatchLimit {
				break
			}
			trip := s.trips[tripID]
			if trip.ShortName != number {
				continue
			}
			found++
			numberMatched[tripID] = true
			add(SearchResult{
				Kind:        SearchKindTrain,
				Title:       s.trainTitleLocked(trip, number),
				Subtitle:    fmt.Sprintf("Train %s", number),
				TripID:      tripID,
				TrainNumber: number,
			})
		}
	}

	// Trains by stops they call at: typing "Xenia" finds every
	// train that stops at Xenia, tagged with that stop.
	for _, tripID := range tripIDs {
		trip := s.trips[tripID]
		seenStops := map[string]bool{}
		for _, st := range s.stopTimesByTrip[tripID] {
			if seenStops[st.StopID] {
				continue
			}
			seenStops[st.StopID] = true

			stop, ok := s.stops[st.StopID]
			if !ok || !strings.Contains(strings.ToLower(stop.Name), needle) {
				continue
			}
			stopCopy := stop
			num := s.trainNumberLocked(tripID)
			add(SearchResult{
				Kind:        SearchKindTrain,
				Title:       s.trainTitleLocked(trip, num),
				Subtitle:    fmt.Sprintf("Stops at %s", stop.Name),
				TripID:      tripID,
				Stop:        &stopCopy,
				TrainNumber: num,
			})
		}

		// Legacy feeds encode the number only in the trip id
		// suffix.
		if number != "" && !numberMatched[tripID] && strings.HasSuffix(tripID, number) &&
			trailingDigits(tripID) == number {
			add(SearchResult{
				Kind:        SearchKindTrain,
				Title:       s.trainTitleLocked(trip, number),
				Subtitle:    fmt.Sprintf("Train %s", number),
				TripID:      tripID,
				TrainNumber: number,
			})
		}
	}

	if len(results) > SearchResultLimit {
		results = results[:SearchResultLimit]
	}
	return results
}

func (s *Store) trainNumberLocked(tripID string) string {
	if t, ok := s.trips[tripID]; ok && t.ShortName != "" {
		return t.ShortName
	}
	if num := trailingDigits(tripID); num != "" {
		return num
	}
	return tripID
}

func (s *Store) trainTitleLocked(trip model.Trip, number string) string {
	if route, ok := s.routes[trip.RouteID]; ok && route.LongName != "" {
		return fmt.Sprintf("%s %s", route.LongName, number)
	}
	return fmt.Sprintf("Train %s", number)
}

// trainNumberCandidate classifies a query as a potential train
// number. Three forms qualify: "amt<digits>" (any case), a purely
// numeric query, and a letters-prefix glued to 1-4 digits (a route
// nickname plus number). Returns "" when the query is none of these.
func trainNumberCandidate(query string) string {
	lower := strings.ToLower(query)

	if strings.HasPrefix(lower, "amt") {
		rest := lower[3:]
		if rest != "" && allDigits(rest) {
			return rest
		}
		return ""
	}

	if allDigits(lower) {
		return lower
	}

	i := 0
	for i < len(lower) && lower[i] >= 'a' && lower[i] <= 'z' {
		i++
	}
	if i > 0 && i < len(lower) {
		rest := lower[i:]
		if len(rest) >= 1 && len(rest) <= 4 && allDigits(rest) {
			return rest
		}
	}

	return ""
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
