package schedule

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"railboard.dev/schedule/parse"
)

// A live vehicle position.
type Position struct {
	Lat       float64
	Lon       float64
	Bearing   float64
	Speed     float64
	Timestamp time.Time
}

// A train currently reporting a position, keyed by its rider-facing
// number.
type ActiveTrain struct {
	TrainNumber string
	Position    Position
}

// One live delay report for a trip, optionally pinned to a stop.
type DelayUpdate struct {
	StopID         string
	ArrivalDelay   time.Duration
	DepartureDelay time.Duration
}

// LiveFeed is the narrow interface the resolver consumes for live
// overlay data. All of it is best-effort: absence of data is never an
// error.
type LiveFeed interface {
	PositionForTrip(tripID string) (Position, bool)
	AllActiveTrains() []ActiveTrain
	AllUpdates() map[string][]DelayUpdate
	ClearCache()
}

// Realtime implements LiveFeed on top of parsed GTFS Realtime feeds.
// The caller owns the polling cadence; each Update call replaces the
// cached state wholesale.
type Realtime struct {
	store *Store

	mu        sync.RWMutex
	updates   map[string][]DelayUpdate
	positions map[string]Position
}

func NewRealtime(store *Store) *Realtime {
	return &Realtime{
		store:     store,
		updates:   map[string][]DelayUpdate{},
		positions: map[string]Position{},
	}
}

// Update parses the given realtime feeds and replaces the cache.
func (rt *Realtime) Update(feeds [][]byte) error {
	parsed, err := parse.ParseRealtime(feeds)
	if err != nil {
		return fmt.Errorf("parsing realtime feeds: %w", err)
	}

	updates := map[string][]DelayUpdate{}
	for _, u := range parsed.Updates {
		updates[u.TripID] = append(updates[u.TripID], DelayUpdate{
			StopID:         u.StopID,
			ArrivalDelay:   u.ArrivalDelay,
			DepartureDelay: u.DepartureDelay,
		})
	}

	positions := map[string]Position{}
	for _, p := range parsed.Positions {
		positions[p.TripID] = Position{
			Lat:       p.Lat,
			Lon:       p.Lon,
			Bearing:   p.Bearing,
			Speed:     p.Speed,
			Timestamp: p.Timestamp,
		}
	}

	rt.mu.Lock()
	rt.updates = updates
	rt.positions = positions
	rt.mu.Unlock()

	return nil
}

func (rt *Realtime) PositionForTrip(tripID string) (Position, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	p, ok := rt.positions[tripID]
	return p, ok
}

func (rt *Realtime) AllActiveTrains() []ActiveTrain {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	trains := make([]ActiveTrain, 0, len(rt.positions))
	for tripID, pos := range rt.positions {
		trains = append(trains, ActiveTrain{
			TrainNumber: rt.store.TrainNumber(tripID),
			Position:    pos,
		})
	}
	sort.Slice(trains, func(i, j int) bool {
		return trains[i].TrainNumber < trains[j].TrainNumber
	})
	return trains
}

func (rt *Realtime) AllUpdates() map[string][]DelayUpdate {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	out := make(map[string][]DelayUpdate, len(rt.updates))
	for tripID, us := range rt.updates {
		out[tripID] = append([]DelayUpdate{}, us...)
	}
	return out
}

func (rt *Realtime) ClearCache() {
	rt.mu.Lock()
	rt.updates = map[string][]DelayUpdate{}
	rt.positions = map[string]Position{}
	rt.mu.Unlock()
}
