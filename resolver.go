package schedule

import (
	"math"
	"time"

	"railboard.dev/schedule/model"
)

// A saved reference reconstructed into a current itinerary. Origin
// and Destination reflect the saved segment when its endpoints still
// exist on the trip; Intermediate covers exactly the stops between
// them. Scheduled times are never overwritten by live data: Delay,
// LiveDeparture and LiveArrival sit alongside them.
type ResolvedTrip struct {
	Itinerary

	Ref model.SavedTrainRef

	// Travel date presentation, set when the ref carries a date.
	DateLabel string
	DaysAway  int

	// Live overlay, best-effort.
	HasLive       bool
	Delay         time.Duration
	LiveDeparture string
	LiveArrival   string
	Position      *Position
}

// Resolver reconstructs saved trip references against the current
// schedule snapshot, optionally overlaying live data. It never writes
// to reference storage; dropping a stale ref is the caller's call.
type Resolver struct {
	store *Store
	live  LiveFeed
}

// NewResolver creates a Resolver. live may be nil, in which case no
// overlay is attempted.
func NewResolver(store *Store, live LiveFeed) *Resolver {
	return &Resolver{store: store, live: live}
}

// Resolve rebuilds the full itinerary for a saved reference. Returns
// false when the referenced trip no longer exists in the current
// snapshot (removed or renumbered in a newer feed); the caller should
// drop or re-link the reference.
func (r *Resolver) Resolve(ref model.SavedTrainRef, now time.Time) (ResolvedTrip, bool) {
	it, ok := r.store.Itinerary(ref.TripID)
	if !ok {
		return ResolvedTrip{}, false
	}

	resolved := ResolvedTrip{Itinerary: it, Ref: ref}

	calls := r.store.StopTimesForTrip(ref.TripID)
	fromIdx := indexOfStop(calls, ref.FromStopID)
	toIdx := indexOfStop(calls, ref.ToStopID)

	// Endpoints saved out of order fall back to the whole trip.
	if fromIdx >= 0 && toIdx >= 0 && fromIdx >= toIdx {
		fromIdx, toIdx = -1, -1
	}

	// Override each side independently; a stop dropped from the
	// trip between feed versions silently keeps the natural
	// endpoint.
	if fromIdx >= 0 {
		resolved.Origin = calls[fromIdx]
	}
	if toIdx >= 0 {
		resolved.Destination = calls[toIdx]
	}

	// Only when both endpoints resolved and both differ from the
	// trip's natural ends does the itinerary represent a strict
	// sub-segment.
	if fromIdx > 0 && toIdx >= 0 && toIdx < len(calls)-1 {
		resolved.Intermediate = calls[fromIdx+1 : toIdx]
	}

	if !ref.TravelDate.IsZero() {
		resolved.DateLabel = ref.TravelDate.Format("Mon, Jan 2")
		resolved.DaysAway = daysBetween(now, ref.TravelDate)
	}

	if r.live != nil {
		r.overlay(&resolved)
	}

	return resolved, true
}

// ResolveAll resolves every reference and returns those that still
// resolve. Stale references are dropped from the output but not from
// storage; deletion is a separate, explicit operation.
func (r *Resolver) ResolveAll(refs []model.SavedTrainRef, now time.Time) []ResolvedTrip {
	resolved := []ResolvedTrip{}
	for _, ref := range refs {
		if rt, ok := r.Resolve(ref, now); ok {
			resolved = append(resolved, rt)
		}
	}
	return resolved
}

func (r *Resolver) overlay(resolved *ResolvedTrip) {
	updates := r.live.AllUpdates()[resolved.TripID]
	if len(updates) > 0 {
		update := updates[0]
		for _, u := range updates {
			if u.StopID == resolved.Origin.StopID || u.StopID == resolved.Destination.StopID {
				update = u
				break
			}
		}

		delay := update.DepartureDelay
		if delay == 0 {
			delay = update.ArrivalDelay
		}

		resolved.HasLive = true
		resolved.Delay = delay
		resolved.LiveDeparture = model.HHMMSS(resolved.Origin.DepartureTime() + delay)
		resolved.LiveArrival = model.HHMMSS(resolved.Destination.ArrivalTime() + delay)
	}

	if pos, ok := r.live.PositionForTrip(resolved.TripID); ok {
		resolved.HasLive = true
		resolved.Position = &pos
	}
}

func indexOfStop(calls []StopCall, stopID string) int {
	if stopID == "" {
		return -1
	}
	for i, c := range calls {
		if c.StopID == stopID {
			return i
		}
	}
	return -1
}

// daysBetween returns the signed calendar-day distance from now to
// then, both normalized to local midnight first. Negative means then
// is in the past.
func daysBetween(now, then time.Time) int {
	nowMidnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	thenLocal := then.In(now.Location())
	thenMidnight := time.Date(thenLocal.Year(), thenLocal.Month(), thenLocal.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Ceil(thenMidnight.Sub(nowMidnight).Hours() / 24))
}
