package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schedule "railboard.dev/schedule"
	"railboard.dev/schedule/model"
	"railboard.dev/schedule/testutil"
)

func testStore(t *testing.T) *schedule.Store {
	return testutil.LoadStore(t, map[string][]string{
		"routes.txt": {
			"route_id,route_long_name,route_type",
			"r1,Acela,2",
			"r2,Cardinal,2",
		},
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon",
			"NYP,New York Penn,40.75,-73.99",
			"PHL,Philadelphia 30th St,39.95,-75.18",
			"WAS,Washington Union,38.89,-77.00",
			"BOS,Boston South Station,42.35,-71.05",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_short_name",
			"t1,r1,daily,99",
			"t2,r2,daily,",
		},
		"stop_times.txt": {
			"trip_id,stop_id,arrival_time,departure_time,stop_sequence",
			// Deliberately out of order, with gaps in the sequence.
			"t1,WAS,12:30:00,12:30:00,30",
			"t1,NYP,10:00:00,10:05:00,1",
			"t1,PHL,11:15:00,11:20:00,15",
			"t2,BOS,08:00:00,08:00:00,1",
			"t2,NYP,12:00:00,12:10:00,2",
		},
	})
}

func TestStoreReadiness(t *testing.T) {
	store := testStore(t)
	assert.True(t, store.IsReady())

	empty := schedule.NewStore()
	assert.False(t, empty.IsReady())
	assert.Equal(t, []schedule.SearchResult{}, empty.Search("anything"))

	store.Clear()
	assert.False(t, store.IsReady())
	assert.Empty(t, store.StopTimesForTrip("t1"))
}

func TestStoreLoadSkipsEmptyKeys(t *testing.T) {
	store := schedule.NewStore()
	store.Load(
		[]model.Route{{ID: "", LongName: "nameless"}, {ID: "r1", LongName: "Acela"}},
		[]model.Stop{{ID: "", Name: "nowhere"}, {ID: "NYP", Name: "New York Penn"}},
		map[string][]model.StopTime{
			"":   {{TripID: "", StopID: "NYP"}},
			"t1": {{TripID: "t1", StopID: ""}, {TripID: "t1", StopID: "NYP", StopSequence: 1}},
		},
		map[string][]model.ShapePoint{"": {{ShapeID: ""}}},
		[]model.Trip{{ID: ""}, {ID: "t1", RouteID: "r1"}},
	)

	assert.True(t, store.IsReady())
	assert.Len(t, store.Routes(), 1)
	assert.Len(t, store.Stops(), 1)
	assert.Equal(t, []string{"t1"}, store.TripIDs())

	calls := store.StopTimesForTrip("t1")
	require.Len(t, calls, 1)
	assert.Equal(t, "NYP", calls[0].StopID)
	assert.Empty(t, store.Shapes())
}

func TestStoreLookups(t *testing.T) {
	store := testStore(t)

	route, ok := store.Route("r1")
	require.True(t, ok)
	assert.Equal(t, "Acela", route.LongName)

	_, ok = store.Route("nope")
	assert.False(t, ok)

	stop, ok := store.Stop("BOS")
	require.True(t, ok)
	assert.Equal(t, "Boston South Station", stop.Name)

	trip, ok := store.Trip("t1")
	require.True(t, ok)
	assert.Equal(t, "r1", trip.RouteID)
}

func TestStopNameFallsBackToID(t *testing.T) {
	store := testStore(t)
	assert.Equal(t, "New York Penn", store.StopName("NYP"))
	assert.Equal(t, "XYZ", store.StopName("XYZ"))
}

func TestTrainNumber(t *testing.T) {
	store := testStore(t)

	// Short name when present.
	assert.Equal(t, "99", store.TrainNumber("t1"))

	// Trailing digits of the id when there's no short name. The
	// longest trailing run wins.
	assert.Equal(t, "2", store.TrainNumber("t2"))
	assert.Equal(t, "123", store.TrainNumber("mon_123"))

	// Neither: the id unchanged.
	assert.Equal(t, "no_digits", store.TrainNumber("no_digits"))
}

func TestStopTimesForTripSortedBySequence(t *testing.T) {
	store := testStore(t)

	calls := store.StopTimesForTrip("t1")
	require.Len(t, calls, 3)
	assert.Equal(t, "NYP", calls[0].StopID)
	assert.Equal(t, "PHL", calls[1].StopID)
	assert.Equal(t, "WAS", calls[2].StopID)
	assert.Equal(t, "New York Penn", calls[0].StopName)
	for i := 1; i < len(calls); i++ {
		assert.Less(t, calls[i-1].StopSequence, calls[i].StopSequence)
	}

	assert.Empty(t, store.StopTimesForTrip(""))
	assert.Empty(t, store.StopTimesForTrip("unknown"))
}

func TestIntermediateStops(t *testing.T) {
	store := testStore(t)

	intermediate := store.IntermediateStops("t1")
	require.Len(t, intermediate, 1)
	assert.Equal(t, "PHL", intermediate[0].StopID)

	// Two stops means nothing in between.
	assert.Empty(t, store.IntermediateStops("t2"))
}

func TestTripsForStop(t *testing.T) {
	store := testStore(t)

	assert.Equal(t, []string{"t1", "t2"}, store.TripsForStop("NYP"))
	assert.Equal(t, []string{"t1"}, store.TripsForStop("PHL"))
	assert.Empty(t, store.TripsForStop("unknown"))

	// Stable across calls on the same snapshot.
	assert.Equal(t, store.TripsForStop("NYP"), store.TripsForStop("NYP"))
}

func TestReloadReplacesSnapshot(t *testing.T) {
	store := testStore(t)
	require.True(t, store.IsReady())

	store.Load(
		[]model.Route{{ID: "r9", LongName: "Coast Starlight"}},
		[]model.Stop{{ID: "SEA", Name: "Seattle King St", Lat: 47.6, Lon: -122.3}},
		map[string][]model.StopTime{},
		map[string][]model.ShapePoint{},
		[]model.Trip{},
	)

	assert.True(t, store.IsReady())
	_, ok := store.Route("r1")
	assert.False(t, ok)
	assert.Equal(t, "SEA", store.StopName("SEA"))
	assert.Empty(t, store.StopTimesForTrip("t1"))
	assert.Equal(t, 1, store.StationIndex().Stats().StationCount)
}
