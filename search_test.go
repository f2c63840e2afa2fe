package schedule_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schedule "railboard.dev/schedule"
	"railboard.dev/schedule/testutil"
)

func searchStore(t *testing.T) *schedule.Store {
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
			"t_99,r1,daily,99",
			"legacy_123,r2,daily,",
		},
		"stop_times.txt": {
			"trip_id,stop_id,arrival_time,departure_time,stop_sequence",
			"t_99,NYP,10:00:00,10:05:00,1",
			"t_99,PHL,11:15:00,11:20:00,2",
			"t_99,WAS,12:30:00,12:30:00,3",
			"legacy_123,BOS,08:00:00,08:00:00,1",
			"legacy_123,NYP,12:00:00,12:00:00,2",
		},
	})
}

func TestSearchStationByName(t *testing.T) {
	store := searchStore(t)

	results := store.Search("washington")
	require.Len(t, results, 1)
	assert.Equal(t, schedule.SearchKindStation, results[0].Kind)
	assert.Equal(t, "Washington Union", results[0].Title)
	assert.Equal(t, "Station", results[0].Subtitle)
	require.NotNil(t, results[0].Stop)
	assert.Equal(t, "WAS", results[0].Stop.ID)

	// Matching is case-insensitive and ignores surrounding space.
	assert.Equal(t, results, store.Search("  WASHINGTON  "))
}

func TestSearchStationByCode(t *testing.T) {
	store := searchStore(t)

	// "phl" appears nowhere in the stop name, only in the code.
	results := store.Search("phl")
	var station *schedule.SearchResult
	for i := range results {
		if results[i].Kind == schedule.SearchKindStation {
			station = &results[i]
		}
	}
	require.NotNil(t, station)
	assert.Equal(t, "Philadelphia 30th St", station.Title)
	assert.Equal(t, "Station code PHL", station.Subtitle)
}

func TestSearchStationNameWinsOverCode(t *testing.T) {
	store := searchStore(t)

	// "bos" matches both the name and the code of Boston South
	// Station. Only the name form is listed.
	count := 0
	for _, r := range store.Search("bos") {
		if r.Kind == schedule.SearchKindStation && r.Stop.ID == "BOS" {
			count++
			assert.Equal(t, "Station", r.Subtitle)
		}
	}
	assert.Equal(t, 1, count)
}

func TestSearchRoute(t *testing.T) {
	store := searchStore(t)

	results := store.Search("acela")
	require.Len(t, results, 1)
	assert.Equal(t, schedule.SearchKindRoute, results[0].Kind)
	assert.Equal(t, "Acela", results[0].Title)
	assert.Equal(t, "Route", results[0].Subtitle)
	require.NotNil(t, results[0].Route)
	assert.Equal(t, "r1", results[0].Route.ID)
}

func TestSearchTrainByNumber(t *testing.T) {
	store := searchStore(t)

	for _, query := range []string{"99", "amt99", "AMT99", "acela99"} {
		results := store.Search(query)
		require.Len(t, results, 1, "query %q", query)
		assert.Equal(t, schedule.SearchKindTrain, results[0].Kind)
		assert.Equal(t, "Acela 99", results[0].Title)
		assert.Equal(t, "Train 99", results[0].Subtitle)
		assert.Equal(t, "t_99", results[0].TripID)
		assert.Equal(t, "99", results[0].TrainNumber)
	}
}

func TestSearchTrainByTripIDSuffix(t *testing.T) {
	store := searchStore(t)

	// legacy_123 has no short name; the number lives in the id.
	results := store.Search("123")
	require.Len(t, results, 1)
	assert.Equal(t, schedule.SearchKindTrain, results[0].Kind)
	assert.Equal(t, "Cardinal 123", results[0].Title)
	assert.Equal(t, "legacy_123", results[0].TripID)
	assert.Equal(t, "123", results[0].TrainNumber)
}

func TestSearchTrainsByStopName(t *testing.T) {
	store := searchStore(t)

	results := store.Search("philadelphia")

	var train *schedule.SearchResult
	for i := range results {
		if results[i].Kind == schedule.SearchKindTrain {
			train = &results[i]
		}
	}
	require.NotNil(t, train)
	assert.Equal(t, "Acela 99", train.Title)
	assert.Equal(t, "Stops at Philadelphia 30th St", train.Subtitle)
	assert.Equal(t, "t_99", train.TripID)
	require.NotNil(t, train.Stop)
	assert.Equal(t, "PHL", train.Stop.ID)
}

func TestSearchNoMatches(t *testing.T) {
	store := searchStore(t)

	assert.Empty(t, store.Search("zanzibar"))
	assert.Empty(t, store.Search("amtrak"))
	assert.Empty(t, store.Search(""))
	assert.Empty(t, store.Search("   "))
}

func TestSearchResultCap(t *testing.T) {
	stops := []string{"stop_id,stop_name,stop_lat,stop_lon"}
	for i := 0; i < schedule.SearchResultLimit+10; i++ {
		stops = append(stops, fmt.Sprintf("h%02d,Halt %02d,40.0,-74.0", i, i))
	}
	store := testutil.LoadStore(t, map[string][]string{"stops.txt": stops})

	assert.Len(t, store.Search("halt"), schedule.SearchResultLimit)
}

func TestSearchTrainNumberMatchLimit(t *testing.T) {
	trips := []string{"trip_id,route_id,service_id,trip_short_name"}
	stopTimes := []string{"trip_id,stop_id,arrival_time,departure_time,stop_sequence"}
	for i := 0; i < 8; i++ {
		trips = append(trips, fmt.Sprintf("day%d_x,r1,s%d,7", i, i))
		stopTimes = append(stopTimes, fmt.Sprintf("day%d_x,NYP,10:00:00,10:00:00,1", i))
	}
	store := testutil.LoadStore(t, map[string][]string{
		"routes.txt": {"route_id,route_long_name,route_type", "r1,Acela,2"},
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon",
			"NYP,New York Penn,40.75,-73.99",
		},
		"trips.txt":      trips,
		"stop_times.txt": stopTimes,
	})

	count := 0
	for _, r := range store.Search("7") {
		if r.Kind == schedule.SearchKindTrain {
			count++
		}
	}
	assert.Equal(t, 5, count)
}
