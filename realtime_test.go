package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	proto "google.golang.org/protobuf/proto"

	p "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	schedule "railboard.dev/schedule"
)

func realtimeFeed(t *testing.T) []byte {
	data, err := proto.Marshal(&p.FeedMessage{
		Header: &p.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Incrementality:      p.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(1702473763),
		},
		Entity: []*p.FeedEntity{
			{
				Id: proto.String("entity1"),
				TripUpdate: &p.TripUpdate{
					Trip: &p.TripDescriptor{
						TripId:               proto.String("t_99"),
						ScheduleRelationship: p.TripDescriptor_SCHEDULED.Enum(),
					},
					StopTimeUpdate: []*p.TripUpdate_StopTimeUpdate{
						{
							StopId:    proto.String("PHL"),
							Arrival:   &p.TripUpdate_StopTimeEvent{Delay: proto.Int32(300)},
							Departure: &p.TripUpdate_StopTimeEvent{Delay: proto.Int32(300)},
						},
					},
				},
			},
			{
				Id: proto.String("entity2"),
				Vehicle: &p.VehiclePosition{
					Trip: &p.TripDescriptor{TripId: proto.String("t_99")},
					Position: &p.Position{
						Latitude:  proto.Float32(39.9),
						Longitude: proto.Float32(-75.2),
					},
					Timestamp: proto.Uint64(1702473700),
				},
			},
			{
				Id: proto.String("entity3"),
				Vehicle: &p.VehiclePosition{
					Trip: &p.TripDescriptor{TripId: proto.String("legacy_123")},
					Position: &p.Position{
						Latitude:  proto.Float32(42.3),
						Longitude: proto.Float32(-71.1),
					},
				},
			},
		},
	})
	require.NoError(t, err)
	return data
}

func TestRealtimeUpdate(t *testing.T) {
	store := searchStore(t)
	rt := schedule.NewRealtime(store)

	// Nothing cached before the first update.
	_, ok := rt.PositionForTrip("t_99")
	assert.False(t, ok)
	assert.Empty(t, rt.AllActiveTrains())

	require.NoError(t, rt.Update([][]byte{realtimeFeed(t)}))

	pos, ok := rt.PositionForTrip("t_99")
	require.True(t, ok)
	assert.InDelta(t, 39.9, pos.Lat, 0.001)
	assert.InDelta(t, -75.2, pos.Lon, 0.001)
	assert.Equal(t, time.Unix(1702473700, 0), pos.Timestamp)

	updates := rt.AllUpdates()
	require.Len(t, updates["t_99"], 1)
	assert.Equal(t, "PHL", updates["t_99"][0].StopID)
	assert.Equal(t, 5*time.Minute, updates["t_99"][0].ArrivalDelay)
	assert.Equal(t, 5*time.Minute, updates["t_99"][0].DepartureDelay)
}

func TestRealtimeUpdateRejectsBadFeed(t *testing.T) {
	store := searchStore(t)
	rt := schedule.NewRealtime(store)

	require.NoError(t, rt.Update([][]byte{realtimeFeed(t)}))
	assert.Error(t, rt.Update([][]byte{[]byte("not a protobuf")}))

	// The previous cache survives a failed update.
	_, ok := rt.PositionForTrip("t_99")
	assert.True(t, ok)
}

func TestRealtimeAllActiveTrains(t *testing.T) {
	store := searchStore(t)
	rt := schedule.NewRealtime(store)
	require.NoError(t, rt.Update([][]byte{realtimeFeed(t)}))

	trains := rt.AllActiveTrains()
	require.Len(t, trains, 2)

	// Sorted by train number; the legacy trip's number comes from
	// its id suffix.
	assert.Equal(t, "123", trains[0].TrainNumber)
	assert.InDelta(t, 42.3, trains[0].Position.Lat, 0.001)
	assert.Equal(t, "99", trains[1].TrainNumber)
}

func TestRealtimeClearCache(t *testing.T) {
	store := searchStore(t)
	rt := schedule.NewRealtime(store)
	require.NoError(t, rt.Update([][]byte{realtimeFeed(t)}))

	rt.ClearCache()

	_, ok := rt.PositionForTrip("t_99")
	assert.False(t, ok)
	assert.Empty(t, rt.AllActiveTrains())
	assert.Empty(t, rt.AllUpdates())
}

func TestRealtimeReplacesCacheWholesale(t *testing.T) {
	store := searchStore(t)
	rt := schedule.NewRealtime(store)
	require.NoError(t, rt.Update([][]byte{realtimeFeed(t)}))

	// An empty feed wipes earlier positions and updates.
	empty, err := proto.Marshal(&p.FeedMessage{
		Header: &p.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Incrementality:      p.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(1702473999),
		},
	})
	require.NoError(t, err)
	require.NoError(t, rt.Update([][]byte{empty}))

	_, ok := rt.PositionForTrip("t_99")
	assert.False(t, ok)
	assert.Empty(t, rt.AllUpdates())
}
