package parse

import (
	"fmt"
	"time"

	gtfsproto "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	proto "google.golang.org/protobuf/proto"
)

// One stop level delay report from a trip update entity.
type StopTimeUpdate struct {
	TripID         string
	StopID         string
	StopSequence   uint32
	ArrivalDelay   time.Duration
	DepartureDelay time.Duration
}

// One vehicle position report.
type VehiclePosition struct {
	TripID    string
	Lat       float64
	Lon       float64
	Bearing   float64
	Speed     float64
	Timestamp time.Time
}

// Contains key data from a set of realtime feeds: delay updates and
// vehicle positions. If loaded from multiple feeds, the last
// timestamp wins.
type Realtime struct {
	Timestamp uint64
	Updates   []*StopTimeUpdate
	Positions []*VehiclePosition
}

func ParseRealtime(feeds [][]byte) (*Realtime, error) {
	rt := &Realtime{
		Updates:   []*StopTimeUpdate{},
		Positions: []*VehiclePosition{},
	}

	for _, feed := range feeds {
		f := &gtfsproto.FeedMessage{}
		err := proto.Unmarshal(feed, f)
		if err != nil {
			return nil, fmt.Errorf("unmarshaling protobuf: %w", err)
		}

		header := f.GetHeader()

		version := header.GetGtfsRealtimeVersion()
		if version != "2.0" && version != "1.0" {
			return nil, fmt.Errorf("version %s not supported", version)
		}

		if header.GetIncrementality() != gtfsproto.FeedHeader_FULL_DATASET {
			return nil, fmt.Errorf("feed incrementality %s not supported", header.GetIncrementality())
		}

		rt.Timestamp = header.GetTimestamp()

		for _, entity := range f.GetEntity() {
			processTripUpdate(rt, entity.GetTripUpdate())
			processVehiclePosition(rt, entity.GetVehicle())
		}
	}

	return rt, nil
}

func processTripUpdate(rt *Realtime, tu *gtfsproto.TripUpdate) {
	if tu == nil {
		return
	}

	trip := tu.GetTrip()
	if trip.GetTripId() == "" {
		// Blank trip ID is allowed when the (route_id,
		// direction_id, start_time, start_date) tuple uniquely
		// identifies the trip. We don't support that.
		return
	}
	if trip.GetScheduleRelationship() != gtfsproto.TripDescriptor_SCHEDULED {
		return
	}

	for _, stu := range tu.GetStopTimeUpdate() {
		if stu.GetScheduleRelationship() != gtfsproto.TripUpdate_StopTimeUpdate_SCHEDULED {
			continue
		}

		update := &StopTimeUpdate{
			TripID:       trip.GetTripId(),
			StopID:       stu.GetStopId(),
			StopSequence: stu.GetStopSequence(),
		}
		if arrival := stu.GetArrival(); arrival != nil {
			update.ArrivalDelay = time.Duration(arrival.GetDelay()) * time.Second
		}
		if departure := stu.GetDeparture(); departure != nil {
			update.DepartureDelay = time.Duration(departure.GetDelay()) * time.Second
		}

		rt.Updates = append(rt.Updates, update)
	}
}

func processVehiclePosition(rt *Realtime, vp *gtfsproto.VehiclePosition) {
	if vp == nil {
		return
	}

	tripID := vp.GetTrip().GetTripId()
	pos := vp.GetPosition()
	if tripID == "" || pos == nil {
		return
	}

	rt.Positions = append(rt.Positions, &VehiclePosition{
		TripID:    tripID,
		Lat:       float64(pos.GetLatitude()),
		Lon:       float64(pos.GetLongitude()),
		Bearing:   float64(pos.GetBearing()),
		Speed:     float64(pos.GetSpeed()),
		Timestamp: time.Unix(int64(vp.GetTimestamp()), 0),
	})
}
