package model

import (
	"fmt"
	"strconv"
	"time"
)

// Holds all external facing types and constants.

type RouteType int

const (
	RouteTypeTram       RouteType = 0
	RouteTypeSubway               = 1
	RouteTypeRail                 = 2
	RouteTypeBus                  = 3
	RouteTypeFerry                = 4
	RouteTypeCable                = 5
	RouteTypeAerial               = 6
	RouteTypeFunicular            = 7
	RouteTypeTrolleybus           = 11
	RouteTypeMonorail             = 12
)

type Route struct {
	ID        string
	ShortName string
	LongName  string
	Type      RouteType
	Color     string
	TextColor string
}

// DisplayName prefers the rider-facing long name.
func (r Route) DisplayName() string {
	if r.LongName != "" {
		return r.LongName
	}
	if r.ShortName != "" {
		return r.ShortName
	}
	return r.ID
}

type Stop struct {
	ID                 string
	Code               string
	Name               string
	Lat                float64
	Lon                float64
	ParentStation      string
	PlatformCode       string
	WheelchairBoarding int8
}

type Trip struct {
	ID          string
	RouteID     string
	ServiceID   string
	Headsign    string
	ShortName   string
	DirectionID int8
	ShapeID     string
}

// Arrival and Departure are "HHMMSS" strings, directly comparable and
// sortable. Hours may exceed 23 for trips crossing midnight.
type StopTime struct {
	TripID       string
	StopID       string
	StopSequence uint32
	Arrival      string
	Departure    string
	Headsign     string
	PickupType   int8
	DropOffType  int8
	Timepoint    int8
}

func (st *StopTime) ArrivalTime() time.Duration {
	return hhmmssDuration(st.Arrival)
}

func (st *StopTime) DepartureTime() time.Duration {
	return hhmmssDuration(st.Departure)
}

func hhmmssDuration(s string) time.Duration {
	if len(s) < 6 {
		return 0
	}
	h, _ := strconv.Atoi(s[0:2])
	m, _ := strconv.Atoi(s[2:4])
	sec, _ := strconv.Atoi(s[4:6])
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second
}

// HHMMSS translates a time offset into a GTFS style HHMMSS string.
func HHMMSS(offset time.Duration) string {
	if offset < 0 {
		offset = 0
	}
	h := int(offset.Hours())
	m := int(offset.Minutes()) - h*60
	s := int(offset.Seconds()) - h*3600 - m*60
	return fmt.Sprintf("%02d%02d%02d", h, m, s)
}

// One point along a route's physical path. A shape is the sequence of
// its points ordered by Sequence.
type ShapePoint struct {
	ShapeID      string
	Lat          float64
	Lon          float64
	Sequence     uint32
	DistTraveled float64
}

// A minimal persisted pointer to a trip, optionally narrowed to a
// segment and pinned to a travel date. Everything else is rebuilt
// from the feed; this is the only entity that survives restarts.
//
// FromStopID and ToStopID both blank means the whole trip. A zero
// TravelDate means no date was chosen.
type SavedTrainRef struct {
	TripID     string
	FromStopID string
	ToStopID   string
	TravelDate time.Time
	SavedAt    time.Time
}

// Duplicate reports whether two refs identify the same saved trip:
// equal on (TripID, FromStopID, ToStopID, TravelDate). SavedAt is not
// part of identity.
func (r SavedTrainRef) Duplicate(other SavedTrainRef) bool {
	return r.TripID == other.TripID &&
		r.FromStopID == other.FromStopID &&
		r.ToStopID == other.ToStopID &&
		r.TravelDate.Equal(other.TravelDate)
}
