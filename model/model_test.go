package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRouteDisplayName(t *testing.T) {
	assert.Equal(t, "Acela", Route{ID: "r1", ShortName: "AC", LongName: "Acela"}.DisplayName())
	assert.Equal(t, "AC", Route{ID: "r1", ShortName: "AC"}.DisplayName())
	assert.Equal(t, "r1", Route{ID: "r1"}.DisplayName())
}

func TestStopTimeDurations(t *testing.T) {
	st := StopTime{Arrival: "101500", Departure: "102000"}
	assert.Equal(t, 10*time.Hour+15*time.Minute, st.ArrivalTime())
	assert.Equal(t, 10*time.Hour+20*time.Minute, st.DepartureTime())

	// Past-midnight hours keep counting.
	late := StopTime{Arrival: "250030"}
	assert.Equal(t, 25*time.Hour+30*time.Second, late.ArrivalTime())

	blank := StopTime{}
	assert.Zero(t, blank.ArrivalTime())
}

func TestHHMMSS(t *testing.T) {
	assert.Equal(t, "101500", HHMMSS(10*time.Hour+15*time.Minute))
	assert.Equal(t, "250030", HHMMSS(25*time.Hour+30*time.Second))
	assert.Equal(t, "000000", HHMMSS(0))
	assert.Equal(t, "000000", HHMMSS(-time.Minute))

	// Round trip with the parsed form.
	st := StopTime{Arrival: "123456"}
	assert.Equal(t, "123456", HHMMSS(st.ArrivalTime()))
}

func TestSavedTrainRefDuplicate(t *testing.T) {
	travel := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
	a := SavedTrainRef{TripID: "t_99", FromStopID: "NYP", ToStopID: "WAS", TravelDate: travel}

	b := a
	b.SavedAt = time.Now()
	assert.True(t, a.Duplicate(b), "SavedAt is not part of identity")

	c := a
	c.ToStopID = "PHL"
	assert.False(t, a.Duplicate(c))

	d := a
	d.TravelDate = travel.Add(24 * time.Hour)
	assert.False(t, a.Duplicate(d))

	// Same instant in a different zone is still the same date.
	e := a
	e.TravelDate = travel.In(time.FixedZone("EST", -5*3600))
	assert.True(t, a.Duplicate(e))
}
