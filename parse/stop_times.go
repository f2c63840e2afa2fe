package parse

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"railboard.dev/schedule/model"
)

type StopTimeCSV struct {
	TripID        string `csv:"trip_id"`
	StopID        string `csv:"stop_id"`
	StopSequence  uint32 `csv:"stop_sequence"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	Headsign      string `csv:"stop_headsign"`
	PickupType    int8   `csv:"pickup_type"`
	DropOffType   int8   `csv:"drop_off_type"`
	Timepoint     int8   `csv:"timepoint"`
}

// parseStopTimeTime normalizes "H:MM:SS" or "HH:MM:SS" to the
// lexically sortable "HHMMSS" form. Hours beyond 23 are legal for
// trips crossing midnight.
func parseStopTimeTime(s string) (string, error) {
	split := strings.Split(s, ":")
	if len(split) != 3 {
		return "", fmt.Errorf("found %d parts in '%s'", len(split), s)
	}

	hms := [3]int{}
	for i, str := range split {
		j, err := strconv.Atoi(str)
		if err != nil {
			return "", fmt.Errorf("non-integer in '%s' pos %d", s, i)
		}
		hms[i] = j
	}

	if hms[0] < 0 || hms[0] > 99 {
		return "", fmt.Errorf("invalid hour in '%s'", s)
	}

	if hms[1] < 0 || hms[1] > 59 {
		return "", fmt.Errorf("invalid minute in '%s'", s)
	}

	if hms[2] < 0 || hms[2] > 59 {
		return "", fmt.Errorf("invalid second in '%s'", s)
	}

	return fmt.Sprintf("%02d%02d%02d", hms[0], hms[1], hms[2]), nil
}

func ParseStopTimes(data io.Reader) (map[string][]model.StopTime, error) {
	byTrip := map[string][]model.StopTime{}

	err := gocsv.UnmarshalToCallbackWithError(data, func(st *StopTimeCSV) error {
		if st.TripID == "" || st.StopID == "" {
			return nil
		}

		arrival, err := parseStopTimeTime(st.ArrivalTime)
		if err != nil {
			return nil
		}
		departure, err := parseStopTimeTime(st.DepartureTime)
		if err != nil {
			return nil
		}

		byTrip[st.TripID] = append(byTrip[st.TripID], model.StopTime{
			TripID:       st.TripID,
			StopID:       st.StopID,
			StopSequence: st.StopSequence,
			Arrival:      arrival,
			Departure:    departure,
			Headsign:     st.Headsign,
			PickupType:   st.PickupType,
			DropOffType:  st.DropOffType,
			Timepoint:    st.Timepoint,
		})

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling stop_times csv")
	}

	return byTrip, nil
}
