package parse

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"railboard.dev/schedule/model"
)

type StopCSV struct {
	ID                 string  `csv:"stop_id"`
	Code               string  `csv:"stop_code"`
	Name               string  `csv:"stop_name"`
	Lat                float64 `csv:"stop_lat"`
	Lon                float64 `csv:"stop_lon"`
	ParentStation      string  `csv:"parent_station"`
	PlatformCode       string  `csv:"platform_code"`
	WheelchairBoarding int8    `csv:"wheelchair_boarding"`
}

func ParseStops(data io.Reader) ([]model.Stop, error) {
	stopCsv := []*StopCSV{}
	if err := gocsv.Unmarshal(data, &stopCsv); err != nil {
		return nil, errors.Wrap(err, "unmarshaling stops csv")
	}

	stops := []model.Stop{}
	for _, st := range stopCsv {
		if st.ID == "" {
			continue
		}
		if st.Lat < -90 || st.Lat > 90 || st.Lon < -180 || st.Lon > 180 {
			continue
		}

		stops = append(stops, model.Stop{
			ID:                 st.ID,
			Code:               st.Code,
			Name:               st.Name,
			Lat:                st.Lat,
			Lon:                st.Lon,
			ParentStation:      st.ParentStation,
			PlatformCode:       st.PlatformCode,
			WheelchairBoarding: st.WheelchairBoarding,
		})
	}

	return stops, nil
}
