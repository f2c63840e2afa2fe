package parse

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"railboard.dev/schedule/model"
)

type TripCSV struct {
	ID          string `csv:"trip_id"`
	RouteID     string `csv:"route_id"`
	ServiceID   string `csv:"service_id"`
	Headsign    string `csv:"trip_headsign"`
	ShortName   string `csv:"trip_short_name"`
	DirectionID int8   `csv:"direction_id"`
	ShapeID     string `csv:"shape_id"`
}

func ParseTrips(data io.Reader) ([]model.Trip, error) {
	tripCsv := []*TripCSV{}
	if err := gocsv.Unmarshal(data, &tripCsv); err != nil {
		return nil, errors.Wrap(err, "unmarshaling trips csv")
	}

	trips := []model.Trip{}
	for _, t := range tripCsv {
		if t.ID == "" {
			continue
		}

		// A dangling route_id is tolerated; the store treats the
		// route lookup as optional.
		trips = append(trips, model.Trip{
			ID:          t.ID,
			RouteID:     t.RouteID,
			ServiceID:   t.ServiceID,
			Headsign:    t.Headsign,
			ShortName:   t.ShortName,
			DirectionID: t.DirectionID,
			ShapeID:     t.ShapeID,
		})
	}

	return trips, nil
}
