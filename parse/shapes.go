package parse

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"railboard.dev/schedule/model"
)

type ShapePointCSV struct {
	ShapeID      string  `csv:"shape_id"`
	Lat          float64 `csv:"shape_pt_lat"`
	Lon          float64 `csv:"shape_pt_lon"`
	Sequence     uint32  `csv:"shape_pt_sequence"`
	DistTraveled float64 `csv:"shape_dist_traveled"`
}

func ParseShapes(data io.Reader) (map[string][]model.ShapePoint, error) {
	shapes := map[string][]model.ShapePoint{}

	err := gocsv.UnmarshalToCallbackWithError(data, func(p *ShapePointCSV) error {
		if p.ShapeID == "" {
			return nil
		}
		if p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
			return nil
		}

		shapes[p.ShapeID] = append(shapes[p.ShapeID], model.ShapePoint{
			ShapeID:      p.ShapeID,
			Lat:          p.Lat,
			Lon:          p.Lon,
			Sequence:     p.Sequence,
			DistTraveled: p.DistTraveled,
		})

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling shapes csv")
	}

	return shapes, nil
}
