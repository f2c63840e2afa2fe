package parse

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/spkg/bom"

	"railboard.dev/schedule/model"
)

// The collections a parsed static feed loads into the schedule store.
type Feed struct {
	Routes          []model.Route
	Stops           []model.Stop
	Trips           []model.Trip
	StopTimesByTrip map[string][]model.StopTime
	Shapes          map[string][]model.ShapePoint
}

// ParseStatic reads a zipped static feed. routes.txt, stops.txt,
// trips.txt and stop_times.txt are required; shapes.txt is optional.
// Rows missing their primary key are skipped rather than failing the
// whole feed, since the engine must stay usable on sloppy feeds.
func ParseStatic(buf []byte) (*Feed, error) {
	file := map[string]io.ReadCloser{
		"routes.txt":     nil,
		"stops.txt":      nil,
		"trips.txt":      nil,
		"stop_times.txt": nil,
		"shapes.txt":     nil,
	}

	defer func() {
		for _, rc := range file {
			if rc != nil {
				rc.Close()
			}
		}
	}()

	r, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, errors.Wrap(err, "unzipping")
	}

	for _, f := range r.File {
		// There should not be any subdirectories. But, some
		// agencies don't care.
		if f.FileInfo().IsDir() {
			continue
		}
		path := strings.Split(f.Name, "/")
		fName := path[len(path)-1]

		if _, found := file[fName]; !found {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", f.Name)
		}

		file[fName] = rc
	}

	for _, required := range []string{"routes.txt", "stops.txt", "trips.txt", "stop_times.txt"} {
		if file[required] == nil {
			return nil, errors.Errorf("missing %s", required)
		}
	}

	// LazyCSVReader required (at least) to survive sloppy use of
	// quotes. The BOM reader strips unicode BOMs if present.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return gocsv.LazyCSVReader(bom.NewReader(in))
	})

	feed := &Feed{
		StopTimesByTrip: map[string][]model.StopTime{},
		Shapes:          map[string][]model.ShapePoint{},
	}

	feed.Routes, err = ParseRoutes(file["routes.txt"])
	if err != nil {
		return nil, errors.Wrap(err, "parsing routes.txt")
	}

	feed.Stops, err = ParseStops(file["stops.txt"])
	if err != nil {
		return nil, errors.Wrap(err, "parsing stops.txt")
	}

	feed.Trips, err = ParseTrips(file["trips.txt"])
	if err != nil {
		return nil, errors.Wrap(err, "parsing trips.txt")
	}

	feed.StopTimesByTrip, err = ParseStopTimes(file["stop_times.txt"])
	if err != nil {
		return nil, errors.Wrap(err, "parsing stop_times.txt")
	}

	if file["shapes.txt"] != nil {
		feed.Shapes, err = ParseShapes(file["shapes.txt"])
		if err != nil {
			return nil, errors.Wrap(err, "parsing shapes.txt")
		}
	}

	return feed, nil
}
