package schedule

import (
	"math"
	"sort"

	"github.com/tidwall/rtree"

	"railboard.dev/schedule/model"
)

// StationIndex answers viewport queries over stations. Stations are
// single points, so the query is point-in-padded-rectangle rather
// than box intersection. Unlike shapes there can be thousands of
// entries, so points live in an R-tree.
type StationIndex struct {
	tree  rtree.RTree
	count int
}

func NewStationIndex(stops []model.Stop) *StationIndex {
	ix := &StationIndex{}
	for _, stop := range stops {
		if stop.ID == "" {
			continue
		}
		// For points, min and max are the same [lat, lon].
		ix.tree.Insert(
			[2]float64{stop.Lat, stop.Lon},
			[2]float64{stop.Lat, stop.Lon},
			stop,
		)
		ix.count++
	}
	return ix
}

// VisibleStations returns every station inside the viewport after
// padding, sorted by stop id. Padding defaults to
// DefaultStationPadding when omitted.
func (ix *StationIndex) VisibleStations(viewport Viewport, padding ...float64) []model.Stop {
	pad := DefaultStationPadding
	if len(padding) > 0 {
		pad = padding[0]
	}
	padded := viewport.Pad(pad)

	minLat := math.Min(padded.MinLat, padded.MaxLat)
	maxLat := math.Max(padded.MinLat, padded.MaxLat)
	minLon := math.Min(padded.MinLon, padded.MaxLon)
	maxLon := math.Max(padded.MinLon, padded.MaxLon)

	stops := []model.Stop{}
	ix.tree.Search(
		[2]float64{minLat, minLon},
		[2]float64{maxLat, maxLon},
		func(min, max [2]float64, value interface{}) bool {
			if stop, ok := value.(model.Stop); ok {
				stops = append(stops, stop)
			}
			return true
		},
	)

	sort.Slice(stops, func(i, j int) bool {
		return stops[i].ID < stops[j].ID
	})
	return stops
}

// Nearby returns stations ordered by distance from lat,lon. If limit
// is >0, at most limit stations are returned.
func (ix *StationIndex) Nearby(lat, lon float64, limit int) []model.Stop {
	stops := []model.Stop{}
	ix.tree.Scan(func(min, max [2]float64, value interface{}) bool {
		if stop, ok := value.(model.Stop); ok {
			stops = append(stops, stop)
		}
		return true
	})

	sort.Slice(stops, func(i, j int) bool {
		di := HaversineDistance(lat, lon, stops[i].Lat, stops[i].Lon)
		dj := HaversineDistance(lat, lon, stops[j].Lat, stops[j].Lon)
		return di < dj
	})

	if limit > 0 && len(stops) > limit {
		stops = stops[:limit]
	}
	return stops
}

type StationStats struct {
	StationCount int
}

func (ix *StationIndex) Stats() StationStats {
	return StationStats{StationCount: ix.count}
}

// HaversineDistance returns the great-circle distance between two
// points, in kilometers.
func HaversineDistance(aLat, aLon, bLat, bLon float64) float64 {
	const earthRadiusKm = 6371

	aLatRad := aLat * math.Pi / 180
	aLonRad := aLon * math.Pi / 180
	bLatRad := bLat * math.Pi / 180
	bLonRad := bLon * math.Pi / 180
	deltaLat := aLatRad - bLatRad
	deltaLon := aLonRad - bLonRad

	a := math.Cos(aLatRad)*math.Cos(bLatRad)*math.Pow(math.Sin(deltaLon/2), 2) + math.Pow(math.Sin(deltaLat/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return c * earthRadiusKm
}
