package schedule

import (
	"sort"

	"railboard.dev/schedule/model"
)

const (
	// Default viewport padding, in degrees. Shapes are linear and
	// need less slack than point stations to avoid pop-in while
	// panning.
	DefaultShapePadding   = 0.1
	DefaultStationPadding = 0.15
)

// A map viewport in geographic coordinates.
type Viewport struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Pad expands the viewport symmetrically by degrees in every
// direction.
func (v Viewport) Pad(degrees float64) Viewport {
	return Viewport{
		MinLat: v.MinLat - degrees,
		MaxLat: v.MaxLat + degrees,
		MinLon: v.MinLon - degrees,
		MaxLon: v.MaxLon + degrees,
	}
}

// Contains reports whether the point lies inside the viewport.
// Points on the edge count as inside.
func (v Viewport) Contains(lat, lon float64) bool {
	return lat >= v.MinLat && lat <= v.MaxLat &&
		lon >= v.MinLon && lon <= v.MaxLon
}

// Intersects is the standard 4-inequality box test: two boxes
// intersect unless one is strictly above, below, left or right of the
// other. Touching edges count as intersecting.
func (v Viewport) Intersects(o Viewport) bool {
	if o.MinLat > v.MaxLat || o.MaxLat < v.MinLat {
		return false
	}
	if o.MinLon > v.MaxLon || o.MaxLon < v.MinLon {
		return false
	}
	return true
}

// A route's physical path with its precomputed bounding box.
type Shape struct {
	ID     string
	Points []model.ShapePoint
	Bounds Viewport
}

// ShapeIndex answers "which route shapes are visible in this
// viewport" queries. Each shape's axis-aligned bounding box is
// computed once at build time; queries are a linear scan over the
// boxes. A national passenger network has on the order of a few
// hundred shapes, so a tree index would add complexity without
// measurable benefit.
type ShapeIndex struct {
	shapes []Shape
}

func NewShapeIndex(shapes map[string][]model.ShapePoint) *ShapeIndex {
	ix := &ShapeIndex{}
	for id, pts := range shapes {
		if len(pts) == 0 {
			continue
		}
		bounds := Viewport{
			MinLat: pts[0].Lat, MaxLat: pts[0].Lat,
			MinLon: pts[0].Lon, MaxLon: pts[0].Lon,
		}
		for _, p := range pts[1:] {
			if p.Lat < bounds.MinLat {
				bounds.MinLat = p.Lat
			}
			if p.Lat > bounds.MaxLat {
				bounds.MaxLat = p.Lat
			}
			if p.Lon < bounds.MinLon {
				bounds.MinLon = p.Lon
			}
			if p.Lon > bounds.MaxLon {
				bounds.MaxLon = p.Lon
			}
		}
		ix.shapes = append(ix.shapes, Shape{ID: id, Points: pts, Bounds: bounds})
	}
	sort.Slice(ix.shapes, func(i, j int) bool {
		return ix.shapes[i].ID < ix.shapes[j].ID
	})
	return ix
}

// VisibleShapes returns every shape whose bounding box intersects the
// viewport after padding. Matching shapes are returned in full;
// clipping and detail reduction are presentation concerns. Padding
// defaults to DefaultShapePadding when omitted.
func (ix *ShapeIndex) VisibleShapes(viewport Viewport, padding ...float64) []Shape {
	pad := DefaultShapePadding
	if len(padding) > 0 {
		pad = padding[0]
	}
	padded := viewport.Pad(pad)

	visible := []Shape{}
	for _, sh := range ix.shapes {
		if padded.Intersects(sh.Bounds) {
			visible = append(visible, sh)
		}
	}
	return visible
}

// AllShapes returns every shape irrespective of viewport.
func (ix *ShapeIndex) AllShapes() []Shape {
	return append([]Shape{}, ix.shapes...)
}

// Diagnostic counters for the shape index. MinPoints and MaxPoints
// are zero when the index is empty.
type ShapeStats struct {
	ShapeCount int
	PointCount int
	AvgPoints  float64
	MinPoints  int
	MaxPoints  int
}

func (ix *ShapeIndex) Stats() ShapeStats {
	stats := ShapeStats{ShapeCount: len(ix.shapes)}
	for i, sh := range ix.shapes {
		n := len(sh.Points)
		stats.PointCount += n
		if i == 0 || n < stats.MinPoints {
			stats.MinPoints = n
		}
		if n > stats.MaxPoints {
			stats.MaxPoints = n
		}
	}
	if stats.ShapeCount > 0 {
		stats.AvgPoints = float64(stats.PointCount) / float64(stats.ShapeCount)
	}
	return stats
}
