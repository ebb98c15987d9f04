package geomhelp

import (
	"math"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/wkt"
	"github.com/muesli/reflow/truncate"
)

// from paulmach/orb
// Original implementation: http://rosettacode.org/wiki/Ray-casting_algorithm#Go
//
//nolint:cyclop,nestif
func RayIntersect(pt, start, end [2]float64) (intersects, on bool) {
	if start[0] > end[0] {
		start, end = end, start
	}

	if pt[0] == start[0] {
		if pt[1] == start[1] {
			// pt == start
			return false, true
		} else if start[0] == end[0] {
			// vertical segment (start -> end)
			// return true if within the line, check to see if start or end is greater.
			if start[1] > end[1] && start[1] >= pt[1] && pt[1] >= end[1] {
				return false, true
			}

			if end[1] > start[1] && end[1] >= pt[1] && pt[1] >= start[1] {
				return false, true
			}
		}

		// Move the y coordinate to deal with degenerate case
		pt[0] = math.Nextafter(pt[0], math.Inf(1))
	} else if pt[0] == end[0] {
		if pt[1] == end[1] {
			// matching the end point
			return false, true
		}

		pt[0] = math.Nextafter(pt[0], math.Inf(1))
	}

	if pt[0] < start[0] || pt[0] > end[0] {
		return false, false
	}

	if start[1] > end[1] {
		if pt[1] > start[1] {
			return false, false
		} else if pt[1] < end[1] {
			return true, false
		}
	} else {
		if pt[1] > end[1] {
			return false, false
		} else if pt[1] < start[1] {
			return true, false
		}
	}

	rs := (pt[1] - start[1]) / (pt[0] - start[0])
	ds := (end[1] - start[1]) / (end[0] - start[0])

	if rs == ds {
		return false, true
	}

	return rs <= ds, false
}

// ringCrossings counts ray crossings for pt against the ring.
// on is true if pt lies exactly on the ring.
func ringCrossings(ring [][2]float64, pt [2]float64) (crossings int, on bool) {
	p0 := ring[len(ring)-1]
	for _, p1 := range ring {
		intersects, onSegment := RayIntersect(pt, p0, p1)
		if onSegment {
			return 0, true
		}
		if intersects {
			crossings++
		}
		p0 = p1
	}
	return crossings, false
}

// RingContains reports whether pt lies strictly inside the ring.
// A point exactly on the ring itself is not contained.
func RingContains(ring [][2]float64, pt [2]float64) bool {
	if len(ring) < 3 {
		return false
	}
	crossings, on := ringCrossings(ring, pt)
	return !on && crossings%2 == 1
}

// PolygonContains reports whether pt lies strictly inside the polygon's
// exterior ring and strictly outside all its interior rings (holes).
// Boundary points, hole boundaries included, are not contained.
func PolygonContains(p geom.Polygon, pt [2]float64) bool {
	rings := p.LinearRings()
	if len(rings) == 0 || !RingContains(rings[0], pt) {
		return false
	}
	for _, hole := range rings[1:] {
		if len(hole) < 3 {
			continue
		}
		crossings, on := ringCrossings(hole, pt)
		if on || crossings%2 == 1 {
			return false
		}
	}
	return true
}

// PolygonsContain reports strict containment in any of the polygons.
func PolygonsContain(polygons []geom.Polygon, pt [2]float64) bool {
	for i := range polygons {
		if PolygonContains(polygons[i], pt) {
			return true
		}
	}
	return false
}

// BoundingExtent returns the axis-aligned extent of all the polygons,
// or nil when there are no points.
func BoundingExtent(polygons []geom.Polygon) *geom.Extent {
	var extent *geom.Extent
	for i := range polygons {
		for _, ring := range polygons[i].LinearRings() {
			for _, pt := range ring {
				if extent == nil {
					extent = geom.NewExtent(pt)
				} else {
					extent.AddPoints(pt)
				}
			}
		}
	}
	return extent
}

func WktMustEncode(g geom.Geometry, maxLen uint) string {
	if maxLen == 0 {
		return wkt.MustEncode(g)
	}
	return truncate.StringWithTail(wkt.MustEncode(g), maxLen, "...")
}
