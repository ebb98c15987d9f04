package equi7

import (
	"github.com/umpc/go-sortedmap"

	"github.com/gridworks-geo/equi7grid/mathhelp"
)

// RoundXYToLowerLeft rounds a planar coordinate down to the lower-left corner
// of its enclosing tile.
func (g *Grid) RoundXYToLowerLeft(x, y float64) (llx, lly int) {
	size := g.TileSize()
	return mathhelp.FloorToMultiple(x, size), mathhelp.FloorToMultiple(y, size)
}

// TileFromXY returns the tile enclosing the planar coordinate.
func (sg *Subgrid) TileFromXY(x, y float64) *Tile {
	llx, lly := sg.grid.RoundXYToLowerLeft(x, y)
	return sg.newTile(llx, lly)
}

// PointToTileName returns the name of the tile enclosing the planar coordinate.
func (sg *Subgrid) PointToTileName(x, y float64, form TileNameForm) (string, error) {
	llx, lly := sg.grid.RoundXYToLowerLeft(x, y)
	return sg.EncodeTileName(llx, lly, form)
}

// TilesFromXY maps many planar coordinates to their enclosing tiles at once.
// Points sharing a tile are grouped so each tile is constructed once: tiles
// holds the distinct tiles ordered by lower-left corner (north then east) and
// pointTile holds, per input point, the index into tiles. The result is
// identical to calling TileFromXY point by point.
func (sg *Subgrid) TilesFromXY(xs, ys []float64) (tiles []*Tile, pointTile []int) {
	if len(xs) != len(ys) {
		panic("TilesFromXY: xs and ys must have the same length")
	}

	corners := sortedmap.New(len(xs), func(a, b interface{}) bool {
		ca, cb := a.([2]int), b.([2]int)
		if ca[1] != cb[1] {
			return ca[1] < cb[1]
		}
		return ca[0] < cb[0]
	})
	members := make(map[[2]int][]int, len(xs))
	for i := range xs {
		llx, lly := sg.grid.RoundXYToLowerLeft(xs[i], ys[i])
		corner := [2]int{llx, lly}
		if _, seen := members[corner]; !seen {
			corners.Insert(corner, corner)
		}
		members[corner] = append(members[corner], i)
	}

	tiles = make([]*Tile, 0, len(members))
	pointTile = make([]int, len(xs))
	for _, key := range corners.Keys() {
		corner := key.([2]int)
		tiles = append(tiles, sg.newTile(corner[0], corner[1]))
		for _, pointIdx := range members[corner] {
			pointTile[pointIdx] = len(tiles) - 1
		}
	}
	return tiles, pointTile
}

// LookupResult is one slot of a batch lon/lat lookup. Resolved is false when
// the point's subgrid was unresolved or ambiguous; the other fields are then
// zero.
type LookupResult struct {
	TileName string
	Col, Row int
	Resolved bool
}

// LonLatToRowCol finds the tile and the pixel indices of a geodetic point:
// the long-form name of the enclosing tile plus column and row within it.
func (g *Grid) LonLatToRowCol(lon, lat float64, origin RowOrigin) (tileName string, col, row int, err error) {
	subgrid, x, y, err := g.LonLatToXY(lon, lat)
	if err != nil {
		return "", 0, 0, err
	}
	tile := subgrid.TileFromXY(x, y)
	col, row = tile.PixelIndex(x, y, origin)
	return tile.Name, col, row, nil
}

// LonLatToRowCols is the batch form of LonLatToRowCol, order-preserving.
// A point whose subgrid is unresolved fails only its own slot. Points are
// partitioned per subgrid and per tile; the results are identical to the
// scalar form point by point.
func (g *Grid) LonLatToRowCols(points [][2]float64, origin RowOrigin) []LookupResult {
	results := make([]LookupResult, len(points))
	tags := g.ResolveSubgrids(points)

	for pair := g.subgrids.Oldest(); pair != nil; pair = pair.Next() {
		subgrid := pair.Value
		var xs, ys []float64
		var pointIdxs []int
		for i, tag := range tags {
			if tag != subgrid.tag {
				continue
			}
			x, y := subgrid.projector.Forward(points[i][0], points[i][1])
			xs = append(xs, x)
			ys = append(ys, y)
			pointIdxs = append(pointIdxs, i)
		}
		if len(xs) == 0 {
			continue
		}
		tiles, pointTile := subgrid.TilesFromXY(xs, ys)
		for k, pointIdx := range pointIdxs {
			tile := tiles[pointTile[k]]
			col, row := tile.PixelIndex(xs[k], ys[k], origin)
			results[pointIdx] = LookupResult{TileName: tile.Name, Col: col, Row: row, Resolved: true}
		}
	}
	return results
}
