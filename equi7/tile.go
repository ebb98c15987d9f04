package equi7

import (
	"math"

	"github.com/go-spatial/geom"
)

// RowOrigin is the row numbering convention for pixel indices within a tile.
// Columns always increase eastward starting at the tile's west edge.
type RowOrigin string

const (
	// TopDown numbers row 0 at the tile's north edge, increasing southward.
	TopDown RowOrigin = "topDown"
	// BottomUp numbers row 0 at the tile's south edge, increasing northward.
	BottomUp RowOrigin = "bottomUp"
)

// Tile is one axis-aligned square region of a subgrid. Tiles are values
// derived on demand from a name or a coordinate and are immutable.
type Tile struct {
	// Subgrid is the owning zone's two-letter tag
	Subgrid string
	// Name is the canonical long-form name
	Name     string
	Sampling int
	Class    TileClass
	// Lower-left corner in metres, multiples of the class extent
	LLX, LLY int
	// CoversLand is true when the tile is in the subgrid's precomputed
	// land-coverage set
	CoversLand bool
}

// ShortName returns the name without subgrid tag and sampling token.
func (t *Tile) ShortName() string {
	return shortName(t.LLX, t.LLY, t.Class)
}

// Size returns the tile extent in metres.
func (t *Tile) Size() int {
	return t.Class.Extent()
}

// Shape returns the number of pixel columns and rows.
func (t *Tile) Shape() (cols, rows int) {
	n := t.Size() / t.Sampling
	return n, n
}

// Extent returns the tile's bounds in the subgrid's planar system.
func (t *Tile) Extent() geom.Extent {
	return geom.Extent{
		float64(t.LLX), float64(t.LLY),
		float64(t.LLX + t.Size()), float64(t.LLY + t.Size()),
	}
}

// GeoTransform returns the tile's affine transform in GDAL order
// (originX, pixelWidth, rowRotation, originY, colRotation, pixelHeight).
func (t *Tile) GeoTransform(origin RowOrigin) [6]float64 {
	sampling := float64(t.Sampling)
	if origin == BottomUp {
		return [6]float64{float64(t.LLX), sampling, 0, float64(t.LLY), 0, sampling}
	}
	return [6]float64{float64(t.LLX), sampling, 0, float64(t.LLY + t.Size()), 0, -sampling}
}

// PixelIndex maps a planar coordinate to the integer pixel column and row it
// falls in, by inverting the tile's affine transform. Indices are floored,
// never rounded: a point exactly on a pixel boundary belongs to the pixel
// whose interval it enters in the direction of increasing column or row.
func (t *Tile) PixelIndex(x, y float64, origin RowOrigin) (col, row int) {
	gt := t.GeoTransform(origin)
	det := gt[2]*gt[4] - gt[1]*gt[5]
	i := -1.0 * (gt[2]*gt[3] - gt[0]*gt[5] + gt[5]*x - gt[2]*y) / det
	j := -1.0 * (-1*gt[1]*gt[3] + gt[0]*gt[4] - gt[4]*x + gt[1]*y) / det
	return int(math.Floor(i)), int(math.Floor(j))
}
