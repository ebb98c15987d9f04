package equi7

import (
	"fmt"
	"slices"

	"github.com/go-spatial/geom"
	"golang.org/x/exp/maps"

	"github.com/gridworks-geo/equi7grid/geodata"
	"github.com/gridworks-geo/equi7grid/geomhelp"
	"github.com/gridworks-geo/equi7grid/mapslicehelp"
)

// Subgrid is one of the seven continental zones of the grid. It owns the
// zone's geodetic extent, its projection and the static land-coverage index.
// Immutable after grid construction.
type Subgrid struct {
	grid          *Grid
	tag           string
	name          string
	projector     Projector
	projectionWKT string
	zoneExtent    []geom.Polygon
	zoneBounds    *geom.Extent
	coverLand     map[TileClass]map[string]any
}

func newSubgrid(grid *Grid, data *geodata.Subgrid, projectorFactory ProjectorFactory) (*Subgrid, error) {
	projector, err := projectorFactory(data.Projection)
	if err != nil {
		return nil, fmt.Errorf("could not build projector for subgrid %v: %w", data.Tag, err)
	}

	coverLand := make(map[TileClass]map[string]any, len(data.CoverLand))
	for token, names := range data.CoverLand {
		class, err := ParseTileClass(token)
		if err != nil {
			return nil, fmt.Errorf("land coverage of subgrid %v: %w", data.Tag, err)
		}
		coverLand[class] = mapslicehelp.AsKeys(names)
	}

	return &Subgrid{
		grid:          grid,
		tag:           data.Tag,
		name:          fmt.Sprintf("EQUI7_%s%sM", data.Tag, EncodeSampling(grid.sampling, grid.inMetres)),
		projector:     projector,
		projectionWKT: data.ProjectionWKT,
		zoneExtent:    data.ZoneExtent,
		zoneBounds:    geomhelp.BoundingExtent(data.ZoneExtent),
		coverLand:     coverLand,
	}, nil
}

// Tag returns the two-letter zone acronym, e.g. "EU".
func (sg *Subgrid) Tag() string {
	return sg.tag
}

// Name returns the display name of the subgrid, e.g. "EQUI7_EU500M".
func (sg *Subgrid) Name() string {
	return sg.name
}

// ProjectionWKT returns the zone's projection definition verbatim.
func (sg *Subgrid) ProjectionWKT() string {
	return sg.projectionWKT
}

// ZoneExtent returns the zone's geodetic extent polygons, shared read-only.
func (sg *Subgrid) ZoneExtent() []geom.Polygon {
	return sg.zoneExtent
}

// Projector returns the zone's projection capability.
func (sg *Subgrid) Projector() Projector {
	return sg.projector
}

// XYToLonLat projects a planar coordinate back to geodetic space.
func (sg *Subgrid) XYToLonLat(x, y float64) (lon, lat float64) {
	return sg.projector.Inverse(x, y)
}

// DecodeTileName validates a tile name, long or short form, against this
// subgrid and the grid's sampling, and returns the structured tuple.
func (sg *Subgrid) DecodeTileName(name string) (DecodedTileName, error) {
	return sg.grid.decodeContextFor(sg.tag).decodeTileName(name)
}

// EncodeTileName formats the name of the tile with the given lower-left
// corner at the grid's sampling.
func (sg *Subgrid) EncodeTileName(llx, lly int, form TileNameForm) (string, error) {
	return EncodeTileName(sg.tag, sg.grid.sampling, llx, lly, sg.grid.class, form, sg.grid.inMetres)
}

// TileNameToLowerLeft returns the lower-left corner in metres of the named tile.
func (sg *Subgrid) TileNameToLowerLeft(name string) (llx, lly int, err error) {
	decoded, err := sg.DecodeTileName(name)
	if err != nil {
		return 0, 0, err
	}
	return decoded.LLX, decoded.LLY, nil
}

// TileFromName builds the tile identified by a long or short form name.
func (sg *Subgrid) TileFromName(name string) (*Tile, error) {
	decoded, err := sg.DecodeTileName(name)
	if err != nil {
		return nil, err
	}
	return sg.newTile(decoded.LLX, decoded.LLY), nil
}

// newTile derives a tile value from an aligned lower-left corner and attaches
// the land-coverage flag.
func (sg *Subgrid) newTile(llx, lly int) *Tile {
	// the corner is aligned by construction here, encoding cannot fail
	name, _ := sg.EncodeTileName(llx, lly, LongForm)
	return &Tile{
		Subgrid:    sg.tag,
		Name:       name,
		Sampling:   sg.grid.sampling,
		Class:      sg.grid.class,
		LLX:        llx,
		LLY:        lly,
		CoversLand: sg.coversLandShort(shortName(llx, lly, sg.grid.class)),
	}
}

func (sg *Subgrid) coversLandShort(short string) bool {
	set, ok := sg.coverLand[sg.grid.class]
	if !ok {
		return false
	}
	_, covers := set[short]
	return covers
}

// CoversLand reports whether the named tile is in the zone's precomputed
// land-coverage set. Absence means "assumed no land"; no geometry is tested.
func (sg *Subgrid) CoversLand(name string) (bool, error) {
	decoded, err := sg.DecodeTileName(name)
	if err != nil {
		return false, err
	}
	return sg.coversLandShort(shortName(decoded.LLX, decoded.LLY, decoded.Class)), nil
}

// LandTiles lists the short names of all tiles of the grid's class covering
// land in this zone, sorted.
func (sg *Subgrid) LandTiles() []string {
	set, ok := sg.coverLand[sg.grid.class]
	if !ok {
		return nil
	}
	names := maps.Keys(set)
	slices.Sort(names)
	return names
}
