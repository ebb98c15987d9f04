// Package equi7 implements the discrete global tiling grid used to partition
// the Earth's surface into fixed-size, uniquely named tiles: seven continental
// subgrids, each with its own equidistant planar projection, tiled at one of
// three fixed tile extents depending on the pixel sampling.
package equi7

import (
	"slices"

	"github.com/go-spatial/geom"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/exp/maps"

	"github.com/gridworks-geo/equi7grid/aeqd"
	"github.com/gridworks-geo/equi7grid/geodata"
	"github.com/gridworks-geo/equi7grid/geomhelp"
	"github.com/gridworks-geo/equi7grid/mapslicehelp"
)

// Projector converts geodetic coordinates (EPSG:4326 degrees) to a subgrid's
// planar system in metres and back. Implementations must be deterministic and
// safe for concurrent use.
type Projector interface {
	Forward(lon, lat float64) (x, y float64)
	Inverse(x, y float64) (lon, lat float64)
}

// ProjectorFactory builds the projection capability for one subgrid.
type ProjectorFactory func(params geodata.AEQDParams) (Projector, error)

// ContainsFunc is the point-in-polygon capability used by subgrid resolution.
// It must report strict interior containment.
type ContainsFunc func(polygons []geom.Polygon, pt [2]float64) bool

type options struct {
	dataset          *geodata.Dataset
	tileNamesInM     bool
	projectorFactory ProjectorFactory
	contains         ContainsFunc
}

type Option func(*options)

// WithTileNamesInMetres keeps sampling tokens in metres form even for
// samplings of 1000m and above (e.g. "6000" instead of "6K0").
func WithTileNamesInMetres() Option {
	return func(o *options) { o.tileNamesInM = true }
}

// WithDataset substitutes the static dataset, e.g. one loaded with
// geodata.LoadJSONDataset or built in memory.
func WithDataset(ds *geodata.Dataset) Option {
	return func(o *options) { o.dataset = ds }
}

// WithProjectorFactory substitutes the projection capability, e.g. with a
// proj-backed implementation using the dataset's WKT strings.
func WithProjectorFactory(f ProjectorFactory) Option {
	return func(o *options) { o.projectorFactory = f }
}

// WithContainsFunc substitutes the point-in-polygon capability.
func WithContainsFunc(f ContainsFunc) Option {
	return func(o *options) { o.contains = f }
}

// Grid is an instance of the tiling grid for one sampling. It is immutable
// after construction; all queries are pure computations safe for unrestricted
// concurrent use.
type Grid struct {
	sampling int
	class    TileClass
	inMetres bool
	version  string
	subgrids *orderedmap.OrderedMap[string, *Subgrid]
	contains ContainsFunc
}

// New constructs a grid for the given sampling from the embedded dataset.
func New(sampling int, opts ...Option) (*Grid, error) {
	o := options{
		projectorFactory: func(params geodata.AEQDParams) (Projector, error) {
			return aeqd.New(params), nil
		},
		contains: geomhelp.PolygonsContain,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.dataset == nil {
		ds, err := geodata.LoadEmbeddedDataset()
		if err != nil {
			return nil, err
		}
		o.dataset = ds
	}

	if !slices.Contains(Samplings, sampling) {
		return nil, &UnsupportedSamplingError{Sampling: sampling}
	}
	class, err := TileClassFor(sampling)
	if err != nil {
		return nil, err
	}

	grid := &Grid{
		sampling: sampling,
		class:    class,
		inMetres: o.tileNamesInM,
		version:  o.dataset.Version,
		subgrids: orderedmap.New[string, *Subgrid](),
		contains: o.contains,
	}

	tags := maps.Keys(o.dataset.Subgrids)
	slices.Sort(tags)
	for _, tag := range tags {
		subgrid, err := newSubgrid(grid, o.dataset.Subgrids[tag], o.projectorFactory)
		if err != nil {
			return nil, err
		}
		grid.subgrids.Set(tag, subgrid)
	}
	return grid, nil
}

// Sampling returns the grid's pixel sampling in metres.
func (g *Grid) Sampling() int {
	return g.sampling
}

// TileClass returns the tile class serving the grid's sampling.
func (g *Grid) TileClass() TileClass {
	return g.class
}

// TileSize returns the tile extent in metres for the grid's sampling.
func (g *Grid) TileSize() int {
	return g.class.Extent()
}

// Version returns the static dataset version.
func (g *Grid) Version() string {
	return g.version
}

// Subgrid returns the zone with the given two-letter tag.
func (g *Grid) Subgrid(tag string) (*Subgrid, bool) {
	return g.subgrids.Get(tag)
}

// SubgridTags returns all zone tags in their fixed iteration order.
func (g *Grid) SubgridTags() []string {
	return mapslicehelp.OrderedMapKeys(g.subgrids)
}

func (g *Grid) decodeContextFor(tag string) decodeContext {
	return decodeContext{tag: tag, sampling: g.sampling, class: g.class, inMetres: g.inMetres}
}

// ResolveSubgridLonLat finds the unique subgrid zone whose extent strictly
// contains the point. Zero matches (open ocean, exact zone boundaries) and
// multiple matches (zone overlap) both yield an UnresolvedPointError; the
// caller has to disambiguate, the grid never guesses.
func (g *Grid) ResolveSubgridLonLat(lon, lat float64) (*Subgrid, error) {
	var matched *Subgrid
	var tags []string
	pt := [2]float64{lon, lat}
	for pair := g.subgrids.Oldest(); pair != nil; pair = pair.Next() {
		subgrid := pair.Value
		if subgrid.zoneBounds == nil || !subgrid.zoneBounds.ContainsPoint(pt) {
			continue
		}
		if g.contains(subgrid.zoneExtent, pt) {
			matched = subgrid
			tags = append(tags, pair.Key)
		}
	}
	if len(tags) != 1 {
		return nil, &UnresolvedPointError{Lon: lon, Lat: lat, Matches: tags}
	}
	return matched, nil
}

// ResolveSubgrids resolves many points at once, order-preserving: one tag per
// input point, the empty string for unresolved or ambiguous points.
func (g *Grid) ResolveSubgrids(points [][2]float64) []string {
	tags := make([]string, len(points))
	for i, pt := range points {
		subgrid, err := g.ResolveSubgridLonLat(pt[0], pt[1])
		if err != nil {
			continue
		}
		tags[i] = subgrid.Tag()
	}
	return tags
}

// LonLatToXY resolves the point's subgrid and projects it to that subgrid's
// planar system.
func (g *Grid) LonLatToXY(lon, lat float64) (subgrid *Subgrid, x, y float64, err error) {
	subgrid, err = g.ResolveSubgridLonLat(lon, lat)
	if err != nil {
		return nil, 0, 0, err
	}
	x, y = subgrid.projector.Forward(lon, lat)
	return subgrid, x, y, nil
}

// CreateTile builds the tile identified by a long-form name.
// Short-form names need subgrid context, use Subgrid.TileFromName for those.
func (g *Grid) CreateTile(name string) (*Tile, error) {
	form, err := FormOf(name)
	if err != nil {
		return nil, err
	}
	if form != LongForm {
		return nil, &MalformedTileNameError{Name: name, Reason: "short form carries no subgrid tag, use a long-form name"}
	}
	subgrid, ok := g.Subgrid(name[0:2])
	if !ok {
		return nil, &MalformedTileNameError{Name: name, Reason: "unknown subgrid tag " + name[0:2]}
	}
	return subgrid.TileFromName(name)
}
