// Package geodata ships the static grid dataset: per continental subgrid the
// geographic zone extent, the projection definition and the sets of tiles
// known to cover land. The dataset is embedded, loaded once and immutable.
package geodata

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/wkt"
	"github.com/perimeterx/marshmallow"
)

var (
	//go:embed equi7grid.json
	embeddedDatasetFS    embed.FS
	embeddedDatasetCache *Dataset
)

// DataUnavailableError is returned when the static dataset cannot be read or
// fails validation. It is fatal to grid construction.
type DataUnavailableError struct {
	Source string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("grid dataset unavailable (%s): %v", e.Source, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

// Dataset is the static dataset for the whole grid.
type Dataset struct {
	// Version of the dataset, e.g. "V14"
	Version string `validate:"required" json:"version"`
	// Subgrids keyed by their two-letter tag, e.g. "EU"
	Subgrids map[string]*Subgrid `validate:"required,min=1,dive,required" json:"-"`
}

// Subgrid is the static data of one continental subgrid.
type Subgrid struct {
	// Tag is the two-letter acronym of the continent, filled from the map key
	Tag string `validate:"required,len=2" json:"-"`
	// ProjectionWKT is the well-known-text definition of the subgrid's
	// azimuthal equidistant projection, kept verbatim for interoperability
	ProjectionWKT string `validate:"required" json:"projection_wkt"`
	// Projection carries the projection parameters in parsed form
	Projection AEQDParams `validate:"required" json:"projection"`
	// ZoneExtentWKT is the subgrid's extent in geodetic space (EPSG:4326)
	ZoneExtentWKT string `validate:"required" json:"zone_extent"`
	// ZoneExtent is the decoded form of ZoneExtentWKT
	ZoneExtent []geom.Polygon `json:"-"`
	// CoverLand holds, per tile class token, the short tile names known to
	// intersect land
	CoverLand map[string][]string `validate:"required,dive,keys,oneof=T6 T3 T1,endkeys,required" json:"coverland"`
}

// AEQDParams are the parameters of an azimuthal equidistant projection.
type AEQDParams struct {
	LatitudeOfOrigin float64 `json:"latitude_of_origin"`
	CentralMeridian  float64 `json:"central_meridian"`
	FalseEasting     float64 `validate:"required" json:"false_easting"`
	FalseNorthing    float64 `validate:"required" json:"false_northing"`
}

// LoadEmbeddedDataset loads and caches the dataset shipped with this module.
func LoadEmbeddedDataset() (*Dataset, error) {
	if embeddedDatasetCache != nil {
		return embeddedDatasetCache, nil
	}
	data, err := embeddedDatasetFS.ReadFile("equi7grid.json")
	if err != nil {
		return nil, &DataUnavailableError{Source: "embedded", Err: err}
	}
	var ds Dataset
	if err = json.Unmarshal(data, &ds); err != nil {
		return nil, &DataUnavailableError{Source: "embedded", Err: err}
	}
	embeddedDatasetCache = &ds
	return &ds, nil
}

// LoadJSONDataset loads a dataset from an external JSON file,
// e.g. a newer or customized grid definition.
func LoadJSONDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DataUnavailableError{Source: path, Err: err}
	}
	var ds Dataset
	if err = json.Unmarshal(data, &ds); err != nil {
		return nil, &DataUnavailableError{Source: path, Err: err}
	}
	return &ds, nil
}

func (ds *Dataset) UnmarshalJSON(data []byte) error {
	err := defaults.Set(ds)
	if err != nil {
		return err
	}

	specials, err := marshmallow.Unmarshal(data, ds, marshmallow.WithExcludeKnownFieldsFromMap(true))
	if err != nil {
		return err
	}

	rawSubgrids, ok := specials["subgrids"]
	if !ok {
		return fmt.Errorf(`missing key "subgrids"`)
	}
	ds.Subgrids, err = unmarshalSubgrids(rawSubgrids)
	if err != nil {
		return err
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(ds)
}

func unmarshalSubgrids(rawSubgrids interface{}) (map[string]*Subgrid, error) {
	rawSubgridsMap, ok := rawSubgrids.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf(`"subgrids" should be an object`)
	}
	subgrids := make(map[string]*Subgrid, len(rawSubgridsMap))
	for tag, rawSubgrid := range rawSubgridsMap {
		var subgrid Subgrid
		err := subgrid.UnmarshalJSONFromMap(rawSubgrid)
		if err != nil {
			return nil, fmt.Errorf("subgrid %v: %w", tag, err)
		}
		subgrid.Tag = tag
		subgrids[tag] = &subgrid
	}
	return subgrids, nil
}

func (sg *Subgrid) UnmarshalJSONFromMap(data interface{}) error {
	dataMap, ok := data.(map[string]interface{})
	if !ok {
		return fmt.Errorf(`data is not a map but a %T`, data)
	}

	_, err := marshmallow.UnmarshalFromJSONMap(dataMap, sg, marshmallow.WithExcludeKnownFieldsFromMap(true))
	if err != nil {
		return err
	}

	sg.ZoneExtent, err = decodeZoneExtent(sg.ZoneExtentWKT)
	if err != nil {
		return err
	}
	return nil
}

func decodeZoneExtent(extentWKT string) ([]geom.Polygon, error) {
	geometry, err := wkt.DecodeString(extentWKT)
	if err != nil {
		return nil, fmt.Errorf("could not decode zone extent: %w", err)
	}
	switch g := geometry.(type) {
	case geom.Polygon:
		return []geom.Polygon{g}, nil
	case geom.MultiPolygon:
		polygons := make([]geom.Polygon, len(g))
		for i, p := range g.Polygons() {
			polygons[i] = p
		}
		return polygons, nil
	default:
		return nil, fmt.Errorf("zone extent is not a (multi)polygon but a %T", geometry)
	}
}
