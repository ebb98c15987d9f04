package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/carlmjohnson/versioninfo"
	"github.com/iancoleman/strcase"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/gridworks-geo/equi7grid/equi7"
	"github.com/gridworks-geo/equi7grid/geodata"
	"github.com/gridworks-geo/equi7grid/geomhelp"
)

const SAMPLING string = `sampling`
const DATASET string = `dataset`
const NAMESINMETRES string = `namesInMetres`
const LON string = `lon`
const LAT string = `lat`
const ORIGIN string = `origin`
const TILENAME string = `tilename`
const SUBGRID string = `subgrid`
const LLX string = `llx`
const LLY string = `lly`
const SHORT string = `short`
const TARGETSAMPLING string = `targetSampling`
const TARGETCLASS string = `targetClass`

//nolint:funlen
func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	gridFlags := []cli.Flag{
		&cli.IntFlag{
			Name:     SAMPLING,
			Aliases:  []string{"r"},
			Usage:    "Grid sampling (pixel size) in metres, e.g. 500",
			Required: true,
			EnvVars:  []string{strcase.ToScreamingSnake(SAMPLING)},
		},
		&cli.StringFlag{
			Name:    DATASET,
			Usage:   "Path to an external grid dataset JSON, overriding the embedded one",
			EnvVars: []string{strcase.ToScreamingSnake(DATASET)},
		},
		&cli.BoolFlag{
			Name:    NAMESINMETRES,
			Usage:   "Keep sampling tokens in metres form in tile names, even above 999m",
			EnvVars: []string{strcase.ToScreamingSnake(NAMESINMETRES)},
		},
	}

	app := cli.NewApp()
	app.Name = "equi7"
	app.Usage = "Tiling grid queries: resolve points to subgrids, tiles and pixels, and work with tile names"
	app.Version = versioninfo.Short()

	app.Commands = []*cli.Command{
		{
			Name:  "lookup",
			Usage: "Find the tile and pixel indices containing a lon/lat point",
			Flags: append([]cli.Flag{
				&cli.Float64Flag{Name: LON, Required: true, Usage: "Longitude in degrees"},
				&cli.Float64Flag{Name: LAT, Required: true, Usage: "Latitude in degrees"},
				&cli.StringFlag{Name: ORIGIN, Value: string(equi7.TopDown), Usage: "Row origin: topDown or bottomUp"},
			}, gridFlags...),
			Action: func(c *cli.Context) error {
				grid, err := newGrid(c)
				if err != nil {
					return err
				}
				tileName, col, row, err := grid.LonLatToRowCol(c.Float64(LON), c.Float64(LAT), equi7.RowOrigin(c.String(ORIGIN)))
				if err != nil {
					return err
				}
				return printJSON(struct {
					Tile string `json:"tile"`
					Col  int    `json:"col"`
					Row  int    `json:"row"`
				}{tileName, col, row})
			},
		},
		{
			Name:  "decode",
			Usage: "Decode and validate a tile name",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: TILENAME, Aliases: []string{"n"}, Required: true, Usage: "Tile name, long form, or short form with --subgrid"},
				&cli.StringFlag{Name: SUBGRID, Usage: "Subgrid tag supplying context for short-form names"},
			}, gridFlags...),
			Action: func(c *cli.Context) error {
				grid, err := newGrid(c)
				if err != nil {
					return err
				}
				subgrid, err := subgridForName(grid, c.String(TILENAME), c.String(SUBGRID))
				if err != nil {
					return err
				}
				decoded, err := subgrid.DecodeTileName(c.String(TILENAME))
				if err != nil {
					return err
				}
				return printJSON(decoded)
			},
		},
		{
			Name:  "encode",
			Usage: "Encode a tile name from subgrid, sampling and lower-left corner",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: SUBGRID, Required: true, Usage: "Subgrid tag, e.g. EU"},
				&cli.IntFlag{Name: LLX, Required: true, Usage: "Lower-left x in metres"},
				&cli.IntFlag{Name: LLY, Required: true, Usage: "Lower-left y in metres"},
				&cli.BoolFlag{Name: SHORT, Usage: "Output the short form"},
			}, gridFlags...),
			Action: func(c *cli.Context) error {
				grid, err := newGrid(c)
				if err != nil {
					return err
				}
				subgrid, ok := grid.Subgrid(c.String(SUBGRID))
				if !ok {
					return fmt.Errorf("unknown subgrid %q", c.String(SUBGRID))
				}
				form := equi7.LongForm
				if c.Bool(SHORT) {
					form = equi7.ShortForm
				}
				name, err := subgrid.EncodeTileName(c.Int(LLX), c.Int(LLY), form)
				if err != nil {
					return err
				}
				fmt.Println(name)
				return nil
			},
		},
		{
			Name:  "family",
			Usage: "List the family tiles of a tile at another sampling or tile class",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: TILENAME, Aliases: []string{"n"}, Required: true, Usage: "Tile name, long form, or short form with --subgrid"},
				&cli.StringFlag{Name: SUBGRID, Usage: "Subgrid tag supplying context for short-form names"},
				&cli.IntFlag{Name: TARGETSAMPLING, Usage: "Target sampling in metres (long-form results)"},
				&cli.StringFlag{Name: TARGETCLASS, Usage: "Target tile class T6, T3 or T1 (short-form results)"},
			}, gridFlags...),
			Action: func(c *cli.Context) error {
				grid, err := newGrid(c)
				if err != nil {
					return err
				}
				subgrid, err := subgridForName(grid, c.String(TILENAME), c.String(SUBGRID))
				if err != nil {
					return err
				}
				var family []string
				switch {
				case c.IsSet(TARGETSAMPLING):
					family, err = subgrid.FamilyTilesBySampling(c.String(TILENAME), c.Int(TARGETSAMPLING))
				case c.IsSet(TARGETCLASS):
					family, err = subgrid.FamilyTilesByClass(c.String(TILENAME), equi7.TileClass(c.String(TARGETCLASS)))
				default:
					return fmt.Errorf("either --%s or --%s must be given", TARGETSAMPLING, TARGETCLASS)
				}
				if err != nil {
					return err
				}
				return printJSON(family)
			},
		},
		{
			Name:  "coverland",
			Usage: "Check a tile's land coverage, or list a subgrid's land tiles",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: SUBGRID, Required: true, Usage: "Subgrid tag, e.g. EU"},
				&cli.StringFlag{Name: TILENAME, Aliases: []string{"n"}, Usage: "Tile name to check; omit to list all land tiles"},
			}, gridFlags...),
			Action: func(c *cli.Context) error {
				grid, err := newGrid(c)
				if err != nil {
					return err
				}
				subgrid, ok := grid.Subgrid(c.String(SUBGRID))
				if !ok {
					return fmt.Errorf("unknown subgrid %q", c.String(SUBGRID))
				}
				if !c.IsSet(TILENAME) {
					return printJSON(subgrid.LandTiles())
				}
				covers, err := subgrid.CoversLand(c.String(TILENAME))
				if err != nil {
					return err
				}
				return printJSON(covers)
			},
		},
		{
			Name:  "zones",
			Usage: "List the subgrid zones with their projection parameters",
			Flags: gridFlags,
			Action: func(c *cli.Context) error {
				grid, err := newGrid(c)
				if err != nil {
					return err
				}
				type zoneInfo struct {
					Tag        string `json:"tag"`
					Name       string `json:"name"`
					Projection string `json:"projection"`
					Extent     string `json:"extent"`
				}
				zones := make([]zoneInfo, 0, len(grid.SubgridTags()))
				for _, tag := range grid.SubgridTags() {
					subgrid, _ := grid.Subgrid(tag)
					extent := ""
					for _, polygon := range subgrid.ZoneExtent() {
						extent += geomhelp.WktMustEncode(polygon, 60)
					}
					zones = append(zones, zoneInfo{
						Tag:        tag,
						Name:       subgrid.Name(),
						Projection: subgrid.ProjectionWKT(),
						Extent:     extent,
					})
				}
				return printJSON(zones)
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal().Err(err).Msg("command failed")
	}
}

func newGrid(c *cli.Context) (*equi7.Grid, error) {
	var opts []equi7.Option
	if c.IsSet(DATASET) {
		ds, err := geodata.LoadJSONDataset(c.String(DATASET))
		if err != nil {
			return nil, err
		}
		opts = append(opts, equi7.WithDataset(ds))
	}
	if c.Bool(NAMESINMETRES) {
		opts = append(opts, equi7.WithTileNamesInMetres())
	}
	return equi7.New(c.Int(SAMPLING), opts...)
}

// subgridForName picks the decode context for a tile name: a long-form name
// carries its own tag, a short-form one needs the --subgrid flag.
func subgridForName(grid *equi7.Grid, name, tagFlag string) (*equi7.Subgrid, error) {
	form, err := equi7.FormOf(name)
	if err != nil {
		return nil, err
	}
	tag := tagFlag
	if form == equi7.LongForm {
		tag = name[0:2]
	} else if tag == "" {
		return nil, fmt.Errorf("short-form tile name %q needs --%s for context", name, SUBGRID)
	}
	subgrid, ok := grid.Subgrid(tag)
	if !ok {
		return nil, fmt.Errorf("unknown subgrid %q", tag)
	}
	return subgrid, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
