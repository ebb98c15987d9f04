package equi7

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gridworks-geo/equi7grid/mathhelp"
)

// TileNameForm distinguishes the two textual encodings of a tile name.
type TileNameForm string

const (
	// ShortForm omits the subgrid tag and sampling token, e.g. "E012N018T6".
	// It is only meaningful when subgrid and sampling are known from context.
	ShortForm TileNameForm = "short"
	// LongForm is the full canonical name, e.g. "EU500M_E012N018T6".
	LongForm TileNameForm = "long"
)

// Form is detected structurally, not by string length, so that future tag or
// token changes cannot make the two forms ambiguous.
var (
	shortFormRegexp = regexp.MustCompile(`^E[0-9]{3}N[0-9]{3}T[631]$`)
	longFormRegexp  = regexp.MustCompile(`^[A-Z]{2}[0-9K]{3,4}M_E[0-9]{3}N[0-9]{3}T[631]$`)
)

// FormOf classifies a tile name.
func FormOf(name string) (TileNameForm, error) {
	switch {
	case shortFormRegexp.MatchString(name):
		return ShortForm, nil
	case longFormRegexp.MatchString(name):
		return LongForm, nil
	}
	return "", &MalformedTileNameError{Name: name, Reason: "neither short form (e.g. \"E012N018T6\") nor long form (e.g. \"EU500M_E012N018T6\")"}
}

// DecodedTileName is the structured tuple behind a canonical tile name.
type DecodedTileName struct {
	Subgrid  string
	Sampling int
	// TileSize is the tile extent in metres
	TileSize int
	// Lower-left corner in metres, multiples of TileSize
	LLX, LLY int
	Class    TileClass
}

// EncodeTileName formats the canonical tile name for the given attributes.
// The corner must be aligned to the class extent and the sampling must belong
// to the declared class.
func EncodeTileName(tag string, sampling, llx, lly int, class TileClass, form TileNameForm, inMetres bool) (string, error) {
	expectedClass, err := TileClassFor(sampling)
	if err != nil {
		return "", err
	}
	if expectedClass != class {
		return "", &MalformedTileNameError{
			Name:   shortName(llx, lly, class),
			Reason: fmt.Sprintf("sampling %dm belongs to class %s, not %s", sampling, expectedClass, class),
		}
	}
	if err := checkAlignment(shortName(llx, lly, class), llx/100000, lly/100000, class); err != nil {
		return "", err
	}
	if form == ShortForm {
		return shortName(llx, lly, class), nil
	}
	return fmt.Sprintf("%s%sM_%s", tag, EncodeSampling(sampling, inMetres), shortName(llx, lly, class)), nil
}

func shortName(llx, lly int, class TileClass) string {
	return fmt.Sprintf("E%03dN%03d%s", llx/100000, lly/100000, class)
}

// TileNameToShort strips the subgrid tag and sampling token off a long-form
// name. A short-form name passes through unchanged.
func TileNameToShort(name string) (string, error) {
	form, err := FormOf(name)
	if err != nil {
		return "", err
	}
	if form == ShortForm {
		return name, nil
	}
	return name[strings.Index(name, "_")+1:], nil
}

func checkAlignment(name string, east100km, north100km int, class TileClass) error {
	unit := class.SizeDigit()
	if mathhelp.EuclidianMod(east100km, unit) != 0 {
		return &UnalignedCornerError{Name: name, Axis: "east", Ordinate: east100km, Unit: unit}
	}
	if mathhelp.EuclidianMod(north100km, unit) != 0 {
		return &UnalignedCornerError{Name: name, Axis: "north", Ordinate: north100km, Unit: unit}
	}
	return nil
}

// decodeContext carries the caller-side expectations a tile name is
// cross-checked against. Short-form names cannot carry tag and sampling
// themselves, so the context supplies them.
type decodeContext struct {
	tag      string
	sampling int
	class    TileClass
	inMetres bool
}

// decodeTileName validates the name exhaustively against the context and
// returns the structured tuple. Either all checks pass or an error describes
// the first failed check.
func (ctx decodeContext) decodeTileName(name string) (DecodedTileName, error) {
	var decoded DecodedTileName
	form, err := FormOf(name)
	if err != nil {
		return decoded, err
	}

	var block string // the "E012N018T6" block
	switch form {
	case ShortForm:
		block = name
		decoded.Subgrid = ctx.tag
		decoded.Sampling = ctx.sampling
	case LongForm:
		tag := name[0:2]
		if tag != ctx.tag {
			return decoded, &MalformedTileNameError{
				Name:   name,
				Reason: fmt.Sprintf("subgrid tag %q does not match %q", tag, ctx.tag),
			}
		}
		token, _, _ := strings.Cut(name[2:], "M")
		sampling, err := DecodeSampling(token, ctx.inMetres)
		if err != nil {
			return decoded, &MalformedTileNameError{Name: name, Reason: err.Error()}
		}
		if sampling != ctx.sampling {
			return decoded, &MalformedTileNameError{
				Name:   name,
				Reason: fmt.Sprintf("sampling %dm does not match the grid sampling %dm", sampling, ctx.sampling),
			}
		}
		decoded.Subgrid = tag
		decoded.Sampling = sampling
		block = name[strings.Index(name, "_")+1:]
	}

	sizeDigit, err := strconv.Atoi(block[9:10])
	if err != nil {
		return decoded, &MalformedTileNameError{Name: name, Reason: "tile size digit is not a number"}
	}
	if sizeDigit*100000 != ctx.class.Extent() {
		return decoded, &MalformedTileNameError{
			Name:   name,
			Reason: fmt.Sprintf("tile size %dkm does not match the grid tile size %dkm", sizeDigit*100, ctx.class.Extent()/1000),
		}
	}
	classToken := TileClass(block[8:10])
	if classToken != ctx.class {
		return decoded, &MalformedTileNameError{
			Name:   name,
			Reason: fmt.Sprintf("tile class %q does not match the grid tile class %q", classToken, ctx.class),
		}
	}

	east100km, err := strconv.Atoi(block[1:4])
	if err != nil {
		return decoded, &MalformedTileNameError{Name: name, Reason: "east ordinate is not a number"}
	}
	north100km, err := strconv.Atoi(block[5:8])
	if err != nil {
		return decoded, &MalformedTileNameError{Name: name, Reason: "north ordinate is not a number"}
	}
	if err := checkAlignment(name, east100km, north100km, ctx.class); err != nil {
		return decoded, err
	}

	decoded.TileSize = ctx.class.Extent()
	decoded.LLX = east100km * 100000
	decoded.LLY = north100km * 100000
	decoded.Class = ctx.class
	return decoded, nil
}
