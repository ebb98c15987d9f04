package equi7

import (
	"fmt"
	"strconv"

	"github.com/gridworks-geo/equi7grid/mathhelp"
)

// Samplings lists all supported grid samplings (pixel sizes) in metres.
// Every entry satisfies the divisibility rule of its tile class.
var Samplings = []int{
	6000, 3000, 1000, 800, 750, 600, 500, 400, 300, 250, 200, 150, 125, 100, 96, 80,
	75, 64, 60, 50, 48, 40, 32, 30, 25, 24, 20, 16, 10, 8, 5, 4, 2, 1,
}

// TileClass is one of the three fixed tile extents of the grid.
// The class is independent of the sampling: every T6 tile spans
// 600x600 km whether its pixels are 100m or 6000m.
type TileClass string

const (
	T6 TileClass = "T6"
	T3 TileClass = "T3"
	T1 TileClass = "T1"
)

// Extent returns the tile extent in metres for the class, 0 for an unknown class.
func (tc TileClass) Extent() int {
	switch tc {
	case T6:
		return 600000
	case T3:
		return 300000
	case T1:
		return 100000
	}
	return 0
}

// SizeDigit is the trailing digit of the class token, in 100 km units.
func (tc TileClass) SizeDigit() int {
	return tc.Extent() / 100000
}

// RepresentativeSampling is the fixed sampling used to name family tiles when
// only a target class is given. The resulting names are only valid in short
// form because the actual working sampling is ambiguous within a class.
func (tc TileClass) RepresentativeSampling() int {
	switch tc {
	case T6:
		return 500
	case T3:
		return 20
	default:
		return 10
	}
}

// ParseTileClass parses a tile class token.
func ParseTileClass(s string) (TileClass, error) {
	switch TileClass(s) {
	case T6:
		return T6, nil
	case T3:
		return T3, nil
	case T1:
		return T1, nil
	}
	return "", fmt.Errorf("tile class must be one of T6, T3, T1, got %q", s)
}

// TileClassFor returns the tile class serving the given sampling.
// The three ranges are disjoint; a sampling failing all three divisibility
// rules is unsupported even if it would otherwise look plausible.
func TileClassFor(sampling int) (TileClass, error) {
	if sampling < 1 {
		return "", &UnsupportedSamplingError{Sampling: sampling}
	}
	switch {
	case mathhelp.BetweenInc(int64(sampling), 64, 6000) && 600000%sampling == 0:
		return T6, nil
	case mathhelp.BetweenInc(int64(sampling), 20, 60) && 300000%sampling == 0:
		return T3, nil
	case mathhelp.BetweenInc(int64(sampling), 1, 16) && 100000%sampling == 0:
		return T1, nil
	}
	return "", &UnsupportedSamplingError{Sampling: sampling}
}

// EncodeSampling renders the sampling token used inside tile names.
// Samplings of 1000m and above use the kilometre form <km>K<tenths> unless
// inMetres is set; e.g. 1500 becomes "1K5". The kilometre form is lossy for
// samplings that one significant decimal cannot describe.
func EncodeSampling(sampling int, inMetres bool) string {
	if inMetres || sampling <= 999 {
		return fmt.Sprintf("%03d", sampling)
	}
	return fmt.Sprintf("%dK%d", sampling/1000, sampling%1000/100)
}

// DecodeSampling reverses EncodeSampling.
func DecodeSampling(token string, inMetres bool) (int, error) {
	if inMetres {
		sampling, err := strconv.Atoi(token)
		if err != nil {
			return 0, fmt.Errorf("sampling token %q is badly defined", token)
		}
		return sampling, nil
	}
	if len(token) != 3 {
		return 0, fmt.Errorf("sampling token %q is badly defined", token)
	}
	if token[1] == 'K' {
		km := int(token[0] - '0')
		tenths := int(token[2] - '0')
		if km < 0 || km > 9 || tenths < 0 || tenths > 9 {
			return 0, fmt.Errorf("sampling token %q is badly defined", token)
		}
		return km*1000 + tenths*100, nil
	}
	sampling, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("sampling token %q is badly defined", token)
	}
	return sampling, nil
}
