package equi7

import (
	"github.com/gridworks-geo/equi7grid/mathhelp"
)

// FamilyTilesBySampling finds the family tiles of the named tile at a target
// sampling: the tiles at the target resolution that are congruent with or
// overlap the source tile. For a larger or equal target tile size the single
// containing tile is returned; for a smaller one the full n x n grid of
// contained tiles, ordered east index first, north index second. Names are
// returned in long form.
func (sg *Subgrid) FamilyTilesBySampling(name string, targetSampling int) ([]string, error) {
	targetClass, err := TileClassFor(targetSampling)
	if err != nil {
		return nil, err
	}
	return sg.familyTiles(name, targetSampling, targetClass, LongForm)
}

// FamilyTilesByClass finds the family tiles of the named tile at a target
// tile class. Because a class does not pin down a sampling, the names are
// returned in short form; they are built with the class's representative
// sampling and their implied sampling token must not be relied on.
func (sg *Subgrid) FamilyTilesByClass(name string, targetClass TileClass) ([]string, error) {
	if _, err := ParseTileClass(string(targetClass)); err != nil {
		return nil, err
	}
	return sg.familyTiles(name, targetClass.RepresentativeSampling(), targetClass, ShortForm)
}

func (sg *Subgrid) familyTiles(name string, targetSampling int, targetClass TileClass, form TileNameForm) ([]string, error) {
	src, err := sg.DecodeTileName(name)
	if err != nil {
		return nil, err
	}
	targetSize := targetClass.Extent()

	encode := func(llx, lly int) (string, error) {
		return EncodeTileName(sg.tag, targetSampling, llx, lly, targetClass, form, sg.grid.inMetres)
	}

	// the unique larger or equal tile containing the source tile
	if targetSize >= src.TileSize {
		llx := mathhelp.FloorDiv(src.LLX, targetSize) * targetSize
		lly := mathhelp.FloorDiv(src.LLY, targetSize) * targetSize
		tileName, err := encode(llx, lly)
		if err != nil {
			return nil, err
		}
		return []string{tileName}, nil
	}

	// the n x n smaller tiles exactly tiling the source tile
	n := src.TileSize / targetSize
	family := make([]string, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			tileName, err := encode(src.LLX+i*targetSize, src.LLY+j*targetSize)
			if err != nil {
				return nil, err
			}
			family = append(family, tileName)
		}
	}
	return family, nil
}
