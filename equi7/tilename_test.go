package equi7

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormOf(t *testing.T) {
	tests := []struct {
		name    string
		want    TileNameForm
		wantErr bool
	}{
		{name: "E012N018T6", want: ShortForm},
		{name: "E000N000T1", want: ShortForm},
		{name: "EU500M_E012N018T6", want: LongForm},
		{name: "AF075M_E030N030T6", want: LongForm},
		{name: "EU1K5M_E012N018T6", want: LongForm},
		{name: "EU6000M_E012N018T6", want: LongForm},
		{name: "E012N018T5", wantErr: true},    // no such tile class
		{name: "E012N018", wantErr: true},      // class token missing
		{name: "EU500_E012N018T6", wantErr: true},  // sampling token not closed by M
		{name: "EU500ME012N018T6", wantErr: true},  // separator missing
		{name: "eu500M_E012N018T6", wantErr: true}, // lowercase tag
		{name: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormOf(tt.name)
			if tt.wantErr {
				var malformedErr *MalformedTileNameError
				require.ErrorAs(t, err, &malformedErr)
				assert.Equal(t, tt.name, malformedErr.Name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeTileName(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		sampling int
		llx, lly int
		class    TileClass
		form     TileNameForm
		inMetres bool
		want     string
	}{
		{name: "origin tile", tag: "EU", sampling: 500, llx: 0, lly: 0, class: T6, form: LongForm, want: "EU500M_E000N000T6"},
		{name: "origin tile short", tag: "EU", sampling: 500, llx: 0, lly: 0, class: T6, form: ShortForm, want: "E000N000T6"},
		{name: "inner tile", tag: "EU", sampling: 500, llx: 1200000, lly: 1800000, class: T6, form: LongForm, want: "EU500M_E012N018T6"},
		{name: "padded sampling", tag: "AF", sampling: 75, llx: 3000000, lly: 3000000, class: T6, form: LongForm, want: "AF075M_E030N030T6"},
		{name: "kilometre form", tag: "EU", sampling: 6000, llx: 1200000, lly: 1800000, class: T6, form: LongForm, want: "EU6K0M_E012N018T6"},
		{name: "metres form", tag: "EU", sampling: 6000, llx: 1200000, lly: 1800000, class: T6, form: LongForm, inMetres: true, want: "EU6000M_E012N018T6"},
		{name: "T3 tile", tag: "EU", sampling: 20, llx: 1500000, lly: 2100000, class: T3, form: LongForm, want: "EU020M_E015N021T3"},
		{name: "T1 tile", tag: "EU", sampling: 10, llx: 4800000, lly: 1300000, class: T1, form: LongForm, want: "EU010M_E048N013T1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeTileName(tt.tag, tt.sampling, tt.llx, tt.lly, tt.class, tt.form, tt.inMetres)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeTileNameUnaligned(t *testing.T) {
	// 11 is not a multiple of 6 (in 100 km units)
	_, err := EncodeTileName("EU", 500, 1100000, 1800000, T6, LongForm, false)
	var unalignedErr *UnalignedCornerError
	require.ErrorAs(t, err, &unalignedErr)
	assert.Equal(t, "east", unalignedErr.Axis)
	assert.Equal(t, 11, unalignedErr.Ordinate)
	assert.Equal(t, 6, unalignedErr.Unit)

	_, err = EncodeTileName("EU", 500, 1200000, 1700000, T6, LongForm, false)
	require.ErrorAs(t, err, &unalignedErr)
	assert.Equal(t, "north", unalignedErr.Axis)
}

func TestEncodeTileNameClassMismatch(t *testing.T) {
	// 500m sampling belongs to T6, not T1
	_, err := EncodeTileName("EU", 500, 100000, 100000, T1, LongForm, false)
	var malformedErr *MalformedTileNameError
	require.ErrorAs(t, err, &malformedErr)

	// unsupported sampling fails before any formatting
	_, err = EncodeTileName("EU", 7, 0, 0, T6, LongForm, false)
	var unsupportedErr *UnsupportedSamplingError
	require.ErrorAs(t, err, &unsupportedErr)
}

func TestTileNameToShort(t *testing.T) {
	short, err := TileNameToShort("EU500M_E012N018T6")
	require.NoError(t, err)
	assert.Equal(t, "E012N018T6", short)

	// already short is a no-op
	short, err = TileNameToShort("E012N018T6")
	require.NoError(t, err)
	assert.Equal(t, "E012N018T6", short)

	short, err = TileNameToShort("EU6K0M_E012N018T6")
	require.NoError(t, err)
	assert.Equal(t, "E012N018T6", short)

	_, err = TileNameToShort("garbage")
	assert.Error(t, err)
}

func TestDecodeTileName(t *testing.T) {
	grid, err := New(500)
	require.NoError(t, err)
	subgrid, ok := grid.Subgrid("EU")
	require.True(t, ok)

	want := DecodedTileName{
		Subgrid:  "EU",
		Sampling: 500,
		TileSize: 600000,
		LLX:      1200000,
		LLY:      1800000,
		Class:    T6,
	}

	decoded, err := subgrid.DecodeTileName("EU500M_E012N018T6")
	require.NoError(t, err)
	assert.Equal(t, want, decoded)

	// short form takes tag and sampling from the subgrid context
	decoded, err = subgrid.DecodeTileName("E012N018T6")
	require.NoError(t, err)
	assert.Equal(t, want, decoded)
}

func TestTileNameToLowerLeft(t *testing.T) {
	grid, err := New(500)
	require.NoError(t, err)
	subgrid, ok := grid.Subgrid("EU")
	require.True(t, ok)

	llx, lly, err := subgrid.TileNameToLowerLeft("EU500M_E012N018T6")
	require.NoError(t, err)
	assert.Equal(t, 1200000, llx)
	assert.Equal(t, 1800000, lly)

	_, _, err = subgrid.TileNameToLowerLeft("E011N018T6")
	assert.Error(t, err)
}

func TestDecodeTileNameCrossChecks(t *testing.T) {
	grid, err := New(500)
	require.NoError(t, err)
	subgrid, ok := grid.Subgrid("EU")
	require.True(t, ok)

	tests := []struct {
		name     string
		tileName string
		reason   string
	}{
		{name: "tag mismatch", tileName: "AF500M_E012N018T6", reason: "subgrid tag"},
		{name: "sampling mismatch", tileName: "EU010M_E012N018T6", reason: "sampling"},
		{name: "class mismatch long", tileName: "EU500M_E012N018T3", reason: "tile size"},
		{name: "class mismatch short", tileName: "E012N018T1", reason: "tile size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := subgrid.DecodeTileName(tt.tileName)
			var malformedErr *MalformedTileNameError
			require.ErrorAs(t, err, &malformedErr)
			assert.Contains(t, malformedErr.Error(), tt.reason)
		})
	}
}

func TestDecodeTileNameUnaligned(t *testing.T) {
	grid, err := New(500)
	require.NoError(t, err)
	subgrid, ok := grid.Subgrid("EU")
	require.True(t, ok)

	// 11 is not a multiple of 6 for a T6 grid
	_, err = subgrid.DecodeTileName("E011N018T6")
	var unalignedErr *UnalignedCornerError
	require.ErrorAs(t, err, &unalignedErr)
	assert.Equal(t, 11, unalignedErr.Ordinate)

	_, err = subgrid.DecodeTileName("EU500M_E012N017T6")
	require.ErrorAs(t, err, &unalignedErr)
	assert.Equal(t, "north", unalignedErr.Axis)
}

// Round-trip: every aligned corner encodes to a name that decodes back to the
// original tuple, in both forms.
func TestTileNameRoundTrip(t *testing.T) {
	samplings := []int{500, 20, 10}
	for _, sampling := range samplings {
		grid, err := New(sampling)
		require.NoError(t, err)
		size := grid.TileSize()
		for _, tag := range grid.SubgridTags() {
			subgrid, _ := grid.Subgrid(tag)
			for _, corner := range [][2]int{{0, 0}, {size, 2 * size}, {7 * size, 5 * size}} {
				for _, form := range []TileNameForm{LongForm, ShortForm} {
					name, err := subgrid.EncodeTileName(corner[0], corner[1], form)
					require.NoError(t, err)
					decoded, err := subgrid.DecodeTileName(name)
					require.NoErrorf(t, err, "decode(%v)", name)
					assert.Equal(t, tag, decoded.Subgrid)
					assert.Equal(t, sampling, decoded.Sampling)
					assert.Equal(t, corner[0], decoded.LLX)
					assert.Equal(t, corner[1], decoded.LLY)
					assert.Equal(t, grid.TileClass(), decoded.Class)
				}
			}
		}
	}
}

func TestTileNamesInMetresRoundTrip(t *testing.T) {
	grid, err := New(6000, WithTileNamesInMetres())
	require.NoError(t, err)
	subgrid, ok := grid.Subgrid("EU")
	require.True(t, ok)

	name, err := subgrid.EncodeTileName(1200000, 1800000, LongForm)
	require.NoError(t, err)
	assert.Equal(t, "EU6000M_E012N018T6", name)

	decoded, err := subgrid.DecodeTileName(name)
	require.NoError(t, err)
	assert.Equal(t, 6000, decoded.Sampling)
}
