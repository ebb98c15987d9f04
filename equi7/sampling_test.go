package equi7

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileClassFor(t *testing.T) {
	tests := []struct {
		sampling int
		want     TileClass
	}{
		{6000, T6}, {3000, T6}, {1000, T6}, {800, T6}, {750, T6}, {600, T6},
		{500, T6}, {400, T6}, {300, T6}, {250, T6}, {200, T6}, {150, T6},
		{125, T6}, {100, T6}, {96, T6}, {80, T6}, {75, T6}, {64, T6},
		{60, T3}, {50, T3}, {48, T3}, {40, T3}, {32, T3}, {30, T3},
		{25, T3}, {24, T3}, {20, T3},
		{16, T1}, {10, T1}, {8, T1}, {5, T1}, {4, T1}, {2, T1}, {1, T1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dm", tt.sampling), func(t *testing.T) {
			got, err := TileClassFor(tt.sampling)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTileClassForUnsupported(t *testing.T) {
	// inside a range but failing the divisibility rule, outside all ranges,
	// or nonsensical
	for _, sampling := range []int{0, -5, 3, 7, 17, 19, 45, 61, 63, 90, 7000, 6001} {
		t.Run(fmt.Sprintf("%dm", sampling), func(t *testing.T) {
			_, err := TileClassFor(sampling)
			var unsupportedErr *UnsupportedSamplingError
			require.ErrorAs(t, err, &unsupportedErr)
			assert.Equal(t, sampling, unsupportedErr.Sampling)
		})
	}
}

// Every enumerated sampling must satisfy its class's divisibility rule,
// the enumeration and the rule have to agree.
func TestSamplingsAllServed(t *testing.T) {
	for _, sampling := range Samplings {
		class, err := TileClassFor(sampling)
		require.NoErrorf(t, err, "enumerated sampling %dm has no tile class", sampling)
		assert.Zerof(t, class.Extent()%sampling, "tile extent %d is not divisible by sampling %d", class.Extent(), sampling)
	}
}

func TestTileClassProperties(t *testing.T) {
	assert.Equal(t, 600000, T6.Extent())
	assert.Equal(t, 300000, T3.Extent())
	assert.Equal(t, 100000, T1.Extent())
	assert.Equal(t, 6, T6.SizeDigit())
	assert.Equal(t, 3, T3.SizeDigit())
	assert.Equal(t, 1, T1.SizeDigit())
	assert.Equal(t, 0, TileClass("T9").Extent())

	// ordering by extent, used for family comparisons
	assert.Greater(t, T6.Extent(), T3.Extent())
	assert.Greater(t, T3.Extent(), T1.Extent())
}

func TestParseTileClass(t *testing.T) {
	for _, token := range []string{"T6", "T3", "T1"} {
		got, err := ParseTileClass(token)
		require.NoError(t, err)
		assert.Equal(t, TileClass(token), got)
	}
	_, err := ParseTileClass("T9")
	assert.Error(t, err)
	_, err = ParseTileClass("")
	assert.Error(t, err)
}

func TestEncodeSampling(t *testing.T) {
	tests := []struct {
		sampling int
		inMetres bool
		want     string
	}{
		{500, false, "500"},
		{75, false, "075"},
		{1, false, "001"},
		{6000, false, "6K0"},
		{3000, false, "3K0"},
		{1500, false, "1K5"},
		{6000, true, "6000"},
		{500, true, "500"},
		// kilometre form keeps one significant decimal only
		{1234, false, "1K2"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeSampling(tt.sampling, tt.inMetres))
		})
	}
}

func TestDecodeSampling(t *testing.T) {
	tests := []struct {
		token    string
		inMetres bool
		want     int
	}{
		{"500", false, 500},
		{"075", false, 75},
		{"001", false, 1},
		{"6K0", false, 6000},
		{"1K5", false, 1500},
		{"6000", true, 6000},
		{"500", true, 500},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := DecodeSampling(tt.token, tt.inMetres)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeSamplingErrors(t *testing.T) {
	for _, token := range []string{"", "50", "5000", "abc", "KK5", "1Kx"} {
		t.Run(token, func(t *testing.T) {
			_, err := DecodeSampling(token, false)
			assert.Error(t, err)
		})
	}
}

// The metres form round-trips for every supported sampling. The kilometre
// form round-trips only for samplings exactly representable by one
// significant decimal, 1234 silently loses its tail.
func TestSamplingRoundTrip(t *testing.T) {
	for _, sampling := range Samplings {
		got, err := DecodeSampling(EncodeSampling(sampling, true), true)
		require.NoError(t, err)
		assert.Equal(t, sampling, got)

		got, err = DecodeSampling(EncodeSampling(sampling, false), false)
		require.NoError(t, err)
		assert.Equal(t, sampling, got)
	}

	lossy, err := DecodeSampling(EncodeSampling(1234, false), false)
	require.NoError(t, err)
	assert.Equal(t, 1200, lossy)
}
