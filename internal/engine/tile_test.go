package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTile_StringRoundTrip(t *testing.T) {
	tests := []struct {
		tile Tile
		want string
	}{
		{0, "1A"},
		{8, "1I"},
		{9, "2A"},
		{NewTile(4, 3), "5D"},
		{107, "12I"},
		{TileUnknown, "?"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tile.String())
			parsed, err := ParseTile(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.tile, parsed)
		})
	}
}

func TestParseTile_Invalid(t *testing.T) {
	for _, s := range []string{"", "A", "0A", "13A", "1J", "1a", "x5", "123A"} {
		_, err := ParseTile(s)
		assert.Error(t, err, "ParseTile(%q)", s)
	}
}

func TestTile_Neighbors(t *testing.T) {
	assert.Equal(t, []Tile{NewTile(1, 0), NewTile(0, 1)}, Tile(0).Neighbors(), "corner has two neighbors")
	assert.Len(t, NewTile(5, 4).Neighbors(), 4)
	assert.Len(t, NewTile(11, 4).Neighbors(), 3)
}

func TestCompleteTileBag(t *testing.T) {
	bag, err := completeTileBag([]Tile{107, 3})
	require.NoError(t, err)
	require.Len(t, bag, NumTiles)
	assert.Equal(t, Tile(107), bag[0])
	assert.Equal(t, Tile(3), bag[1])
	assert.Equal(t, Tile(0), bag[2], "missing tiles follow in ascending order")

	_, err = completeTileBag([]Tile{5, 5})
	assert.Equal(t, ErrCodeInvalidTile, ValidationCode(err))

	_, err = completeTileBag([]Tile{108})
	assert.Equal(t, ErrCodeInvalidTile, ValidationCode(err))
}
