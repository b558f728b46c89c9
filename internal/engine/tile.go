package engine

import "fmt"

// Board dimensions. Tiles are numbered column-major: x*BoardHeight + y.
const (
	BoardWidth  = 12
	BoardHeight = 9
	NumTiles    = BoardWidth * BoardHeight
)

// Tile identifies one of the 108 board coordinates.
type Tile int

const (
	// TileUnknown stands in for a tile the viewer is not allowed to see.
	TileUnknown Tile = -1
	// TileNone marks an empty rack slot.
	TileNone Tile = -2
)

// NewTile returns the tile at column x (0..11) and row y (0..8).
func NewTile(x, y int) Tile {
	return Tile(x*BoardHeight + y)
}

// X returns the column, 0-based.
func (t Tile) X() int { return int(t) / BoardHeight }

// Y returns the row, 0-based.
func (t Tile) Y() int { return int(t) % BoardHeight }

// Valid reports whether t is on the board.
func (t Tile) Valid() bool {
	return t >= 0 && t < NumTiles
}

func (t Tile) String() string {
	switch {
	case t == TileUnknown:
		return "?"
	case t == TileNone:
		return "none"
	case !t.Valid():
		return fmt.Sprintf("Tile(%d)", int(t))
	}
	return fmt.Sprintf("%d%c", t.X()+1, 'A'+t.Y())
}

// Neighbors returns the orthogonally adjacent tiles in left, right, up, down
// order. Edges of the board have no neighbor.
func (t Tile) Neighbors() []Tile {
	x, y := t.X(), t.Y()
	out := make([]Tile, 0, 4)
	if x > 0 {
		out = append(out, NewTile(x-1, y))
	}
	if x < BoardWidth-1 {
		out = append(out, NewTile(x+1, y))
	}
	if y > 0 {
		out = append(out, NewTile(x, y-1))
	}
	if y < BoardHeight-1 {
		out = append(out, NewTile(x, y+1))
	}
	return out
}

// AllTiles returns every tile in ascending order.
func AllTiles() []Tile {
	tiles := make([]Tile, NumTiles)
	for i := range tiles {
		tiles[i] = Tile(i)
	}
	return tiles
}

// ParseTile parses the String form of a tile: column 1..12 followed by row
// letter A..I, or "?" for TileUnknown.
func ParseTile(s string) (Tile, error) {
	if s == "?" {
		return TileUnknown, nil
	}
	if len(s) < 2 || len(s) > 3 {
		return 0, fmt.Errorf("invalid tile %q", s)
	}
	row := s[len(s)-1]
	if row < 'A' || row > 'A'+BoardHeight-1 {
		return 0, fmt.Errorf("invalid tile %q: bad row", s)
	}
	col := 0
	for _, r := range s[:len(s)-1] {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid tile %q: bad column", s)
		}
		col = col*10 + int(r-'0')
	}
	if col < 1 || col > BoardWidth {
		return 0, fmt.Errorf("invalid tile %q: bad column", s)
	}
	return NewTile(col-1, int(row-'A')), nil
}
