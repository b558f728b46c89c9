package engine

// TileBag is the ordered supply of undrawn tiles.
// The order is fixed when the game is created; drawing never reshuffles.
type TileBag struct {
	tiles []Tile
	next  int
}

func newTileBag(tiles []Tile) *TileBag {
	return &TileBag{tiles: append([]Tile(nil), tiles...)}
}

// draw removes and returns the next tile. ok is false when the bag is empty.
func (b *TileBag) draw() (Tile, bool) {
	if b.next >= len(b.tiles) {
		return TileNone, false
	}
	t := b.tiles[b.next]
	b.next++
	return t, true
}

// Remaining returns the number of undrawn tiles.
func (b *TileBag) Remaining() int {
	return len(b.tiles) - b.next
}

// Empty reports whether every tile has been drawn.
func (b *TileBag) Empty() bool {
	return b.Remaining() == 0
}

// Undrawn returns a copy of the undrawn tiles in draw order.
func (b *TileBag) Undrawn() []Tile {
	return append([]Tile(nil), b.tiles[b.next:]...)
}

// Order returns a copy of the full bag order, drawn tiles included.
func (b *TileBag) Order() []Tile {
	return append([]Tile(nil), b.tiles...)
}

func (b *TileBag) clone() *TileBag {
	return &TileBag{tiles: b.tiles, next: b.next}
}

// completeTileBag validates a supplied bag and appends every missing tile in
// ascending order, so partial bags from fixtures still hold all 108 tiles.
func completeTileBag(tiles []Tile) ([]Tile, error) {
	seen := make(map[Tile]bool, NumTiles)
	for _, t := range tiles {
		if !t.Valid() {
			return nil, newValidationError(ErrCodeInvalidTile, "tile bag contains invalid tile %d", int(t))
		}
		if seen[t] {
			return nil, newValidationError(ErrCodeInvalidTile, "tile bag contains duplicated tile %s", t)
		}
		seen[t] = true
	}
	out := append([]Tile(nil), tiles...)
	for _, t := range AllTiles() {
		if !seen[t] {
			out = append(out, t)
		}
	}
	return out, nil
}
