package engine

// Board is the 12x9 grid of cells.
type Board struct {
	cells [NumTiles]Cell
}

// NewBoard returns a board with every cell empty.
func NewBoard() *Board {
	b := &Board{}
	for i := range b.cells {
		b.cells[i] = Nothing
	}
	return b
}

// Get returns the cell at t.
func (b *Board) Get(t Tile) Cell {
	return b.cells[t]
}

func (b *Board) set(t Tile, c Cell) {
	b.cells[t] = c
}

// Count returns how many cells hold c.
func (b *Board) Count(c Cell) int {
	n := 0
	for _, cell := range b.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// PlacedTiles returns every tile on the board in ascending order.
func (b *Board) PlacedTiles() []Tile {
	var out []Tile
	for i, cell := range b.cells {
		if cell.Placed() {
			out = append(out, Tile(i))
		}
	}
	return out
}

// fill sets start and every placed cell 4-connected to it to c.
// Returns the number of cells in the filled region.
func (b *Board) fill(start Tile, c Cell) int {
	seen := map[Tile]bool{start: true}
	queue := []Tile{start}
	b.cells[start] = c
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		for _, n := range t.Neighbors() {
			if seen[n] || !b.cells[n].Placed() {
				continue
			}
			seen[n] = true
			b.cells[n] = c
			queue = append(queue, n)
		}
	}
	return len(seen)
}

func (b *Board) clone() *Board {
	c := *b
	return &c
}

// placement describes what playing a tile would do.
type placement struct {
	// kind is WillPutLonelyTileDown, WillFormNewChain, WillMergeChains,
	// CantPlayNow, CantPlayEver, or the chain cell the tile would extend.
	kind Cell
	// chains are the distinct chains adjacent to the tile, in neighbor order.
	chains []Chain
}

// classify determines the effect of playing t given the current board and
// chain sizes. It does not consider the viewer's other rack tiles.
func classify(b *Board, sizes *[NumChains]int, t Tile) placement {
	var chains []Chain
	orphan := false
	for _, n := range t.Neighbors() {
		cell := b.Get(n)
		if ch, ok := cell.Chain(); ok {
			dup := false
			for _, seen := range chains {
				if seen == ch {
					dup = true
					break
				}
			}
			if !dup {
				chains = append(chains, ch)
			}
		} else if cell == NothingYet {
			orphan = true
		}
	}

	switch len(chains) {
	case 0:
		if !orphan {
			return placement{kind: WillPutLonelyTileDown}
		}
		for _, size := range sizes {
			if size == 0 {
				return placement{kind: WillFormNewChain}
			}
		}
		return placement{kind: CantPlayNow}
	case 1:
		return placement{kind: ChainCell(chains[0]), chains: chains}
	default:
		safe := 0
		for _, ch := range chains {
			if sizes[ch] >= SafeChainSize {
				safe++
			}
		}
		if safe >= 2 {
			return placement{kind: CantPlayEver, chains: chains}
		}
		return placement{kind: WillMergeChains, chains: chains}
	}
}
