package engine

import "fmt"

// Chain identifies one of the seven hotel chains.
type Chain int

const (
	Luxor Chain = iota
	Tower
	American
	Festival
	Worldwide
	Continental
	Imperial
)

// NumChains is the number of chain identifiers.
const NumChains = 7

// Chains lists every chain in identifier order.
var Chains = [NumChains]Chain{Luxor, Tower, American, Festival, Worldwide, Continental, Imperial}

var chainNames = [NumChains]string{"Luxor", "Tower", "American", "Festival", "Worldwide", "Continental", "Imperial"}

// Rules constants.
const (
	StartingCash     = 6000
	SharesPerChain   = 25
	SafeChainSize    = 11
	EndGameChainSize = 41
	MaxSharesPerTurn = 3
	RackSize         = 6
)

// Valid reports whether c is one of the seven chains.
func (c Chain) Valid() bool {
	return c >= Luxor && c <= Imperial
}

func (c Chain) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Chain(%d)", int(c))
	}
	return chainNames[c]
}

// PriceClass is 0 for the cheap chains, 1 for the middle chains and 2 for
// the expensive chains.
func (c Chain) PriceClass() int {
	switch c {
	case Luxor, Tower:
		return 0
	case American, Festival, Worldwide:
		return 1
	default:
		return 2
	}
}

// ParseChainName returns the chain with the given full name.
func ParseChainName(name string) (Chain, error) {
	for i, n := range chainNames {
		if n == name {
			return Chain(i), nil
		}
	}
	return 0, fmt.Errorf("unknown chain %q", name)
}

// Price returns the per-share price of chain c at the given size.
// Chains smaller than 2 tiles are not on the board and cost nothing.
func Price(c Chain, size int) int {
	var base int
	switch {
	case size < 2:
		return 0
	case size <= 5:
		base = size * 100
	case size <= 10:
		base = 600
	case size <= 20:
		base = 700
	case size <= 30:
		base = 800
	case size <= 40:
		base = 900
	default:
		base = 1000
	}
	return base + c.PriceClass()*100
}

// Cell is the state of a board cell, or the classification of a rack tile.
// Values 0..6 coincide with the Chain identifiers.
type Cell int

const (
	Nothing Cell = iota + NumChains
	NothingYet
	CantPlayEver
	IHaveThis
	WillPutLonelyTileDown
	HaveNeighboringTileToo
	WillFormNewChain
	WillMergeChains
	CantPlayNow
)

var cellNames = map[Cell]string{
	Nothing:                "Nothing",
	NothingYet:             "NothingYet",
	CantPlayEver:           "CantPlayEver",
	IHaveThis:              "IHaveThis",
	WillPutLonelyTileDown:  "WillPutLonelyTileDown",
	HaveNeighboringTileToo: "HaveNeighboringTileToo",
	WillFormNewChain:       "WillFormNewChain",
	WillMergeChains:        "WillMergeChains",
	CantPlayNow:            "CantPlayNow",
}

// ChainCell returns the board cell owned by chain c.
func ChainCell(c Chain) Cell {
	return Cell(c)
}

// Chain returns the chain that owns the cell, if any.
func (c Cell) Chain() (Chain, bool) {
	if c >= 0 && c < NumChains {
		return Chain(c), true
	}
	return 0, false
}

// Placed reports whether the cell holds a tile.
func (c Cell) Placed() bool {
	_, isChain := c.Chain()
	return isChain || c == NothingYet
}

// Playable reports whether a rack tile with this classification may be played.
func (c Cell) Playable() bool {
	return c != CantPlayEver && c != CantPlayNow
}

func (c Cell) String() string {
	if ch, ok := c.Chain(); ok {
		return ch.String()
	}
	if name, ok := cellNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Cell(%d)", int(c))
}
