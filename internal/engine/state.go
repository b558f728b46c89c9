package engine

import (
	"github.com/roach88/acquire/internal/ir"
)

// checkInvariants verifies the conservation rules that must hold after every
// move. A failure is an engine bug, reported as an InternalError.
func (g *Game) checkInvariants() error {
	if len(g.stack) == 0 {
		return newInternalError("stack", "decision stack is empty")
	}
	if top := g.Top().PlayerID(); top < 0 || top >= len(g.players) {
		return newInternalError("stack", "top decision names unknown player %d", top)
	}

	seen := make(map[Tile]string, NumTiles)
	place := func(t Tile, where string) error {
		if !t.Valid() {
			return newInternalError("tiles", "invalid tile %d in %s", int(t), where)
		}
		if prev, ok := seen[t]; ok {
			return newInternalError("tiles", "tile %s in both %s and %s", t, prev, where)
		}
		seen[t] = where
		return nil
	}
	for p, pl := range g.players {
		for _, t := range pl.rack {
			if t == TileNone {
				continue
			}
			if err := place(t, "rack"); err != nil {
				return err
			}
		}
		if g.score.Cash(p) < 0 {
			return newInternalError("cash", "player %d has negative cash %d", p, g.score.Cash(p))
		}
	}
	for _, t := range g.bag.Undrawn() {
		if err := place(t, "bag"); err != nil {
			return err
		}
	}
	for _, t := range g.board.PlacedTiles() {
		if err := place(t, "board"); err != nil {
			return err
		}
	}
	for _, t := range g.dead {
		if err := place(t, "dead"); err != nil {
			return err
		}
	}
	if len(seen) != NumTiles {
		return newInternalError("tiles", "%d tiles accounted for, want %d", len(seen), NumTiles)
	}

	for _, c := range Chains {
		size := g.score.ChainSize(c)
		if size < 0 || size > NumTiles {
			return newInternalError("chains", "%s has size %d", c, size)
		}
		if n := g.board.Count(ChainCell(c)); n != size {
			return newInternalError("chains", "%s has size %d but %d cells", c, size, n)
		}
		total := g.score.Available(c)
		if total < 0 {
			return newInternalError("shares", "bank holds %d shares of %s", total, c)
		}
		for p := range g.players {
			n := g.score.Shares(p, c)
			if n < 0 {
				return newInternalError("shares", "player %d holds %d shares of %s", p, n, c)
			}
			total += n
		}
		if total != SharesPerChain {
			return newInternalError("shares", "%d shares of %s exist, want %d", total, c, SharesPerChain)
		}
	}
	return nil
}

// StateHash digests everything derived from the configuration and moves.
// Two games that replayed the same moves have the same hash.
func (g *Game) StateHash() (string, error) {
	return ir.StateHash(g.stateValue())
}

func (g *Game) stateValue() map[string]any {
	cells := make([]int, NumTiles)
	for i := range cells {
		cells[i] = int(g.board.Get(Tile(i)))
	}

	racks := make([]any, len(g.players))
	revealed := make([]any, len(g.players))
	cash := make([]int, len(g.players))
	shares := make([]any, len(g.players))
	for p, pl := range g.players {
		rack := make([]int, RackSize)
		rev := make([]any, RackSize)
		for i, t := range pl.rack {
			rack[i] = int(t)
			rev[i] = pl.revealed[i]
		}
		racks[p] = rack
		revealed[p] = rev
		cash[p] = g.score.Cash(p)
		held := make([]int, NumChains)
		for _, c := range Chains {
			held[c] = g.score.Shares(p, c)
		}
		shares[p] = held
	}

	available := make([]int, NumChains)
	sizes := make([]int, NumChains)
	for _, c := range Chains {
		available[c] = g.score.Available(c)
		sizes[c] = g.score.ChainSize(c)
	}

	stack := make([]any, len(g.stack))
	for i, d := range g.stack {
		stack[i] = decisionValue(d)
	}

	return map[string]any{
		"board":     cells,
		"bag":       tilesToInts(g.bag.Undrawn()),
		"dead":      tilesToInts(g.dead),
		"racks":     racks,
		"revealed":  revealed,
		"cash":      cash,
		"shares":    shares,
		"available": available,
		"sizes":     sizes,
		"stack":     stack,
		"turn":      g.turnPlayer,
		"idleTurns": g.turnsWithoutPlayedTile,
		"over":      g.over,
	}
}

func decisionValue(d Decision) map[string]any {
	v := map[string]any{
		"kind":   d.Kind().String(),
		"player": d.PlayerID(),
	}
	switch d := d.(type) {
	case SelectNewChainDecision:
		v["chains"] = chainsToInts(d.AvailableChains)
		v["tile"] = int(d.Tile)
	case SelectMergerSurvivorDecision:
		v["groups"] = chainGroupsValue(d.ChainsBySize)
		v["tile"] = int(d.Tile)
	case SelectChainToDisposeOfNextDecision:
		v["groups"] = chainGroupsValue(d.DefunctChains)
		v["survivor"] = int(d.Survivor)
		v["tile"] = int(d.Tile)
	case DisposeOfSharesDecision:
		v["defunct"] = int(d.DefunctChain)
		v["survivor"] = int(d.Survivor)
		v["held"] = d.SharesHeld
	}
	return v
}

func chainGroupsValue(groups [][]Chain) []any {
	out := make([]any, len(groups))
	for i, g := range groups {
		out[i] = chainsToInts(g)
	}
	return out
}

func chainsToInts(chains []Chain) []int {
	out := make([]int, len(chains))
	for i, c := range chains {
		out[i] = int(c)
	}
	return out
}

func tilesToInts(tiles []Tile) []int {
	out := make([]int, len(tiles))
	for i, t := range tiles {
		out[i] = int(t)
	}
	return out
}
