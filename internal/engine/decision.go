package engine

import "fmt"

// DecisionKind tags the variants of Decision.
type DecisionKind int

const (
	KindStartGame DecisionKind = iota
	KindPlayTile
	KindSelectNewChain
	KindSelectMergerSurvivor
	KindSelectChainToDisposeOfNext
	KindDisposeOfShares
	KindPurchaseShares
	KindGameOver
)

var decisionKindNames = [...]string{
	KindStartGame:                  "StartGame",
	KindPlayTile:                   "PlayTile",
	KindSelectNewChain:             "SelectNewChain",
	KindSelectMergerSurvivor:       "SelectMergerSurvivor",
	KindSelectChainToDisposeOfNext: "SelectChainToDisposeOfNext",
	KindDisposeOfShares:            "DisposeOfShares",
	KindPurchaseShares:             "PurchaseShares",
	KindGameOver:                   "GameOver",
}

func (k DecisionKind) String() string {
	if k < 0 || int(k) >= len(decisionKindNames) {
		return fmt.Sprintf("DecisionKind(%d)", int(k))
	}
	return decisionKindNames[k]
}

// ParseDecisionKind returns the kind with the given name.
func ParseDecisionKind(name string) (DecisionKind, error) {
	for i, n := range decisionKindNames {
		if n == name {
			return DecisionKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown decision kind %q", name)
}

// Decision is a pending point where a player must act.
// It is a closed union: only the types in this file implement it, and every
// dispatch site switches over all of them.
//
// Decisions are immutable once pushed; their slices are never modified.
type Decision interface {
	// Kind returns the variant tag.
	Kind() DecisionKind
	// PlayerID returns the seat of the player who must resolve the decision.
	PlayerID() int

	sealed()
}

// StartGameDecision waits for the host to start the game.
type StartGameDecision struct {
	Player int
}

// PlayTileDecision waits for the turn player to play a tile.
type PlayTileDecision struct {
	Player int
}

// SelectNewChainDecision waits for the player to name a newly formed chain.
type SelectNewChainDecision struct {
	Player          int
	AvailableChains []Chain
	Tile            Tile
}

// SelectMergerSurvivorDecision waits for the player to pick the surviving
// chain among the largest tied chains. ChainsBySize groups the merging chains
// by size, largest group first.
type SelectMergerSurvivorDecision struct {
	Player       int
	ChainsBySize [][]Chain
	Tile         Tile
}

// SelectChainToDisposeOfNextDecision waits for the player to pick which of
// the largest remaining defunct chains is paid out next. DefunctChains groups
// the unprocessed defunct chains by size, largest group first.
type SelectChainToDisposeOfNextDecision struct {
	Player        int
	DefunctChains [][]Chain
	Survivor      Chain
	Tile          Tile
}

// DisposeOfSharesDecision waits for a holder of a defunct chain to sell,
// trade or keep their shares.
type DisposeOfSharesDecision struct {
	Player       int
	DefunctChain Chain
	Survivor     Chain
	SharesHeld   int
}

// PurchaseSharesDecision waits for the turn player to buy up to three shares.
type PurchaseSharesDecision struct {
	Player int
}

// GameOverDecision is the terminal decision. It accepts no action.
type GameOverDecision struct {
	Player int
}

func (d StartGameDecision) Kind() DecisionKind { return KindStartGame }
func (d StartGameDecision) PlayerID() int      { return d.Player }
func (StartGameDecision) sealed()              {}

func (d PlayTileDecision) Kind() DecisionKind { return KindPlayTile }
func (d PlayTileDecision) PlayerID() int      { return d.Player }
func (PlayTileDecision) sealed()              {}

func (d SelectNewChainDecision) Kind() DecisionKind { return KindSelectNewChain }
func (d SelectNewChainDecision) PlayerID() int      { return d.Player }
func (SelectNewChainDecision) sealed()              {}

func (d SelectMergerSurvivorDecision) Kind() DecisionKind { return KindSelectMergerSurvivor }
func (d SelectMergerSurvivorDecision) PlayerID() int      { return d.Player }
func (SelectMergerSurvivorDecision) sealed()              {}

func (d SelectChainToDisposeOfNextDecision) Kind() DecisionKind {
	return KindSelectChainToDisposeOfNext
}
func (d SelectChainToDisposeOfNextDecision) PlayerID() int { return d.Player }
func (SelectChainToDisposeOfNextDecision) sealed()         {}

func (d DisposeOfSharesDecision) Kind() DecisionKind { return KindDisposeOfShares }
func (d DisposeOfSharesDecision) PlayerID() int      { return d.Player }
func (DisposeOfSharesDecision) sealed()              {}

func (d PurchaseSharesDecision) Kind() DecisionKind { return KindPurchaseShares }
func (d PurchaseSharesDecision) PlayerID() int      { return d.Player }
func (PurchaseSharesDecision) sealed()              {}

func (d GameOverDecision) Kind() DecisionKind { return KindGameOver }
func (d GameOverDecision) PlayerID() int      { return d.Player }
func (GameOverDecision) sealed()              {}

// DecisionChains returns the chains a player may choose from for decisions
// that take a chain, or nil for every other decision.
func DecisionChains(d Decision) []Chain {
	switch d := d.(type) {
	case SelectNewChainDecision:
		return d.AvailableChains
	case SelectMergerSurvivorDecision:
		if len(d.ChainsBySize) > 0 {
			return d.ChainsBySize[0]
		}
	case SelectChainToDisposeOfNextDecision:
		if len(d.DefunctChains) > 0 {
			return d.DefunctChains[0]
		}
	case DisposeOfSharesDecision:
		return []Chain{d.DefunctChain}
	}
	return nil
}

// groupBySize sorts chains by descending size (ties by identifier) and groups
// chains of equal size.
func groupBySize(chains []Chain, sizes *[NumChains]int) [][]Chain {
	sorted := append([]Chain(nil), chains...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0; j-- {
			a, b := sorted[j-1], sorted[j]
			if sizes[a] > sizes[b] || (sizes[a] == sizes[b] && a < b) {
				break
			}
			sorted[j-1], sorted[j] = b, a
		}
	}
	var groups [][]Chain
	for _, c := range sorted {
		if n := len(groups); n > 0 && sizes[groups[n-1][0]] == sizes[c] {
			groups[n-1] = append(groups[n-1], c)
			continue
		}
		groups = append(groups, []Chain{c})
	}
	return groups
}

// withoutChain returns groups with c removed and empty groups dropped.
func withoutChain(groups [][]Chain, c Chain) [][]Chain {
	var out [][]Chain
	for _, g := range groups {
		var kept []Chain
		for _, x := range g {
			if x != c {
				kept = append(kept, x)
			}
		}
		if len(kept) > 0 {
			out = append(out, kept)
		}
	}
	return out
}

func containsChain(chains []Chain, c Chain) bool {
	for _, x := range chains {
		if x == c {
			return true
		}
	}
	return false
}
