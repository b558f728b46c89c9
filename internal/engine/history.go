package engine

import "fmt"

// HistoryKind tags a HistoryMessage.
type HistoryKind int

const (
	TurnBegan HistoryKind = iota
	DrewPositionTile
	StartedGame
	DrewTile
	HasNoPlayableTile
	PlayedTile
	FormedChain
	MergedChains
	SelectedMergerSurvivor
	SelectedChainToDisposeOfNext
	ReceivedBonus
	DisposedOfShares
	CouldNotAffordAnyShares
	PurchasedShares
	DrewLastTile
	ReplacedDeadTile
	EndedGame
	NoTilesPlayedForEntireRound
	AllTilesPlayed
)

var historyKindNames = [...]string{
	TurnBegan:                    "TurnBegan",
	DrewPositionTile:             "DrewPositionTile",
	StartedGame:                  "StartedGame",
	DrewTile:                     "DrewTile",
	HasNoPlayableTile:            "HasNoPlayableTile",
	PlayedTile:                   "PlayedTile",
	FormedChain:                  "FormedChain",
	MergedChains:                 "MergedChains",
	SelectedMergerSurvivor:       "SelectedMergerSurvivor",
	SelectedChainToDisposeOfNext: "SelectedChainToDisposeOfNext",
	ReceivedBonus:                "ReceivedBonus",
	DisposedOfShares:             "DisposedOfShares",
	CouldNotAffordAnyShares:      "CouldNotAffordAnyShares",
	PurchasedShares:              "PurchasedShares",
	DrewLastTile:                 "DrewLastTile",
	ReplacedDeadTile:             "ReplacedDeadTile",
	EndedGame:                    "EndedGame",
	NoTilesPlayedForEntireRound:  "NoTilesPlayedForEntireRound",
	AllTilesPlayed:               "AllTilesPlayed",
}

func (k HistoryKind) String() string {
	if k < 0 || int(k) >= len(historyKindNames) {
		return fmt.Sprintf("HistoryKind(%d)", int(k))
	}
	return historyKindNames[k]
}

// ParseHistoryKind returns the kind with the given name.
func ParseHistoryKind(name string) (HistoryKind, error) {
	for i, n := range historyKindNames {
		if n == name {
			return HistoryKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown history message %q", name)
}

// HistoryMessage describes one thing that happened during a move.
// Which fields are meaningful depends on Kind:
//
//	DrewPositionTile, DrewTile, PlayedTile, ReplacedDeadTile: Tile
//	FormedChain, SelectedMergerSurvivor, SelectedChainToDisposeOfNext: Chain
//	MergedChains: Chains
//	ReceivedBonus: Chain, Amount
//	DisposedOfShares: Chain, TradeAmount, SellAmount
//	PurchasedShares: Purchases
//
// Player is -1 for NoTilesPlayedForEntireRound and AllTilesPlayed.
type HistoryMessage struct {
	Kind        HistoryKind
	Player      int
	Tile        Tile
	Chain       Chain
	Chains      []Chain
	Amount      int
	TradeAmount int
	SellAmount  int
	Purchases   []Purchase
}

// Purchase is a number of shares of one chain bought in a single turn.
type Purchase struct {
	Chain Chain
	Count int
}

// RevealedBagTile records a tile leaving the bag during a move.
// Viewer is the only player allowed to see it, or AllViewers.
type RevealedBagTile struct {
	Tile   Tile
	Viewer int
}

// AllViewers marks a revealed tile that every viewer may see.
const AllViewers = -1

// RevealedRackTile records a rack tile made public during a move.
type RevealedRackTile struct {
	Tile  Tile
	Owner int
}

// MoveRecord is one applied action and everything it caused.
// Records are append-only and never modified after the move.
type MoveRecord struct {
	// Seq is the logical clock value of the move, starting at 1.
	Seq int64

	// Timestamp is caller-supplied metadata. The engine never reads it.
	Timestamp *int64

	Player int
	Kind   DecisionKind
	Action Action

	History           []HistoryMessage
	RevealedBagTiles  []RevealedBagTile
	RevealedRackTiles []RevealedRackTile

	// Next is the decision left on top of the stack after the move.
	Next Decision

	// StateHash digests the full game state after the move. Empty on
	// records returned by RedactMove.
	StateHash string
}

func (m MoveRecord) copy() MoveRecord {
	m.History = copyHistory(m.History)
	m.RevealedBagTiles = append([]RevealedBagTile(nil), m.RevealedBagTiles...)
	m.RevealedRackTiles = append([]RevealedRackTile(nil), m.RevealedRackTiles...)
	return m
}

func copyHistory(in []HistoryMessage) []HistoryMessage {
	if in == nil {
		return nil
	}
	out := make([]HistoryMessage, len(in))
	for i, h := range in {
		h.Chains = append([]Chain(nil), h.Chains...)
		h.Purchases = append([]Purchase(nil), h.Purchases...)
		out[i] = h
	}
	return out
}

// redactHistory hides tiles the viewer may not see. Only DrewTile is private:
// everyone but the drawing player sees TileUnknown.
func redactHistory(in []HistoryMessage, viewer int) []HistoryMessage {
	out := copyHistory(in)
	for i := range out {
		if out[i].Kind == DrewTile && out[i].Player != viewer {
			out[i].Tile = TileUnknown
		}
	}
	return out
}
