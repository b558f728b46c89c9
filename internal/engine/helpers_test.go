package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tile(t *testing.T, s string) Tile {
	t.Helper()
	tl, err := ParseTile(s)
	require.NoError(t, err)
	return tl
}

func tileList(t *testing.T, names ...string) []Tile {
	t.Helper()
	out := make([]Tile, len(names))
	for i, n := range names {
		out[i] = tile(t, n)
	}
	return out
}

func testConfig(mode GameMode, bag []Tile) Config {
	n := mode.NumPlayers()
	cfg := Config{Mode: mode, Arrangement: ExactOrder, HostUserID: 100, TileBag: bag}
	for i := 0; i < n; i++ {
		cfg.UserIDs = append(cfg.UserIDs, 100+i)
		cfg.Usernames = append(cfg.Usernames, string(rune('a'+i)))
	}
	return cfg
}

func newTestGame(t *testing.T, mode GameMode, bag []Tile) *Game {
	t.Helper()
	g, err := NewGame(testConfig(mode, bag))
	require.NoError(t, err)
	return g
}

// apply submits a for whoever must act next and fails the test on error.
func apply(t *testing.T, g *Game, a Action) []HistoryMessage {
	t.Helper()
	h, err := g.Apply(g.Top().PlayerID(), a, nil)
	require.NoError(t, err)
	return h
}

// arrangement describes a mid-game position for arrange.
type arrangement struct {
	players int
	chains  map[Chain][]string
	orphans []string
	racks   [][]string
	shares  map[int]map[Chain]int
	turn    int
}

// arrange builds a started game in the described position. Tiles not on the
// board or in a rack fill the bag in ascending order. The turn player's
// PlayTile decision is prepared as it would be at the start of their turn.
func arrange(t *testing.T, a arrangement) *Game {
	t.Helper()
	mode := GameMode(a.players)
	g := newTestGame(t, mode, nil)

	used := make(map[Tile]bool)
	for c, names := range a.chains {
		for _, tl := range tileList(t, names...) {
			g.board.set(tl, ChainCell(c))
			used[tl] = true
		}
	}
	for _, tl := range tileList(t, a.orphans...) {
		g.board.set(tl, NothingYet)
		used[tl] = true
	}
	g.score.setSizesFrom(g.board)

	for p, names := range a.racks {
		for i, tl := range tileList(t, names...) {
			g.players[p].rack[i] = tl
			used[tl] = true
		}
	}

	var bag []Tile
	for _, tl := range AllTiles() {
		if !used[tl] {
			bag = append(bag, tl)
		}
	}
	g.bag = newTileBag(bag)

	for p, held := range a.shares {
		for c, n := range held {
			g.score.transferFromBank(p, c, n)
		}
	}

	g.stack = []Decision{PlayTileDecision{Player: a.turn}}
	g.turnPlayer = a.turn
	require.NoError(t, g.settle())
	require.NoError(t, g.checkInvariants())
	g.history, g.bagReveals, g.rackReveals = nil, nil, nil
	return g
}

func historyKinds(h []HistoryMessage) []HistoryKind {
	out := make([]HistoryKind, len(h))
	for i, m := range h {
		out[i] = m.Kind
	}
	return out
}

func findHistory(h []HistoryMessage, kind HistoryKind) []HistoryMessage {
	var out []HistoryMessage
	for _, m := range h {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}
