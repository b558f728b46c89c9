package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freshBag seats two players: seat 0 draws 12I and seat 1 draws 1A as
// position tiles, so seat 1 moves first and is dealt first.
func freshBag(t *testing.T) []Tile {
	return tileList(t,
		"12I", "1A",
		"3C", "3E", "5C", "5E", "7C", "7E", // seat 1
		"9C", "9E", "11C", "11E", "3G", "5G", // seat 0
		"7G", "9G",
	)
}

func TestNewGame_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown mode", func(c *Config) { c.Mode = 42 }},
		{"unknown arrangement", func(c *Config) { c.Arrangement = 0 }},
		{"wrong player count", func(c *Config) { c.UserIDs = c.UserIDs[:1]; c.Usernames = c.Usernames[:1] }},
		{"missing usernames", func(c *Config) { c.Usernames = c.Usernames[:1] }},
		{"duplicate user", func(c *Config) { c.UserIDs[1] = c.UserIDs[0] }},
		{"host not seated", func(c *Config) { c.HostUserID = 7 }},
		{"duplicate bag tile", func(c *Config) { c.TileBag = []Tile{3, 3} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(Singles2, nil)
			tt.mutate(&cfg)
			_, err := NewGame(cfg)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestNewGame_WaitsForHost(t *testing.T) {
	cfg := testConfig(Singles3, nil)
	cfg.HostUserID = 102
	g, err := NewGame(cfg)
	require.NoError(t, err)

	assert.Equal(t, StartGameDecision{Player: 2}, g.Top())
	assert.Equal(t, NumTiles, g.BagRemaining())
	assert.Equal(t, -1, g.TurnPlayer())

	_, err = g.Apply(0, StartGame(), nil)
	assert.Equal(t, ErrCodeWrongPlayer, ValidationCode(err))
}

func TestFreshGame_LonelyTileThenEmptyPurchase(t *testing.T) {
	g := newTestGame(t, Singles2, freshBag(t))

	h := apply(t, g, StartGame())
	assert.Equal(t, []HistoryMessage{
		{Kind: DrewPositionTile, Player: 0, Tile: tile(t, "12I")},
		{Kind: DrewPositionTile, Player: 1, Tile: tile(t, "1A")},
		{Kind: StartedGame, Player: 0},
	}, h[:3])
	drew := findHistory(h, DrewTile)
	require.Len(t, drew, 12)
	assert.Equal(t, 1, drew[0].Player, "the first player is dealt first")
	assert.Equal(t, 0, drew[6].Player)
	assert.Equal(t, HistoryMessage{Kind: TurnBegan, Player: 1}, h[len(h)-1])

	assert.Equal(t, PlayTileDecision{Player: 1}, g.Top())
	assert.Equal(t, NothingYet, g.Board().Get(tile(t, "1A")), "position tiles stay on the board")
	assert.Equal(t, NumTiles-14, g.BagRemaining())

	_, err := g.Apply(1, PlayTile(tile(t, "9C")), nil)
	assert.Equal(t, ErrCodeTileNotInRack, ValidationCode(err))
	_, err = g.Apply(1, PlayTile(Tile(200)), nil)
	assert.Equal(t, ErrCodeInvalidTile, ValidationCode(err))
	_, err = g.Apply(0, PlayTile(tile(t, "9C")), nil)
	assert.Equal(t, ErrCodeWrongPlayer, ValidationCode(err))

	h = apply(t, g, PlayTile(tile(t, "3C")))
	assert.Equal(t, []HistoryKind{PlayedTile}, historyKinds(h))
	assert.Equal(t, NothingYet, g.Board().Get(tile(t, "3C")))
	assert.Equal(t, PurchaseSharesDecision{Player: 1}, g.Top())

	_, err = g.Apply(1, PurchaseShares([]Chain{Luxor}, false), nil)
	assert.Equal(t, ErrCodeInvalidChain, ValidationCode(err), "no chain is on the board yet")
	_, err = g.Apply(1, PurchaseShares(nil, true), nil)
	assert.Equal(t, ErrCodeCannotEndGame, ValidationCode(err))

	h = apply(t, g, PurchaseShares(nil, false))
	assert.Equal(t, []HistoryMessage{
		{Kind: PurchasedShares, Player: 1},
		{Kind: DrewTile, Player: 1, Tile: tile(t, "7G")},
		{Kind: TurnBegan, Player: 0},
	}, h)
	assert.Equal(t, PlayTileDecision{Player: 0}, g.Top())
	assert.Equal(t, 0, g.TurnPlayer())
	assert.Equal(t, StartingCash, g.ScoreBoard().Cash(1))
	assert.Len(t, g.Moves(), 3)
	assert.Equal(t, int64(3), g.Seq())
}

func TestApply_RejectedActionLeavesGameUnchanged(t *testing.T) {
	g := newTestGame(t, Singles2, freshBag(t))
	apply(t, g, StartGame())

	before, err := g.StateHash()
	require.NoError(t, err)

	_, err = g.Apply(1, SelectNewChain(Luxor), nil)
	assert.Equal(t, ErrCodeWrongDecision, ValidationCode(err))
	_, err = g.Apply(1, Action{}, nil)
	assert.Equal(t, ErrCodeInvalidAction, ValidationCode(err))
	_, err = g.Apply(1, Action{PlayTile: &PlayTileAction{}, StartGame: &StartGameAction{}}, nil)
	assert.Equal(t, ErrCodeInvalidAction, ValidationCode(err))

	after, err := g.StateHash()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, g.Moves(), 1)
}

func TestFormChain_FounderShare(t *testing.T) {
	g := arrange(t, arrangement{
		players: 2,
		chains:  map[Chain][]string{Luxor: {"1A", "2A"}},
		orphans: []string{"5D"},
		racks:   [][]string{{"5E"}, {"9I"}},
	})

	h := apply(t, g, PlayTile(tile(t, "5E")))
	assert.Equal(t, []HistoryKind{PlayedTile}, historyKinds(h))
	top, ok := g.Top().(SelectNewChainDecision)
	require.True(t, ok)
	assert.Equal(t, []Chain{Tower, American, Festival, Worldwide, Continental, Imperial}, top.AvailableChains)

	_, err := g.Apply(0, SelectNewChain(Luxor), nil)
	assert.Equal(t, ErrCodeInvalidChain, ValidationCode(err), "active chains cannot be founded again")

	h = apply(t, g, SelectNewChain(Festival))
	assert.Equal(t, HistoryMessage{Kind: FormedChain, Player: 0, Chain: Festival}, h[0])

	sb := g.ScoreBoard()
	assert.Equal(t, 2, sb.ChainSize(Festival))
	assert.Equal(t, 1, sb.Shares(0, Festival), "founder receives a free share")
	assert.Equal(t, SharesPerChain-1, sb.Available(Festival))
	assert.Equal(t, StartingCash, sb.Cash(0))
	assert.Equal(t, PurchaseSharesDecision{Player: 0}, g.Top())
}

func TestFormChain_SingleFreeChainResolvesItself(t *testing.T) {
	chains := map[Chain][]string{
		Luxor:       {"1A", "1B"},
		Tower:       {"3A", "3B"},
		American:    {"5A", "5B"},
		Festival:    {"7A", "7B"},
		Worldwide:   {"9A", "9B"},
		Continental: {"11A", "11B"},
	}
	g := arrange(t, arrangement{
		players: 2,
		chains:  chains,
		orphans: []string{"6F"},
		racks:   [][]string{{"6G"}, {"12I"}},
	})

	h := apply(t, g, PlayTile(tile(t, "6G")))
	assert.Equal(t, []HistoryKind{PlayedTile, FormedChain}, historyKinds(h))
	assert.Equal(t, Imperial, h[1].Chain)
	assert.Equal(t, 2, g.ScoreBoard().ChainSize(Imperial))
	assert.Equal(t, PurchaseSharesDecision{Player: 0}, g.Top())
}

func TestExtendChain_AbsorbsOrphans(t *testing.T) {
	g := arrange(t, arrangement{
		players: 2,
		chains:  map[Chain][]string{Tower: {"4E", "3E"}},
		orphans: []string{"5F", "5G"},
		racks:   [][]string{{"5E"}, {"12I"}},
	})

	apply(t, g, PlayTile(tile(t, "5E")))
	assert.Equal(t, 5, g.ScoreBoard().ChainSize(Tower))
	assert.Equal(t, ChainCell(Tower), g.Board().Get(tile(t, "5G")))
}
