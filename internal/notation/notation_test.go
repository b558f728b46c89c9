package notation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/acquire/internal/engine"
)

func TestActionRoundTrip(t *testing.T) {
	lines := []string{
		"StartGame",
		"PlayTile 12I",
		"SelectNewChain F",
		"SelectMergerSurvivor L",
		"SelectChainToDisposeOfNext T",
		"DisposeOfShares 4 1",
		"PurchaseShares L,L,C 0",
		"PurchaseShares x 1",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			a, err := ParseAction(line)
			require.NoError(t, err)
			got, err := FormatAction(a)
			require.NoError(t, err)
			assert.Equal(t, line, got)
		})
	}
}

func TestParseAction_Errors(t *testing.T) {
	for _, line := range []string{
		"",
		"Dance",
		"GameOver",
		"PlayTile",
		"PlayTile 13A",
		"SelectNewChain Q",
		"DisposeOfShares two 0",
		"PurchaseShares L 2",
		"PurchaseShares L,Z 0",
		"StartGame now",
	} {
		_, err := ParseAction(line)
		assert.Error(t, err, "ParseAction(%q)", line)
	}
}

func TestParseAction_Values(t *testing.T) {
	a, err := ParseAction("PurchaseShares W,I 1")
	require.NoError(t, err)
	require.NotNil(t, a.PurchaseShares)
	assert.Equal(t, []engine.Chain{engine.Worldwide, engine.Imperial}, a.PurchaseShares.Chains)
	assert.True(t, a.PurchaseShares.EndGame)

	a, err = ParseAction("PlayTile 5D")
	require.NoError(t, err)
	assert.Equal(t, engine.NewTile(4, 3), a.PlayTile.Tile)
}

func TestFormatHistory(t *testing.T) {
	tests := []struct {
		msg  engine.HistoryMessage
		want string
	}{
		{engine.HistoryMessage{Kind: engine.TurnBegan, Player: 2}, "2 TurnBegan"},
		{engine.HistoryMessage{Kind: engine.DrewTile, Player: 0, Tile: engine.TileUnknown}, "0 DrewTile ?"},
		{engine.HistoryMessage{Kind: engine.PlayedTile, Player: 1, Tile: engine.NewTile(2, 2)}, "1 PlayedTile 3C"},
		{engine.HistoryMessage{Kind: engine.FormedChain, Player: 1, Chain: engine.Festival}, "1 FormedChain F"},
		{engine.HistoryMessage{Kind: engine.MergedChains, Player: 0, Chains: []engine.Chain{engine.Luxor, engine.Tower}}, "0 MergedChains L,T"},
		{engine.HistoryMessage{Kind: engine.ReceivedBonus, Player: 0, Chain: engine.Tower, Amount: 2000}, "0 ReceivedBonus T 2000"},
		{engine.HistoryMessage{Kind: engine.DisposedOfShares, Player: 1, Chain: engine.Tower, TradeAmount: 2, SellAmount: 1}, "1 DisposedOfShares T 2 1"},
		{engine.HistoryMessage{Kind: engine.PurchasedShares, Player: 0}, "0 PurchasedShares x"},
		{engine.HistoryMessage{Kind: engine.PurchasedShares, Player: 0, Purchases: []engine.Purchase{{Chain: engine.Luxor, Count: 2}, {Chain: engine.Imperial, Count: 1}}}, "0 PurchasedShares 2L,1I"},
		{engine.HistoryMessage{Kind: engine.AllTilesPlayed, Player: -1}, "AllTilesPlayed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatHistory(tt.msg))
	}
}

func TestFormatDecision(t *testing.T) {
	assert.Equal(t, "1 PlayTile", FormatDecision(engine.PlayTileDecision{Player: 1}))
	assert.Equal(t, "0 SelectMergerSurvivor L,T", FormatDecision(engine.SelectMergerSurvivorDecision{
		Player:       0,
		ChainsBySize: [][]engine.Chain{{engine.Luxor, engine.Tower}, {engine.Imperial}},
	}))
	assert.Equal(t, "2 DisposeOfShares W", FormatDecision(engine.DisposeOfSharesDecision{Player: 2, DefunctChain: engine.Worldwide}))
}

func TestBoardLines(t *testing.T) {
	var cells [engine.NumTiles]engine.Cell
	for i := range cells {
		cells[i] = engine.Nothing
	}
	cells[engine.NewTile(0, 0)] = engine.NothingYet
	cells[engine.NewTile(11, 8)] = engine.ChainCell(engine.Imperial)
	cells[engine.NewTile(4, 4)] = engine.IHaveThis

	lines := BoardLines(cells)
	require.Len(t, lines, engine.BoardHeight)
	assert.Equal(t, "O"+strings.Repeat("·", 11), lines[0])
	assert.Equal(t, "····i·······", lines[4])
	assert.Equal(t, strings.Repeat("·", 11)+"I", lines[8])
}

func TestRackString(t *testing.T) {
	rack := [engine.RackSize]engine.Tile{0, engine.NewTile(4, 4), engine.TileNone, engine.TileUnknown, 1, 2}
	cells := [engine.RackSize]engine.Cell{
		engine.WillPutLonelyTileDown,
		engine.ChainCell(engine.Luxor),
		engine.Nothing,
		engine.Nothing,
		engine.CantPlayEver,
		engine.CantPlayNow,
	}
	assert.Equal(t, "1A(l) 5E(L) none ? 1B(█) 1C(c)", RackString(rack, cells, true))
	assert.Equal(t, "1A 5E none ? 1B 1C", RackString(rack, cells, false))
}

func TestBoardAndScoreLines_PadsTallScoreBoard(t *testing.T) {
	v := engine.View{
		Cash:     make([]int, 6),
		Shares:   make([][engine.NumChains]int, 6),
		NetWorth: make([]int, 6),
	}
	for i := range v.Board {
		v.Board[i] = engine.Nothing
	}

	lines := BoardAndScoreLines(v)
	score := ScoreBoardLines(v)
	require.Len(t, score, 10)
	require.Len(t, lines, 10)
	assert.Equal(t, strings.Repeat("·", 12)+"  "+score[0], lines[0])
	assert.Equal(t, strings.Repeat(" ", 12)+"  "+score[9], lines[9])
}
