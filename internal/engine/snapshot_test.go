package engine

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// autoplay resolves the pending decision with a simple legal policy: play the
// first playable tile, pick the first offered chain, sell every defunct share,
// buy one affordable share and end the game as soon as allowed.
func autoplay(t *testing.T, g *Game, rng *rand.Rand) {
	t.Helper()
	top := g.Top()
	p := top.PlayerID()
	var a Action
	switch d := top.(type) {
	case StartGameDecision:
		a = StartGame()
	case PlayTileDecision:
		cells := g.RackCells(p)
		rack := g.Rack(p)
		var playable []Tile
		for i, tl := range rack {
			if tl != TileNone && cells[i].Playable() {
				playable = append(playable, tl)
			}
		}
		require.NotEmpty(t, playable, "PlayTile is only pending when a tile is playable")
		a = PlayTile(playable[rng.Intn(len(playable))])
	case SelectNewChainDecision, SelectMergerSurvivorDecision, SelectChainToDisposeOfNextDecision:
		chains := DecisionChains(d)
		c := chains[rng.Intn(len(chains))]
		switch top.Kind() {
		case KindSelectNewChain:
			a = SelectNewChain(c)
		case KindSelectMergerSurvivor:
			a = SelectMergerSurvivor(c)
		default:
			a = SelectChainToDisposeOfNext(c)
		}
	case DisposeOfSharesDecision:
		sb := g.ScoreBoard()
		trade := d.SharesHeld / 2 * 2
		if trade/2 > sb.Available(d.Survivor) {
			trade = sb.Available(d.Survivor) * 2
		}
		a = DisposeOfShares(trade, d.SharesHeld-trade)
	case PurchaseSharesDecision:
		sb := g.ScoreBoard()
		var buy []Chain
		for _, c := range Chains {
			if sb.Active(c) && sb.Available(c) > 0 && sb.Price(c) <= sb.Cash(p) {
				buy = append(buy, c)
				break
			}
		}
		a = PurchaseShares(buy, g.CanEndGame())
	default:
		t.Fatalf("no policy for %T", d)
	}
	_, err := g.Apply(p, a, nil)
	require.NoError(t, err, "move %d: %s by %d", g.Seq()+1, top.Kind(), p)
}

func playToEnd(t *testing.T, mode GameMode, seed int64) *Game {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	bag := make([]Tile, NumTiles)
	for i, n := range rng.Perm(NumTiles) {
		bag[i] = Tile(n)
	}
	g := newTestGame(t, mode, bag)
	for step := 0; !g.Over(); step++ {
		require.Less(t, step, 20000, "game did not finish")
		autoplay(t, g, rng)
	}
	return g
}

func TestAutoplay_GamesFinishWithInvariantsIntact(t *testing.T) {
	for _, mode := range []GameMode{Singles2, Singles4, Singles6, Teams2vs2vs2} {
		for seed := int64(1); seed <= 5; seed++ {
			g := playToEnd(t, mode, seed)
			require.NoError(t, g.checkInvariants())

			sb := g.ScoreBoard()
			for _, c := range Chains {
				assert.Equal(t, SharesPerChain, sb.Available(c), "%s: all shares are bought back at the end", c)
			}
			assert.IsType(t, GameOverDecision{}, g.Top())
		}
	}
}

func TestSnapshot_ReplayIsDeterministic(t *testing.T) {
	g := playToEnd(t, Singles3, 7)
	ts := int64(1700000000000)
	snap := g.Snapshot()
	snap.Moves[0].Timestamp = &ts

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Moves[0].Timestamp)
	assert.Equal(t, ts, *decoded.Moves[0].Timestamp)

	again, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again), "canonical encoding is stable")

	replayed, err := FromSnapshot(decoded)
	require.NoError(t, err)

	want, got := g.Moves(), replayed.Moves()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].StateHash, got[i].StateHash, "move %d", i+1)
		assert.Equal(t, want[i].History, got[i].History, "move %d", i+1)
	}

	h1, err := g.StateHash()
	require.NoError(t, err)
	h2, err := replayed.StateHash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestSnapshot_Encoding(t *testing.T) {
	g := newTestGame(t, Singles2, freshBag(t))
	ts := int64(5)
	_, err := g.Apply(0, StartGame(), &ts)
	require.NoError(t, err)
	apply(t, g, PlayTile(tile(t, "3C")))

	data, err := json.Marshal(g.Snapshot())
	require.NoError(t, err)

	var raw []json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 9)
	assert.JSONEq(t, `"Singles2"`, string(raw[0]))
	assert.JSONEq(t, `"ExactOrder"`, string(raw[1]))
	assert.JSONEq(t, `null`, string(raw[2]))
	assert.JSONEq(t, `[100,101]`, string(raw[4]))
	assert.JSONEq(t, `["a","b"]`, string(raw[5]))
	assert.JSONEq(t, `100`, string(raw[6]))
	assert.JSONEq(t, `[[{"startGame":{}},5],[{"playTile":{"tile":20}}]]`, string(raw[8]))
}

func TestSnapshot_UnmarshalErrors(t *testing.T) {
	for _, in := range []string{
		`{}`,
		`[1,2,3]`,
		`["Singles9","ExactOrder",null,null,[],[],0,[],[]]`,
		`["Singles2","Sideways",null,null,[],[],0,[],[]]`,
		`["Singles2","ExactOrder",null,null,[],[],0,[],[[]]]`,
	} {
		var s Snapshot
		assert.Error(t, json.Unmarshal([]byte(in), &s), in)
	}
}

func TestFromSnapshot_RejectsIllegalMove(t *testing.T) {
	g := newTestGame(t, Singles2, freshBag(t))
	snap := g.Snapshot()
	snap.Moves = []SnapshotMove{{Action: StartGame()}, {Action: PlayTile(tile(t, "9C"))}}

	_, err := FromSnapshot(snap)
	require.Error(t, err)
	assert.Equal(t, ErrCodeTileNotInRack, ValidationCode(err))
	assert.Contains(t, err.Error(), "replay move 2")
}
