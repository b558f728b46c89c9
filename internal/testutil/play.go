package testutil

import (
	"fmt"
	"math/rand"

	"github.com/roach88/acquire/internal/engine"
)

// Config returns a game configuration for mode: users 1..n named p1..pn,
// seated in that order, with user 1 as host.
func Config(mode engine.GameMode, bag []engine.Tile) engine.Config {
	n := mode.NumPlayers()
	cfg := engine.Config{
		Mode:        mode,
		Arrangement: engine.ExactOrder,
		UserIDs:     make([]int, n),
		Usernames:   make([]string, n),
		HostUserID:  1,
		TileBag:     bag,
	}
	for i := 0; i < n; i++ {
		cfg.UserIDs[i] = i + 1
		cfg.Usernames[i] = fmt.Sprintf("p%d", i+1)
	}
	return cfg
}

// ShuffledBag returns all 108 tiles in an order fixed by seed.
func ShuffledBag(seed int64) []engine.Tile {
	rng := rand.New(rand.NewSource(seed))
	bag := make([]engine.Tile, engine.NumTiles)
	for i, n := range rng.Perm(engine.NumTiles) {
		bag[i] = engine.Tile(n)
	}
	return bag
}

// Tiles parses tile names such as "1A" and "12I". Panics on a bad name.
func Tiles(names ...string) []engine.Tile {
	tiles := make([]engine.Tile, len(names))
	for i, name := range names {
		t, err := engine.ParseTile(name)
		if err != nil {
			panic(fmt.Sprintf("testutil.Tiles: %v", err))
		}
		tiles[i] = t
	}
	return tiles
}

// Autoplayer picks legal actions for whichever player a game is waiting on:
// a random playable tile, a random offered chain, trade as many defunct
// shares as the bank allows and sell the rest, buy one affordable share,
// and end the game as soon as allowed.
type Autoplayer struct {
	rng *rand.Rand
}

// NewAutoplayer creates an autoplayer whose choices are fixed by seed.
func NewAutoplayer(seed int64) *Autoplayer {
	return &Autoplayer{rng: rand.New(rand.NewSource(seed))}
}

// Action returns the player to act and a legal action for the pending
// decision. Returns an error once the game is over.
func (a *Autoplayer) Action(g *engine.Game) (int, engine.Action, error) {
	top := g.Top()
	p := top.PlayerID()
	switch d := top.(type) {
	case engine.StartGameDecision:
		return p, engine.StartGame(), nil
	case engine.PlayTileDecision:
		cells := g.RackCells(p)
		rack := g.Rack(p)
		var playable []engine.Tile
		for i, t := range rack {
			if t != engine.TileNone && cells[i].Playable() {
				playable = append(playable, t)
			}
		}
		if len(playable) == 0 {
			return p, engine.Action{}, fmt.Errorf("player %d has no playable tile", p)
		}
		return p, engine.PlayTile(playable[a.rng.Intn(len(playable))]), nil
	case engine.SelectNewChainDecision:
		return p, engine.SelectNewChain(a.pick(d)), nil
	case engine.SelectMergerSurvivorDecision:
		return p, engine.SelectMergerSurvivor(a.pick(d)), nil
	case engine.SelectChainToDisposeOfNextDecision:
		return p, engine.SelectChainToDisposeOfNext(a.pick(d)), nil
	case engine.DisposeOfSharesDecision:
		sb := g.ScoreBoard()
		trade := d.SharesHeld / 2 * 2
		if trade/2 > sb.Available(d.Survivor) {
			trade = sb.Available(d.Survivor) * 2
		}
		return p, engine.DisposeOfShares(trade, d.SharesHeld-trade), nil
	case engine.PurchaseSharesDecision:
		sb := g.ScoreBoard()
		var buy []engine.Chain
		for _, c := range engine.Chains {
			if sb.Active(c) && sb.Available(c) > 0 && sb.Price(c) <= sb.Cash(p) {
				buy = append(buy, c)
				break
			}
		}
		return p, engine.PurchaseShares(buy, g.CanEndGame()), nil
	default:
		return p, engine.Action{}, fmt.Errorf("no action for %s", top.Kind())
	}
}

func (a *Autoplayer) pick(d engine.Decision) engine.Chain {
	chains := engine.DecisionChains(d)
	return chains[a.rng.Intn(len(chains))]
}

// Step applies one action and returns the resulting move record.
func (a *Autoplayer) Step(g *engine.Game, timestamp *int64) (engine.MoveRecord, error) {
	p, action, err := a.Action(g)
	if err != nil {
		return engine.MoveRecord{}, err
	}
	if _, err := g.Apply(p, action, timestamp); err != nil {
		return engine.MoveRecord{}, fmt.Errorf("move %d: %s by %d: %w", g.Seq()+1, g.Top().Kind(), p, err)
	}
	moves := g.Moves()
	return moves[len(moves)-1], nil
}

// PlayToEnd applies actions until the game is over or limit moves were made.
func (a *Autoplayer) PlayToEnd(g *engine.Game, limit int) error {
	for i := 0; !g.Over(); i++ {
		if i >= limit {
			return fmt.Errorf("game not over after %d moves", limit)
		}
		if _, err := a.Step(g, nil); err != nil {
			return err
		}
	}
	return nil
}
