package engine

// Spectator is the viewer id of someone watching without a seat.
const Spectator = -1

// View is the game as one viewer may see it. It shares nothing with the
// game's internal state.
type View struct {
	Viewer int
	Seq    int64

	// Board holds the board cells. Empty cells under the viewer's own rack
	// tiles read IHaveThis.
	Board [NumTiles]Cell

	// Racks holds every rack by seat. Tiles the viewer may not see are
	// TileUnknown, empty slots TileNone.
	Racks [][RackSize]Tile

	// RackCells classifies the viewer's own rack. Zero for spectators.
	RackCells [RackSize]Cell

	Cash      []int
	Shares    [][NumChains]int
	NetWorth  []int
	Available [NumChains]int
	Sizes     [NumChains]int
	Prices    [NumChains]int

	TurnPlayer   int
	BagRemaining int
	Next         Decision
	Over         bool

	// LastMove is the most recent move, redacted for the viewer.
	LastMove *MoveRecord
}

// View projects the game for viewer, a seat or Spectator.
func (g *Game) View(viewer int) View {
	v := View{
		Viewer:       viewer,
		Seq:          g.clock.Current(),
		TurnPlayer:   g.turnPlayer,
		BagRemaining: g.bag.Remaining(),
		Next:         g.Top(),
		Over:         g.over,
		Racks:        make([][RackSize]Tile, len(g.players)),
		Cash:         make([]int, len(g.players)),
		Shares:       make([][NumChains]int, len(g.players)),
		NetWorth:     make([]int, len(g.players)),
	}
	v.Board = g.board.cells

	for p, pl := range g.players {
		for i, t := range pl.rack {
			switch {
			case t == TileNone:
				v.Racks[p][i] = TileNone
			case p == viewer || pl.revealed[i]:
				v.Racks[p][i] = t
			default:
				v.Racks[p][i] = TileUnknown
			}
		}
		v.Cash[p] = g.score.Cash(p)
		v.Shares[p] = g.score.shares[p]
		v.NetWorth[p] = g.score.NetWorth(p)
	}

	if viewer >= 0 && viewer < len(g.players) {
		v.RackCells = g.RackCells(viewer)
		for _, t := range g.players[viewer].rack {
			if t != TileNone && v.Board[t] == Nothing {
				v.Board[t] = IHaveThis
			}
		}
	}

	for _, c := range Chains {
		v.Available[c] = g.score.Available(c)
		v.Sizes[c] = g.score.ChainSize(c)
		v.Prices[c] = g.score.Price(c)
	}

	if len(g.moves) > 0 {
		m := RedactMove(g.moves[len(g.moves)-1], viewer)
		v.LastMove = &m
	}
	return v
}

// RedactMove returns a copy of m with every tile the viewer may not see
// replaced by TileUnknown. StateHash is cleared since it digests every rack
// and the bag order.
func RedactMove(m MoveRecord, viewer int) MoveRecord {
	out := m.copy()
	out.StateHash = ""
	out.History = redactHistory(m.History, viewer)
	for i, r := range out.RevealedBagTiles {
		if r.Viewer != AllViewers && r.Viewer != viewer {
			out.RevealedBagTiles[i].Tile = TileUnknown
		}
	}
	return out
}

// RedactedHistory returns the history of every move as viewer may see it.
func (g *Game) RedactedHistory(viewer int) [][]HistoryMessage {
	out := make([][]HistoryMessage, len(g.moves))
	for i, m := range g.moves {
		out[i] = redactHistory(m.History, viewer)
	}
	return out
}

// Standing is a player's position at the current point of the game.
type Standing struct {
	Player   int
	Team     int
	NetWorth int
}

// Standings returns every player's net worth by seat. Team is -1 in singles
// modes.
func (g *Game) Standings() []Standing {
	out := make([]Standing, len(g.players))
	for p := range g.players {
		out[p] = Standing{Player: p, Team: g.cfg.Mode.Team(p), NetWorth: g.score.NetWorth(p)}
	}
	return out
}

// TeamTotals sums net worth per team. It returns nil in singles modes.
func (g *Game) TeamTotals() []int {
	n := g.cfg.Mode.NumTeams()
	if n == 0 {
		return nil
	}
	totals := make([]int, n)
	for _, s := range g.Standings() {
		totals[s.Team] += s.NetWorth
	}
	return totals
}
