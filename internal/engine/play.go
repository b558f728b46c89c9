package engine

// startGame draws a position tile for every seat, gives the first turn to the
// lowest position tile, and deals the starting racks in turn order.
func (g *Game) startGame(d StartGameDecision) ([]Decision, error) {
	n := len(g.players)
	first, lowest := 0, Tile(NumTiles)
	for p := 0; p < n; p++ {
		t, ok := g.bag.draw()
		if !ok {
			return nil, newInternalError("tiles", "bag empty while drawing position tiles")
		}
		g.board.set(t, NothingYet)
		g.bagReveals = append(g.bagReveals, RevealedBagTile{Tile: t, Viewer: AllViewers})
		g.emit(HistoryMessage{Kind: DrewPositionTile, Player: p, Tile: t})
		if t < lowest {
			first, lowest = p, t
		}
	}
	g.emit(HistoryMessage{Kind: StartedGame, Player: d.Player})

	for i := 0; i < n; i++ {
		p := (first + i) % n
		g.fillRack(p)
	}

	g.turnPlayer = first
	return []Decision{PlayTileDecision{Player: first}}, nil
}

// preparePlayTile begins a turn. A player without a playable tile reveals the
// rack and skips straight to buying shares. The game ends once every player in
// a row has had nothing to play.
func (g *Game) preparePlayTile(d PlayTileDecision) ([]Decision, bool, error) {
	p := d.Player
	g.turnPlayer = p
	g.emit(HistoryMessage{Kind: TurnBegan, Player: p})

	if g.hasPlayableTile(p) {
		return nil, false, nil
	}

	g.emit(HistoryMessage{Kind: HasNoPlayableTile, Player: p})
	pl := &g.players[p]
	for slot, t := range pl.rack {
		if t == TileNone || pl.revealed[slot] {
			continue
		}
		pl.revealed[slot] = true
		g.rackReveals = append(g.rackReveals, RevealedRackTile{Tile: t, Owner: p})
	}

	g.turnsWithoutPlayedTile++
	if g.turnsWithoutPlayedTile >= len(g.players) {
		g.emit(HistoryMessage{Kind: NoTilesPlayedForEntireRound, Player: -1})
		return g.finishGame(p), true, nil
	}
	return []Decision{PurchaseSharesDecision{Player: p}}, true, nil
}

func (g *Game) playTile(d PlayTileDecision, t Tile) ([]Decision, error) {
	p := d.Player
	if !t.Valid() {
		return nil, newValidationError(ErrCodeInvalidTile, "tile %d is not on the board", int(t))
	}
	slot := g.rackSlot(p, t)
	if slot < 0 {
		return nil, newValidationError(ErrCodeTileNotInRack, "tile %s is not in player %d's rack", t, p)
	}
	pl := classify(g.board, &g.score.sizes, t)
	if !pl.kind.Playable() {
		return nil, newValidationError(ErrCodeTileNotPlayable, "tile %s cannot be played: %s", t, pl.kind)
	}

	g.players[p].rack[slot] = TileNone
	g.players[p].revealed[slot] = false
	g.turnsWithoutPlayedTile = 0
	g.emit(HistoryMessage{Kind: PlayedTile, Player: p, Tile: t})

	purchase := PurchaseSharesDecision{Player: p}

	if c, ok := pl.kind.Chain(); ok {
		g.board.fill(t, ChainCell(c))
		g.score.setSizesFrom(g.board)
		return []Decision{purchase}, nil
	}

	switch pl.kind {
	case WillPutLonelyTileDown:
		g.board.set(t, NothingYet)
		return []Decision{purchase}, nil

	case WillFormNewChain:
		g.board.set(t, NothingYet)
		var available []Chain
		for _, c := range Chains {
			if !g.score.Active(c) {
				available = append(available, c)
			}
		}
		return []Decision{
			SelectNewChainDecision{Player: p, AvailableChains: available, Tile: t},
			purchase,
		}, nil

	case WillMergeChains:
		g.board.set(t, NothingYet)
		groups := groupBySize(pl.chains, &g.score.sizes)
		var merged []Chain
		for _, grp := range groups {
			merged = append(merged, grp...)
		}
		g.emit(HistoryMessage{Kind: MergedChains, Player: p, Chains: merged})
		return []Decision{
			SelectMergerSurvivorDecision{Player: p, ChainsBySize: groups, Tile: t},
			purchase,
		}, nil
	}
	return nil, newInternalError("board", "unexpected placement %s for tile %s", pl.kind, t)
}

func (g *Game) selectNewChain(d SelectNewChainDecision, c Chain) ([]Decision, error) {
	if !c.Valid() || !containsChain(d.AvailableChains, c) {
		return nil, newValidationError(ErrCodeInvalidChain, "%s is not available for a new chain", c)
	}
	p := d.Player
	g.board.fill(d.Tile, ChainCell(c))
	g.score.setSizesFrom(g.board)
	g.emit(HistoryMessage{Kind: FormedChain, Player: p, Chain: c})
	if g.score.Available(c) > 0 {
		g.score.transferFromBank(p, c, 1)
	}
	return nil, nil
}

// rackSlot returns the slot holding t in the player's rack, or -1.
func (g *Game) rackSlot(p int, t Tile) int {
	for i, rt := range g.players[p].rack {
		if rt == t {
			return i
		}
	}
	return -1
}

func (g *Game) hasPlayableTile(p int) bool {
	for _, t := range g.players[p].rack {
		if t != TileNone && classify(g.board, &g.score.sizes, t).kind.Playable() {
			return true
		}
	}
	return false
}

// RackCells classifies every slot of the player's rack against the current
// board. Empty slots are Nothing. A lonely tile next to another tile in the
// same rack is HaveNeighboringTileToo, and a tile extending a chain is that
// chain's cell.
func (g *Game) RackCells(p int) [RackSize]Cell {
	var out [RackSize]Cell
	rack := g.players[p].rack
	for i, t := range rack {
		if t == TileNone {
			out[i] = Nothing
			continue
		}
		kind := classify(g.board, &g.score.sizes, t).kind
		if kind == WillPutLonelyTileDown && rackHasNeighbor(rack, t) {
			kind = HaveNeighboringTileToo
		}
		out[i] = kind
	}
	return out
}

func rackHasNeighbor(rack [RackSize]Tile, t Tile) bool {
	for _, n := range t.Neighbors() {
		for _, rt := range rack {
			if rt == n {
				return true
			}
		}
	}
	return false
}

// drawInto fills the rack slot from the bag. It reports false when the bag
// is empty.
func (g *Game) drawInto(p, slot int) bool {
	t, ok := g.bag.draw()
	if !ok {
		return false
	}
	g.players[p].rack[slot] = t
	g.players[p].revealed[slot] = false
	g.bagReveals = append(g.bagReveals, RevealedBagTile{Tile: t, Viewer: p})
	g.emit(HistoryMessage{Kind: DrewTile, Player: p, Tile: t})
	if g.bag.Empty() {
		g.emit(HistoryMessage{Kind: DrewLastTile, Player: p})
	}
	return true
}

// fillRack draws into every empty slot while the bag lasts.
func (g *Game) fillRack(p int) {
	for slot, t := range g.players[p].rack {
		if t != TileNone {
			continue
		}
		if !g.drawInto(p, slot) {
			return
		}
	}
}

// replaceDeadTiles swaps every permanently unplayable tile in the player's
// rack for a fresh draw. A replacement that is dead too is replaced again.
// Dead tiles stay put once the bag is empty.
func (g *Game) replaceDeadTiles(p int) {
	pl := &g.players[p]
	for slot := range pl.rack {
		for {
			t := pl.rack[slot]
			if t == TileNone || g.bag.Empty() {
				break
			}
			if classify(g.board, &g.score.sizes, t).kind != CantPlayEver {
				break
			}
			g.dead = append(g.dead, t)
			pl.rack[slot] = TileNone
			pl.revealed[slot] = false
			g.rackReveals = append(g.rackReveals, RevealedRackTile{Tile: t, Owner: p})
			g.emit(HistoryMessage{Kind: ReplacedDeadTile, Player: p, Tile: t})
			g.drawInto(p, slot)
		}
	}
}

// endTurn draws for the turn player, replaces their dead tiles and passes the
// turn. Only the turn player's rack is touched.
func (g *Game) endTurn(p int) []Decision {
	g.fillRack(p)
	g.replaceDeadTiles(p)

	if g.bag.Empty() && g.racksEmpty() {
		g.emit(HistoryMessage{Kind: AllTilesPlayed, Player: -1})
		return g.finishGame(p)
	}

	next := (p + 1) % len(g.players)
	return []Decision{PlayTileDecision{Player: next}}
}

func (g *Game) racksEmpty() bool {
	for _, pl := range g.players {
		for _, t := range pl.rack {
			if t != TileNone {
				return false
			}
		}
	}
	return true
}
