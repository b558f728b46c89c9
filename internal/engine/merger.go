package engine

// selectMergerSurvivor fixes the surviving chain and starts paying out the
// defunct chains, largest first. chosen is false when the survivor was the
// unique largest chain.
func (g *Game) selectMergerSurvivor(d SelectMergerSurvivorDecision, survivor Chain, chosen bool) ([]Decision, error) {
	if len(d.ChainsBySize) == 0 || !containsChain(d.ChainsBySize[0], survivor) {
		return nil, newValidationError(ErrCodeInvalidChain, "%s is not among the largest merging chains", survivor)
	}
	if chosen {
		g.emit(HistoryMessage{Kind: SelectedMergerSurvivor, Player: d.Player, Chain: survivor})
	}
	return []Decision{SelectChainToDisposeOfNextDecision{
		Player:        d.Player,
		DefunctChains: withoutChain(d.ChainsBySize, survivor),
		Survivor:      survivor,
		Tile:          d.Tile,
	}}, nil
}

// selectChainToDisposeOfNext pays the bonuses of the defunct chain and lets
// every holder dispose of their shares, starting with the merging player and
// going round the table. The remaining defunct chains follow.
func (g *Game) selectChainToDisposeOfNext(d SelectChainToDisposeOfNextDecision, defunct Chain, chosen bool) ([]Decision, error) {
	if len(d.DefunctChains) == 0 || !containsChain(d.DefunctChains[0], defunct) {
		return nil, newValidationError(ErrCodeInvalidChain, "%s is not among the largest remaining defunct chains", defunct)
	}
	if chosen {
		g.emit(HistoryMessage{Kind: SelectedChainToDisposeOfNext, Player: d.Player, Chain: defunct})
	}

	g.payBonuses(defunct)

	var next []Decision
	n := len(g.players)
	for i := 0; i < n; i++ {
		p := (d.Player + i) % n
		held := g.score.Shares(p, defunct)
		if held == 0 {
			continue
		}
		next = append(next, DisposeOfSharesDecision{
			Player:       p,
			DefunctChain: defunct,
			Survivor:     d.Survivor,
			SharesHeld:   held,
		})
	}
	next = append(next, SelectChainToDisposeOfNextDecision{
		Player:        d.Player,
		DefunctChains: withoutChain(d.DefunctChains, defunct),
		Survivor:      d.Survivor,
		Tile:          d.Tile,
	})
	return next, nil
}

// completeMerger hands the merged region to the survivor once every defunct
// chain has been paid out.
func (g *Game) completeMerger(d SelectChainToDisposeOfNextDecision) {
	g.board.fill(d.Tile, ChainCell(d.Survivor))
	g.score.setSizesFrom(g.board)
}

// disposeOfShares trades defunct shares two-for-one into the survivor and
// sells shares at the defunct chain's price. The defunct chain still has its
// pre-merger size while shares are disposed of.
func (g *Game) disposeOfShares(d DisposeOfSharesDecision, a DisposeOfSharesAction) ([]Decision, error) {
	p := d.Player
	trade, sell := a.TradeAmount, a.SellAmount
	if trade < 0 || sell < 0 {
		return nil, newValidationError(ErrCodeInvalidAmount, "amounts must not be negative")
	}
	if trade%2 != 0 {
		return nil, newValidationError(ErrCodeInvalidAmount, "trade amount %d is odd", trade)
	}
	held := g.score.Shares(p, d.DefunctChain)
	if trade+sell > held {
		return nil, newValidationError(ErrCodeInsufficientShares, "cannot dispose of %d shares of %s, holding %d", trade+sell, d.DefunctChain, held)
	}
	if trade/2 > g.score.Available(d.Survivor) {
		return nil, newValidationError(ErrCodeInsufficientShares, "bank has only %d shares of %s to trade for", g.score.Available(d.Survivor), d.Survivor)
	}

	price := g.score.Price(d.DefunctChain)
	g.score.transferFromBank(p, d.DefunctChain, -(trade + sell))
	g.score.transferFromBank(p, d.Survivor, trade/2)
	g.score.adjustCash(p, sell*price)
	g.emit(HistoryMessage{
		Kind:        DisposedOfShares,
		Player:      p,
		Chain:       d.DefunctChain,
		TradeAmount: trade,
		SellAmount:  sell,
	})
	return nil, nil
}

// payBonuses pays majority and minority bonuses for c at its current price.
func (g *Game) payBonuses(c Chain) {
	for _, b := range ComputeBonuses(g.score.Holdings(c), g.score.Price(c)) {
		g.score.adjustCash(b.Player, b.Amount)
		g.emit(HistoryMessage{Kind: ReceivedBonus, Player: b.Player, Chain: c, Amount: b.Amount})
	}
}
