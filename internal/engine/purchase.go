package engine

// preparePurchaseShares skips the purchase when the player could buy a share
// but cannot afford any, unless the game could be ended this turn.
func (g *Game) preparePurchaseShares(d PurchaseSharesDecision) ([]Decision, bool, error) {
	p := d.Player
	purchasable, affordable := false, false
	for _, c := range Chains {
		if !g.score.Active(c) || g.score.Available(c) == 0 {
			continue
		}
		purchasable = true
		if g.score.Price(c) <= g.score.Cash(p) {
			affordable = true
		}
	}
	if !purchasable || affordable || g.CanEndGame() {
		return nil, false, nil
	}
	g.emit(HistoryMessage{Kind: CouldNotAffordAnyShares, Player: p})
	return g.endTurn(p), true, nil
}

func (g *Game) purchaseShares(d PurchaseSharesDecision, a PurchaseSharesAction) ([]Decision, error) {
	p := d.Player
	if len(a.Chains) > MaxSharesPerTurn {
		return nil, newValidationError(ErrCodePurchaseLimit, "cannot buy %d shares, limit is %d", len(a.Chains), MaxSharesPerTurn)
	}

	var counts [NumChains]int
	cost := 0
	for _, c := range a.Chains {
		if !c.Valid() {
			return nil, newValidationError(ErrCodeInvalidChain, "unknown chain %d", int(c))
		}
		if !g.score.Active(c) {
			return nil, newValidationError(ErrCodeInvalidChain, "%s is not on the board", c)
		}
		counts[c]++
		if counts[c] > g.score.Available(c) {
			return nil, newValidationError(ErrCodeInsufficientShares, "bank has only %d shares of %s", g.score.Available(c), c)
		}
		cost += g.score.Price(c)
	}
	if cost > g.score.Cash(p) {
		return nil, newValidationError(ErrCodeInsufficientCash, "shares cost %d, player %d has %d", cost, p, g.score.Cash(p))
	}
	if a.EndGame && !g.CanEndGame() {
		return nil, newValidationError(ErrCodeCannotEndGame, "no chain has %d tiles and not every chain is safe", EndGameChainSize)
	}

	var purchases []Purchase
	for _, c := range Chains {
		if counts[c] == 0 {
			continue
		}
		g.score.transferFromBank(p, c, counts[c])
		g.score.adjustCash(p, -counts[c]*g.score.Price(c))
		purchases = append(purchases, Purchase{Chain: c, Count: counts[c]})
	}
	g.emit(HistoryMessage{Kind: PurchasedShares, Player: p, Purchases: purchases})

	if a.EndGame {
		g.emit(HistoryMessage{Kind: EndedGame, Player: p})
		return g.finishGame(p), nil
	}
	return g.endTurn(p), nil
}

// CanEndGame reports whether a player may declare the end of the game: some
// chain has reached the end-game size, or every chain on the board is safe.
func (g *Game) CanEndGame() bool {
	active, safe := 0, 0
	for _, c := range Chains {
		if !g.score.Active(c) {
			continue
		}
		if g.score.ChainSize(c) >= EndGameChainSize {
			return true
		}
		active++
		if g.score.Safe(c) {
			safe++
		}
	}
	return active > 0 && safe == active
}

// finishGame pays the final bonuses of every chain on the board, buys back
// every share at its current price and leaves GameOver on the stack.
func (g *Game) finishGame(p int) []Decision {
	for _, c := range Chains {
		if g.score.Active(c) {
			g.payBonuses(c)
		}
	}
	for seat := range g.players {
		for _, c := range Chains {
			n := g.score.Shares(seat, c)
			if n == 0 {
				continue
			}
			g.score.adjustCash(seat, n*g.score.Price(c))
			g.score.transferFromBank(seat, c, -n)
		}
	}
	g.over = true
	return []Decision{GameOverDecision{Player: p}}
}
