package engine

// Action is a player's answer to the pending decision.
// Exactly one field must be set, and it must match the decision's kind.
type Action struct {
	StartGame                  *StartGameAction       `json:"startGame,omitempty"`
	PlayTile                   *PlayTileAction        `json:"playTile,omitempty"`
	SelectNewChain             *SelectChainAction     `json:"selectNewChain,omitempty"`
	SelectMergerSurvivor       *SelectChainAction     `json:"selectMergerSurvivor,omitempty"`
	SelectChainToDisposeOfNext *SelectChainAction     `json:"selectChainToDisposeOfNext,omitempty"`
	DisposeOfShares            *DisposeOfSharesAction `json:"disposeOfShares,omitempty"`
	PurchaseShares             *PurchaseSharesAction  `json:"purchaseShares,omitempty"`
}

// StartGameAction starts a game. It takes no parameters.
type StartGameAction struct{}

// PlayTileAction places a tile from the player's rack.
type PlayTileAction struct {
	Tile Tile `json:"tile"`
}

// SelectChainAction names a chain for SelectNewChain, SelectMergerSurvivor
// and SelectChainToDisposeOfNext.
type SelectChainAction struct {
	Chain Chain `json:"chain"`
}

// DisposeOfSharesAction trades and sells shares of a defunct chain.
// Shares neither traded nor sold are kept.
type DisposeOfSharesAction struct {
	TradeAmount int `json:"tradeAmount"`
	SellAmount  int `json:"sellAmount"`
}

// PurchaseSharesAction buys one share per listed chain, repeats allowed.
// EndGame declares the end of the game after the purchase.
type PurchaseSharesAction struct {
	Chains  []Chain `json:"chains"`
	EndGame bool    `json:"endGame"`
}

// Action constructors.

func StartGame() Action { return Action{StartGame: &StartGameAction{}} }

func PlayTile(t Tile) Action { return Action{PlayTile: &PlayTileAction{Tile: t}} }

func SelectNewChain(c Chain) Action {
	return Action{SelectNewChain: &SelectChainAction{Chain: c}}
}

func SelectMergerSurvivor(c Chain) Action {
	return Action{SelectMergerSurvivor: &SelectChainAction{Chain: c}}
}

func SelectChainToDisposeOfNext(c Chain) Action {
	return Action{SelectChainToDisposeOfNext: &SelectChainAction{Chain: c}}
}

func DisposeOfShares(trade, sell int) Action {
	return Action{DisposeOfShares: &DisposeOfSharesAction{TradeAmount: trade, SellAmount: sell}}
}

func PurchaseShares(chains []Chain, endGame bool) Action {
	return Action{PurchaseShares: &PurchaseSharesAction{Chains: chains, EndGame: endGame}}
}

// Kind returns the decision kind the action answers.
// Returns a ValidationError if no field or more than one field is set.
func (a Action) Kind() (DecisionKind, error) {
	var kinds []DecisionKind
	if a.StartGame != nil {
		kinds = append(kinds, KindStartGame)
	}
	if a.PlayTile != nil {
		kinds = append(kinds, KindPlayTile)
	}
	if a.SelectNewChain != nil {
		kinds = append(kinds, KindSelectNewChain)
	}
	if a.SelectMergerSurvivor != nil {
		kinds = append(kinds, KindSelectMergerSurvivor)
	}
	if a.SelectChainToDisposeOfNext != nil {
		kinds = append(kinds, KindSelectChainToDisposeOfNext)
	}
	if a.DisposeOfShares != nil {
		kinds = append(kinds, KindDisposeOfShares)
	}
	if a.PurchaseShares != nil {
		kinds = append(kinds, KindPurchaseShares)
	}
	switch len(kinds) {
	case 0:
		return 0, newValidationError(ErrCodeInvalidAction, "action has no kind")
	case 1:
		return kinds[0], nil
	default:
		return 0, newValidationError(ErrCodeInvalidAction, "action sets %d kinds", len(kinds))
	}
}

// Value returns the action as a canonical JSON value, keyed like the JSON
// encoding. Malformed actions encode as an empty object.
func (a Action) Value() map[string]any {
	kind, err := a.Kind()
	if err != nil {
		return map[string]any{}
	}
	var params map[string]any
	switch kind {
	case KindStartGame:
		params = map[string]any{}
	case KindPlayTile:
		params = map[string]any{"tile": int(a.PlayTile.Tile)}
	case KindSelectNewChain:
		params = map[string]any{"chain": int(a.SelectNewChain.Chain)}
	case KindSelectMergerSurvivor:
		params = map[string]any{"chain": int(a.SelectMergerSurvivor.Chain)}
	case KindSelectChainToDisposeOfNext:
		params = map[string]any{"chain": int(a.SelectChainToDisposeOfNext.Chain)}
	case KindDisposeOfShares:
		params = map[string]any{
			"tradeAmount": a.DisposeOfShares.TradeAmount,
			"sellAmount":  a.DisposeOfShares.SellAmount,
		}
	case KindPurchaseShares:
		chains := make([]int, len(a.PurchaseShares.Chains))
		for i, c := range a.PurchaseShares.Chains {
			chains[i] = int(c)
		}
		params = map[string]any{"chains": chains, "endGame": a.PurchaseShares.EndGame}
	}
	return map[string]any{actionKeys[kind]: params}
}

var actionKeys = map[DecisionKind]string{
	KindStartGame:                  "startGame",
	KindPlayTile:                   "playTile",
	KindSelectNewChain:             "selectNewChain",
	KindSelectMergerSurvivor:       "selectMergerSurvivor",
	KindSelectChainToDisposeOfNext: "selectChainToDisposeOfNext",
	KindDisposeOfShares:            "disposeOfShares",
	KindPurchaseShares:             "purchaseShares",
}
