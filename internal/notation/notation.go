package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/acquire/internal/engine"
)

var chainLetters = [engine.NumChains]string{"L", "T", "A", "F", "W", "C", "I"}

// NoneSentinel stands for an empty chain list.
const NoneSentinel = "x"

// ChainLetter returns the single-letter form of c.
func ChainLetter(c engine.Chain) string {
	if !c.Valid() {
		return "?"
	}
	return chainLetters[c]
}

// ParseChainLetter parses a single chain letter.
func ParseChainLetter(s string) (engine.Chain, error) {
	for i, l := range chainLetters {
		if l == s {
			return engine.Chain(i), nil
		}
	}
	return 0, fmt.Errorf("unknown chain letter %q", s)
}

// FormatChains joins chain letters with commas, or returns "x" when empty.
func FormatChains(chains []engine.Chain) string {
	if len(chains) == 0 {
		return NoneSentinel
	}
	parts := make([]string, len(chains))
	for i, c := range chains {
		parts[i] = ChainLetter(c)
	}
	return strings.Join(parts, ",")
}

// ParseChains parses the FormatChains form.
func ParseChains(s string) ([]engine.Chain, error) {
	if s == NoneSentinel {
		return nil, nil
	}
	var out []engine.Chain
	for _, part := range strings.Split(s, ",") {
		c, err := ParseChainLetter(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// FormatTiles joins tiles with ", ".
func FormatTiles(tiles []engine.Tile) string {
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// ParseTiles parses the FormatTiles form. An empty string is an empty list.
func ParseTiles(s string) ([]engine.Tile, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []engine.Tile
	for _, part := range strings.Split(s, ",") {
		t, err := engine.ParseTile(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// ActionParams returns the parameters of a as strings, without the kind.
func ActionParams(a engine.Action) ([]string, error) {
	kind, err := a.Kind()
	if err != nil {
		return nil, err
	}
	switch kind {
	case engine.KindStartGame:
		return nil, nil
	case engine.KindPlayTile:
		return []string{a.PlayTile.Tile.String()}, nil
	case engine.KindSelectNewChain:
		return []string{ChainLetter(a.SelectNewChain.Chain)}, nil
	case engine.KindSelectMergerSurvivor:
		return []string{ChainLetter(a.SelectMergerSurvivor.Chain)}, nil
	case engine.KindSelectChainToDisposeOfNext:
		return []string{ChainLetter(a.SelectChainToDisposeOfNext.Chain)}, nil
	case engine.KindDisposeOfShares:
		return []string{
			strconv.Itoa(a.DisposeOfShares.TradeAmount),
			strconv.Itoa(a.DisposeOfShares.SellAmount),
		}, nil
	case engine.KindPurchaseShares:
		end := "0"
		if a.PurchaseShares.EndGame {
			end = "1"
		}
		return []string{FormatChains(a.PurchaseShares.Chains), end}, nil
	}
	return nil, fmt.Errorf("no notation for %s", kind)
}

// FormatAction renders a as "<Kind> <params...>".
func FormatAction(a engine.Action) (string, error) {
	kind, err := a.Kind()
	if err != nil {
		return "", err
	}
	params, err := ActionParams(a)
	if err != nil {
		return "", err
	}
	return strings.Join(append([]string{kind.String()}, params...), " "), nil
}

// ParseAction parses the FormatAction form.
func ParseAction(line string) (engine.Action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return engine.Action{}, fmt.Errorf("empty action")
	}
	kind, err := engine.ParseDecisionKind(fields[0])
	if err != nil {
		return engine.Action{}, err
	}
	params := fields[1:]
	want := map[engine.DecisionKind]int{
		engine.KindStartGame:                  0,
		engine.KindPlayTile:                   1,
		engine.KindSelectNewChain:             1,
		engine.KindSelectMergerSurvivor:       1,
		engine.KindSelectChainToDisposeOfNext: 1,
		engine.KindDisposeOfShares:            2,
		engine.KindPurchaseShares:             2,
	}
	n, ok := want[kind]
	if !ok {
		return engine.Action{}, fmt.Errorf("%s takes no action", kind)
	}
	if len(params) != n {
		return engine.Action{}, fmt.Errorf("%s takes %d parameters, got %d", kind, n, len(params))
	}

	switch kind {
	case engine.KindStartGame:
		return engine.StartGame(), nil
	case engine.KindPlayTile:
		t, err := engine.ParseTile(params[0])
		if err != nil {
			return engine.Action{}, err
		}
		return engine.PlayTile(t), nil
	case engine.KindSelectNewChain, engine.KindSelectMergerSurvivor, engine.KindSelectChainToDisposeOfNext:
		c, err := ParseChainLetter(params[0])
		if err != nil {
			return engine.Action{}, err
		}
		switch kind {
		case engine.KindSelectNewChain:
			return engine.SelectNewChain(c), nil
		case engine.KindSelectMergerSurvivor:
			return engine.SelectMergerSurvivor(c), nil
		}
		return engine.SelectChainToDisposeOfNext(c), nil
	case engine.KindDisposeOfShares:
		trade, err := strconv.Atoi(params[0])
		if err != nil {
			return engine.Action{}, fmt.Errorf("trade amount: %w", err)
		}
		sell, err := strconv.Atoi(params[1])
		if err != nil {
			return engine.Action{}, fmt.Errorf("sell amount: %w", err)
		}
		return engine.DisposeOfShares(trade, sell), nil
	default:
		chains, err := ParseChains(params[0])
		if err != nil {
			return engine.Action{}, err
		}
		var end bool
		switch params[1] {
		case "1":
			end = true
		case "0":
		default:
			return engine.Action{}, fmt.Errorf("end game flag must be 0 or 1, got %q", params[1])
		}
		return engine.PurchaseShares(chains, end), nil
	}
}

// FormatHistory renders one history message, e.g. "0 PlayedTile 5E" or
// "1 PurchasedShares 2L,1C".
func FormatHistory(m engine.HistoryMessage) string {
	parts := []string{}
	if m.Kind != engine.NoTilesPlayedForEntireRound && m.Kind != engine.AllTilesPlayed {
		parts = append(parts, strconv.Itoa(m.Player))
	}
	parts = append(parts, m.Kind.String())

	switch m.Kind {
	case engine.DrewPositionTile, engine.DrewTile, engine.PlayedTile, engine.ReplacedDeadTile:
		parts = append(parts, m.Tile.String())
	case engine.FormedChain, engine.SelectedMergerSurvivor, engine.SelectedChainToDisposeOfNext:
		parts = append(parts, ChainLetter(m.Chain))
	case engine.MergedChains:
		parts = append(parts, FormatChains(m.Chains))
	case engine.ReceivedBonus:
		parts = append(parts, ChainLetter(m.Chain), strconv.Itoa(m.Amount))
	case engine.DisposedOfShares:
		parts = append(parts, ChainLetter(m.Chain), strconv.Itoa(m.TradeAmount), strconv.Itoa(m.SellAmount))
	case engine.PurchasedShares:
		if len(m.Purchases) == 0 {
			parts = append(parts, NoneSentinel)
		} else {
			bought := make([]string, len(m.Purchases))
			for i, p := range m.Purchases {
				bought[i] = strconv.Itoa(p.Count) + ChainLetter(p.Chain)
			}
			parts = append(parts, strings.Join(bought, ","))
		}
	}
	return strings.Join(parts, " ")
}

// FormatDecision renders the pending decision, e.g. "1 PlayTile" or
// "0 SelectMergerSurvivor L,T".
func FormatDecision(d engine.Decision) string {
	parts := []string{strconv.Itoa(d.PlayerID()), d.Kind().String()}
	switch d.Kind() {
	case engine.KindSelectNewChain, engine.KindSelectMergerSurvivor,
		engine.KindSelectChainToDisposeOfNext, engine.KindDisposeOfShares:
		parts = append(parts, FormatChains(engine.DecisionChains(d)))
	}
	return strings.Join(parts, " ")
}
