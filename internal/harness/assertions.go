package harness

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/notation"
)

// AssertionError is returned when an assertion fails.
// It includes the last move's history to help debug the failure.
type AssertionError struct {
	Type     string   // Assertion type for categorization
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	History  []string // History of the last move
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.History) > 0 {
		fmt.Fprintf(&buf, "\nLast move:\n")
		for _, line := range e.History {
			fmt.Fprintf(&buf, "  %s\n", line)
		}
	}

	return buf.String()
}

// evaluateAssertion checks a against the final game state.
func evaluateAssertion(g *engine.Game, a Assertion) error {
	fail := func(expected, actual string) error {
		return &AssertionError{
			Type:     a.Type,
			Expected: expected,
			Actual:   actual,
			History:  lastHistory(g),
		}
	}
	intEquals := func(what string, got int) error {
		if got != *a.Value {
			return fail(fmt.Sprintf("%s = %d", what, *a.Value), strconv.Itoa(got))
		}
		return nil
	}

	score := g.ScoreBoard()
	switch a.Type {
	case AssertCash:
		if err := checkSeat(g, *a.Player); err != nil {
			return err
		}
		return intEquals(fmt.Sprintf("player %d cash", *a.Player), score.Cash(*a.Player))

	case AssertNetWorth:
		if err := checkSeat(g, *a.Player); err != nil {
			return err
		}
		return intEquals(fmt.Sprintf("player %d net worth", *a.Player), score.NetWorth(*a.Player))

	case AssertShares:
		if err := checkSeat(g, *a.Player); err != nil {
			return err
		}
		c, err := notation.ParseChainLetter(a.Chain)
		if err != nil {
			return err
		}
		return intEquals(fmt.Sprintf("player %d %s shares", *a.Player, c), score.Shares(*a.Player, c))

	case AssertChainSize:
		c, err := notation.ParseChainLetter(a.Chain)
		if err != nil {
			return err
		}
		return intEquals(fmt.Sprintf("%s size", c), score.ChainSize(c))

	case AssertNext:
		if got := formatNext(g.Top()); got != a.Decision {
			return fail("next action "+a.Decision, got)
		}
		return nil

	case AssertOver:
		if g.Over() != *a.Over {
			return fail(fmt.Sprintf("over = %t", *a.Over), strconv.FormatBool(g.Over()))
		}
		return nil

	case AssertHistoryContains:
		for _, m := range g.Moves() {
			if containsHistory(m.History, a.Message) {
				return nil
			}
		}
		return fail(fmt.Sprintf("history message %q", a.Message), "not found in any move")
	}

	return fmt.Errorf("unknown assertion type %q", a.Type)
}

func checkSeat(g *engine.Game, seat int) error {
	if seat < 0 || seat >= g.NumPlayers() {
		return fmt.Errorf("player %d is not seated (game has %d players)", seat, g.NumPlayers())
	}
	return nil
}

// formatNext renders a pending decision the way transcripts do.
func formatNext(d engine.Decision) string {
	return notation.FormatDecision(d)
}

func containsHistory(history []engine.HistoryMessage, want string) bool {
	for _, m := range history {
		if notation.FormatHistory(m) == want {
			return true
		}
	}
	return false
}

func lastHistory(g *engine.Game) []string {
	moves := g.Moves()
	if len(moves) == 0 {
		return nil
	}
	last := moves[len(moves)-1]
	lines := make([]string, len(last.History))
	for i, m := range last.History {
		lines[i] = notation.FormatHistory(m)
	}
	return lines
}
