package notation

import (
	"strconv"
	"strings"

	"github.com/roach88/acquire/internal/engine"
)

var cellGlyphs = map[engine.Cell]string{
	engine.Nothing:                "·",
	engine.NothingYet:             "O",
	engine.CantPlayEver:           "█",
	engine.IHaveThis:              "i",
	engine.WillPutLonelyTileDown:  "l",
	engine.HaveNeighboringTileToo: "h",
	engine.WillFormNewChain:       "n",
	engine.WillMergeChains:        "m",
	engine.CantPlayNow:            "c",
}

// CellGlyph returns the one-character form of a cell: the chain letter for
// chain cells, otherwise a fixed glyph.
func CellGlyph(c engine.Cell) string {
	if ch, ok := c.Chain(); ok {
		return ChainLetter(ch)
	}
	if g, ok := cellGlyphs[c]; ok {
		return g
	}
	return "?"
}

// BoardLines renders the board as nine rows of twelve glyphs, row A first.
func BoardLines(cells [engine.NumTiles]engine.Cell) []string {
	lines := make([]string, engine.BoardHeight)
	for y := 0; y < engine.BoardHeight; y++ {
		var b strings.Builder
		for x := 0; x < engine.BoardWidth; x++ {
			b.WriteString(CellGlyph(cells[engine.NewTile(x, y)]))
		}
		lines[y] = b.String()
	}
	return lines
}

var scoreColumnWidths = []int{1, 2, 2, 2, 2, 2, 2, 2, 4, 4}

func scoreLine(entries []string) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		if pad := scoreColumnWidths[i] - len(e); pad > 0 {
			e = strings.Repeat(" ", pad) + e
		}
		parts[i] = e
	}
	return strings.Join(parts, " ")
}

// ScoreBoardLines renders the score board of v. Cash and net worth are shown
// in hundreds. The turn player is marked T and the player who must act next,
// when different, M.
func ScoreBoardLines(v engine.View) []string {
	lines := []string{scoreLine([]string{"P", "L", "T", "A", "F", "W", "C", "I", "Cash", "Net"})}

	turn, mover := v.TurnPlayer, -1
	if v.Next != nil {
		mover = v.Next.PlayerID()
	}
	if v.Over {
		turn, mover = -1, -1
	}
	for p := range v.Cash {
		name := ""
		switch p {
		case turn:
			name = "T"
		case mover:
			name = "M"
		}
		row := []string{name}
		for _, c := range engine.Chains {
			n := v.Shares[p][c]
			if n == 0 {
				row = append(row, "")
			} else {
				row = append(row, strconv.Itoa(n))
			}
		}
		row = append(row, strconv.Itoa(v.Cash[p]/100), strconv.Itoa(v.NetWorth[p]/100))
		lines = append(lines, scoreLine(row))
	}

	available := []string{"A"}
	sizes := []string{"C"}
	prices := []string{"P"}
	for _, c := range engine.Chains {
		available = append(available, strconv.Itoa(v.Available[c]))
		sizes = append(sizes, dashIfZero(v.Sizes[c]))
		prices = append(prices, dashIfZero(v.Prices[c]/100))
	}
	lines = append(lines, scoreLine(available), scoreLine(sizes), scoreLine(prices))
	return lines
}

// boardSpacer stands in for a board row when the score board is taller than
// the board.
const boardSpacer = "            "

// BoardAndScoreLines renders the board with the score board to its right.
func BoardAndScoreLines(v engine.View) []string {
	board := BoardLines(v.Board)
	score := ScoreBoardLines(v)
	var lines []string
	for i := 0; i < len(board) || i < len(score); i++ {
		row := boardSpacer
		if i < len(board) {
			row = board[i]
		}
		if i < len(score) {
			row += "  " + score[i]
		}
		lines = append(lines, row)
	}
	return lines
}

func dashIfZero(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

// RackString renders a rack with each tile's classification, e.g.
// "3C(l) 5E(L) none ?". Unknown tiles render as "?" and empty slots as "none".
func RackString(rack [engine.RackSize]engine.Tile, cells [engine.RackSize]engine.Cell, own bool) string {
	parts := make([]string, len(rack))
	for i, t := range rack {
		switch {
		case t == engine.TileUnknown:
			parts[i] = "?"
		case t == engine.TileNone:
			parts[i] = "none"
		case own:
			parts[i] = t.String() + "(" + CellGlyph(cells[i]) + ")"
		default:
			parts[i] = t.String()
		}
	}
	return strings.Join(parts, " ")
}
