package harness

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/ir"
	"github.com/roach88/acquire/internal/notation"
)

func headerLines(gs GameSetup, cfg engine.Config) []string {
	lines := []string{
		"game mode: " + cfg.Mode.String(),
		"player arrangement mode: " + cfg.Arrangement.String(),
	}
	if cfg.TimeControlStartingAmount != nil && cfg.TimeControlIncrementAmount != nil {
		lines = append(lines, fmt.Sprintf("time control: %d %d",
			*cfg.TimeControlStartingAmount, *cfg.TimeControlIncrementAmount))
	}
	if len(cfg.TileBag) > 0 {
		lines = append(lines, "tile bag: "+notation.FormatTiles(cfg.TileBag))
	}
	for _, u := range gs.Users {
		lines = append(lines, fmt.Sprintf("user: %d %s", u.ID, u.Name))
	}
	lines = append(lines, "host: "+strconv.Itoa(gs.Host))
	if gs.Me != nil {
		lines = append(lines, "me: "+strconv.Itoa(*gs.Me))
	}
	return lines
}

func actionLine(seat int, a engine.Action) (string, error) {
	s, err := notation.FormatAction(a)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("action: %d %s", seat, s), nil
}

// moveLines renders the game after rec, seen by viewer.
func moveLines(g *engine.Game, rec engine.MoveRecord, viewer int) ([]string, error) {
	var lines []string
	if rec.Timestamp != nil {
		lines = append(lines, "timestamp: "+strconv.FormatInt(*rec.Timestamp, 10))
	}
	line, err := actionLine(rec.Player, rec.Action)
	if err != nil {
		return nil, err
	}
	lines = append(lines, line)

	for _, row := range notation.BoardAndScoreLines(g.View(viewer)) {
		lines = append(lines, "  "+row)
	}

	lines = append(lines, "  tile racks:")
	for p := 0; p < g.NumPlayers(); p++ {
		lines = append(lines, fmt.Sprintf("    %d: %s", p, notation.RackString(g.Rack(p), g.RackCells(p), true)))
	}

	if len(rec.RevealedRackTiles) > 0 {
		parts := make([]string, len(rec.RevealedRackTiles))
		for i, r := range rec.RevealedRackTiles {
			parts[i] = fmt.Sprintf("%s:%d", r.Tile, r.Owner)
		}
		lines = append(lines, "  revealed tile rack tiles: "+strings.Join(parts, ", "))
	}

	if len(rec.RevealedBagTiles) > 0 {
		parts := make([]string, len(rec.RevealedBagTiles))
		for i, r := range rec.RevealedBagTiles {
			who := "all"
			if r.Viewer != engine.AllViewers {
				who = strconv.Itoa(r.Viewer)
			}
			parts[i] = fmt.Sprintf("%s:%s", r.Tile, who)
		}
		lines = append(lines, "  revealed tile bag tiles: "+strings.Join(parts, ", "))

		lines = append(lines, "  messages:")
		for p := 0; p < g.NumPlayers(); p++ {
			lines = append(lines, fmt.Sprintf("    %d: %s", p, bagTilesSeenBy(rec, p)))
		}
		lines = append(lines, "    w: "+bagTilesSeenBy(rec, engine.Spectator))
	}

	lines = append(lines, "  history messages:")
	for _, m := range rec.History {
		lines = append(lines, "    "+notation.FormatHistory(m))
	}
	lines = append(lines, "  next action: "+notation.FormatDecision(rec.Next))
	return lines, nil
}

func bagTilesSeenBy(rec engine.MoveRecord, viewer int) string {
	redacted := engine.RedactMove(rec, viewer)
	tiles := make([]engine.Tile, len(redacted.RevealedBagTiles))
	for i, r := range redacted.RevealedBagTiles {
		tiles[i] = r.Tile
	}
	return notation.FormatTiles(tiles)
}

// rejectedLines renders an action the engine refused.
func rejectedLines(step Step, err error) []string {
	var lines []string
	if step.Timestamp != nil {
		lines = append(lines, "timestamp: "+strconv.FormatInt(*step.Timestamp, 10))
	}
	return append(lines, "action: "+strings.TrimSpace(step.Action), "  error: "+err.Error())
}

// gameJSONLines renders the snapshot one top-level element per line and one
// move per line.
func gameJSONLines(s engine.Snapshot) ([]string, error) {
	value := s.Value()
	lines := []string{"Game JSON:", "["}
	for _, field := range value[:len(value)-1] {
		data, err := ir.MarshalCanonical(field)
		if err != nil {
			return nil, fmt.Errorf("game json: %w", err)
		}
		lines = append(lines, "  "+string(data)+",")
	}

	lines = append(lines, "  [")
	moves, _ := value[len(value)-1].([]any)
	for i, m := range moves {
		data, err := ir.MarshalCanonical(m)
		if err != nil {
			return nil, fmt.Errorf("game json: move %d: %w", i+1, err)
		}
		sep := ","
		if i == len(moves)-1 {
			sep = ""
		}
		lines = append(lines, "    "+string(data)+sep)
	}
	lines = append(lines, "  ]", "]")
	return lines, nil
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}
