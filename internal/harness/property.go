package harness

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/testutil"
)

// Property names.
const (
	PropTiles       = "tile_conservation"
	PropShares      = "share_conservation"
	PropCash        = "non_negative_cash"
	PropRedaction   = "rack_redaction"
	PropReplay      = "replay_determinism"
	PropTermination = "termination"
)

// PropertyViolation is one broken property.
type PropertyViolation struct {
	Seed     int64  `json:"seed"`
	Seq      int64  `json:"seq"`
	Property string `json:"property"`
	Detail   string `json:"detail"`
}

// String implements fmt.Stringer.
func (v PropertyViolation) String() string {
	return fmt.Sprintf("seed %d move %d: %s: %s", v.Seed, v.Seq, v.Property, v.Detail)
}

// PropertyReport summarizes a property run.
type PropertyReport struct {
	Mode       string              `json:"mode"`
	Games      int                 `json:"games"`
	Finished   int                 `json:"finished"`
	Moves      int                 `json:"moves"`
	Violations []PropertyViolation `json:"violations,omitempty"`
}

// Pass reports whether no property was broken.
func (r *PropertyReport) Pass() bool { return len(r.Violations) == 0 }

// CheckProperties plays one random game per seed, each from a bag shuffled
// by the seed, and checks the game's properties after every move. A game
// that is not over after maxMoves moves is a termination violation.
func (h *Harness) CheckProperties(ctx context.Context, mode engine.GameMode, seeds []int64, maxMoves int) (*PropertyReport, error) {
	report := &PropertyReport{Mode: mode.String()}
	for _, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, err := engine.NewGame(testutil.Config(mode, testutil.ShuffledBag(seed)))
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", seed, err)
		}
		player := testutil.NewAutoplayer(seed)
		report.Games++

		for !g.Over() && len(g.Moves()) < maxMoves {
			rec, err := player.Step(g, nil)
			if err != nil {
				return nil, fmt.Errorf("seed %d: %w", seed, err)
			}
			report.Moves++
			for _, v := range checkMove(g, rec) {
				v.Seed = seed
				report.Violations = append(report.Violations, v)
			}
		}

		if g.Over() {
			report.Finished++
		} else {
			report.Violations = append(report.Violations, PropertyViolation{
				Seed:     seed,
				Seq:      g.Seq(),
				Property: PropTermination,
				Detail:   fmt.Sprintf("not over after %d moves", maxMoves),
			})
		}
		if v := checkReplay(g); v != nil {
			v.Seed = seed
			report.Violations = append(report.Violations, *v)
		}
	}

	h.logger.Info("properties checked",
		"mode", mode.String(),
		"games", report.Games,
		"moves", report.Moves,
		"violations", len(report.Violations),
	)
	return report, nil
}

func checkMove(g *engine.Game, rec engine.MoveRecord) []PropertyViolation {
	var out []PropertyViolation
	violate := func(prop, format string, args ...any) {
		out = append(out, PropertyViolation{Seq: rec.Seq, Property: prop, Detail: fmt.Sprintf(format, args...)})
	}

	tiles := len(g.Board().PlacedTiles()) + g.BagRemaining() + len(g.DeadTiles())
	for p := 0; p < g.NumPlayers(); p++ {
		for _, t := range g.Rack(p) {
			if t != engine.TileNone {
				tiles++
			}
		}
	}
	if tiles != engine.NumTiles {
		violate(PropTiles, "%d tiles accounted for, want %d", tiles, engine.NumTiles)
	}

	score := g.ScoreBoard()
	for _, c := range engine.Chains {
		total := score.Available(c)
		for p := 0; p < g.NumPlayers(); p++ {
			total += score.Shares(p, c)
		}
		if total != engine.SharesPerChain {
			violate(PropShares, "%s: %d shares accounted for, want %d", c, total, engine.SharesPerChain)
		}
	}
	for p := 0; p < g.NumPlayers(); p++ {
		if score.Cash(p) < 0 {
			violate(PropCash, "player %d has %d", p, score.Cash(p))
		}
	}

	viewers := []int{engine.Spectator}
	for p := 0; p < g.NumPlayers(); p++ {
		viewers = append(viewers, p)
	}
	for _, viewer := range viewers {
		v := g.View(viewer)
		for p := 0; p < g.NumPlayers(); p++ {
			rack := g.Rack(p)
			for i, seen := range v.Racks[p] {
				held := rack[i]
				switch {
				case seen == held:
				case seen == engine.TileUnknown && held != engine.TileNone && p != viewer:
				default:
					violate(PropRedaction, "viewer %d sees player %d slot %d as %s, holds %s", viewer, p, i, seen, held)
				}
			}
		}
		for _, m := range engine.RedactMove(rec, viewer).History {
			if m.Kind == engine.DrewTile && m.Player != viewer && m.Tile != engine.TileUnknown {
				violate(PropRedaction, "viewer %d sees player %d draw %s", viewer, m.Player, m.Tile)
			}
		}
	}
	return out
}

// checkReplay rebuilds the game from its JSON snapshot and compares state
// hashes.
func checkReplay(g *engine.Game) *PropertyViolation {
	fail := func(format string, args ...any) *PropertyViolation {
		return &PropertyViolation{Seq: g.Seq(), Property: PropReplay, Detail: fmt.Sprintf(format, args...)}
	}

	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		return fail("encode snapshot: %v", err)
	}
	var snap engine.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fail("decode snapshot: %v", err)
	}
	replayed, err := engine.FromSnapshot(snap)
	if err != nil {
		return fail("replay: %v", err)
	}
	want, err := g.StateHash()
	if err != nil {
		return fail("hash: %v", err)
	}
	got, err := replayed.StateHash()
	if err != nil {
		return fail("hash replay: %v", err)
	}
	if want != got {
		return fail("replayed state hash %s, want %s", got, want)
	}
	return nil
}
