package engine

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/acquire/internal/ir"
)

// Snapshot is the persistent form of a game: the configuration plus every
// action applied so far. All other state is derived by replaying it.
//
// The JSON encoding is a canonical 9-element array:
//
//	[gameMode, playerArrangementMode, timeControlStartingAmount,
//	 timeControlIncrementAmount, userIDs, usernames, hostUserID, tileBag,
//	 [[action, timestamp?], ...]]
type Snapshot struct {
	Mode                       GameMode
	Arrangement                PlayerArrangementMode
	TimeControlStartingAmount  *int64
	TimeControlIncrementAmount *int64
	UserIDs                    []int
	Usernames                  []string
	HostUserID                 int
	TileBag                    []Tile
	Moves                      []SnapshotMove
}

// SnapshotMove is one applied action. The acting player is not stored: it is
// always the player named by the pending decision.
type SnapshotMove struct {
	Action    Action
	Timestamp *int64
}

// Snapshot returns the game's snapshot.
func (g *Game) Snapshot() Snapshot {
	cfg := g.cfg.clone()
	s := Snapshot{
		Mode:                       cfg.Mode,
		Arrangement:                cfg.Arrangement,
		TimeControlStartingAmount:  cfg.TimeControlStartingAmount,
		TimeControlIncrementAmount: cfg.TimeControlIncrementAmount,
		UserIDs:                    cfg.UserIDs,
		Usernames:                  cfg.Usernames,
		HostUserID:                 cfg.HostUserID,
		TileBag:                    cfg.TileBag,
		Moves:                      make([]SnapshotMove, len(g.moves)),
	}
	for i, m := range g.moves {
		s.Moves[i] = SnapshotMove{Action: m.Action, Timestamp: m.Timestamp}
	}
	return s
}

// Config returns the configuration the snapshot starts from.
func (s Snapshot) Config() Config {
	return Config{
		Mode:                       s.Mode,
		Arrangement:                s.Arrangement,
		TimeControlStartingAmount:  s.TimeControlStartingAmount,
		TimeControlIncrementAmount: s.TimeControlIncrementAmount,
		UserIDs:                    s.UserIDs,
		Usernames:                  s.Usernames,
		HostUserID:                 s.HostUserID,
		TileBag:                    s.TileBag,
	}.clone()
}

// Value returns the snapshot as a canonical JSON value.
func (s Snapshot) Value() []any {
	moves := make([]any, len(s.Moves))
	for i, m := range s.Moves {
		entry := []any{m.Action.Value()}
		if m.Timestamp != nil {
			entry = append(entry, *m.Timestamp)
		}
		moves[i] = entry
	}
	userIDs := append([]int(nil), s.UserIDs...)
	if userIDs == nil {
		userIDs = []int{}
	}
	usernames := append([]string(nil), s.Usernames...)
	if usernames == nil {
		usernames = []string{}
	}
	return []any{
		s.Mode.String(),
		s.Arrangement.String(),
		s.TimeControlStartingAmount,
		s.TimeControlIncrementAmount,
		userIDs,
		usernames,
		s.HostUserID,
		tilesToInts(s.TileBag),
		moves,
	}
}

// MarshalJSON encodes the snapshot as canonical JSON.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return ir.MarshalCanonical(s.Value())
}

// Hash digests the canonical encoding of the snapshot.
func (s Snapshot) Hash() (string, error) {
	data, err := s.MarshalJSON()
	if err != nil {
		return "", err
	}
	return ir.SnapshotHash(data), nil
}

// UnmarshalJSON decodes the 9-element array form.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if len(raw) != 9 {
		return fmt.Errorf("snapshot: want 9 elements, got %d", len(raw))
	}

	var mode, arrangement string
	if err := json.Unmarshal(raw[0], &mode); err != nil {
		return fmt.Errorf("snapshot game mode: %w", err)
	}
	if err := json.Unmarshal(raw[1], &arrangement); err != nil {
		return fmt.Errorf("snapshot player arrangement mode: %w", err)
	}
	var out Snapshot
	var err error
	if out.Mode, err = ParseGameMode(mode); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if out.Arrangement, err = ParsePlayerArrangementMode(arrangement); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	fields := []struct {
		name string
		dst  any
		raw  json.RawMessage
	}{
		{"time control starting amount", &out.TimeControlStartingAmount, raw[2]},
		{"time control increment amount", &out.TimeControlIncrementAmount, raw[3]},
		{"user ids", &out.UserIDs, raw[4]},
		{"usernames", &out.Usernames, raw[5]},
		{"host user id", &out.HostUserID, raw[6]},
		{"tile bag", &out.TileBag, raw[7]},
	}
	for _, f := range fields {
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return fmt.Errorf("snapshot %s: %w", f.name, err)
		}
	}

	var moves [][]json.RawMessage
	if err := json.Unmarshal(raw[8], &moves); err != nil {
		return fmt.Errorf("snapshot moves: %w", err)
	}
	for i, m := range moves {
		if len(m) < 1 || len(m) > 2 {
			return fmt.Errorf("snapshot move %d: want 1 or 2 elements, got %d", i+1, len(m))
		}
		var sm SnapshotMove
		if err := json.Unmarshal(m[0], &sm.Action); err != nil {
			return fmt.Errorf("snapshot move %d action: %w", i+1, err)
		}
		if len(m) == 2 {
			if err := json.Unmarshal(m[1], &sm.Timestamp); err != nil {
				return fmt.Errorf("snapshot move %d timestamp: %w", i+1, err)
			}
		}
		out.Moves = append(out.Moves, sm)
	}

	*s = out
	return nil
}

// FromSnapshot rebuilds a game by replaying every move of the snapshot.
func FromSnapshot(s Snapshot) (*Game, error) {
	g, err := NewGame(s.Config())
	if err != nil {
		return nil, err
	}
	for i, m := range s.Moves {
		if _, err := g.Apply(g.Top().PlayerID(), m.Action, m.Timestamp); err != nil {
			return nil, fmt.Errorf("replay move %d: %w", i+1, err)
		}
	}
	return g, nil
}
